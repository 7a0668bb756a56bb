package classifier

import (
	"context"
	"testing"
	"time"

	"github.com/mindberry/teplo/engine/emotion"
)

var now = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestKeywordClassify(t *testing.T) {
	cases := []struct {
		text      string
		label     string
		intensity int
	}{
		{"Я очень тревожусь из-за работы", emotion.Anxiety, 9},
		{"мне грустно и одиноко", emotion.Sadness, 6},
		{"Меня все БЕСИТ", emotion.Anger, 7},
		{"накрыла паника", emotion.Fear, 8},
		{"я так рад, все получилось", emotion.Joy, 6},
		{"обычный день, ничего особенного", emotion.Neutral, 3},
		{"", emotion.Neutral, 3},
	}

	k := NewKeyword()
	for _, c := range cases {
		rec, err := k.Classify(context.Background(), c.text, now)
		if err != nil {
			t.Fatalf("Classify(%q): %v", c.text, err)
		}
		if rec.Primary != c.label {
			t.Errorf("Classify(%q).Primary = %q, want %q", c.text, rec.Primary, c.label)
		}
		if rec.Intensity != c.intensity {
			t.Errorf("Classify(%q).Intensity = %d, want %d", c.text, rec.Intensity, c.intensity)
		}
		if !rec.Timestamp.Equal(now) {
			t.Errorf("Classify(%q).Timestamp = %v", c.text, rec.Timestamp)
		}
	}
}

func TestKeywordIntensityClamped(t *testing.T) {
	// Sharp emotion plus an intensifier must still land inside 1..10.
	rec, err := NewKeyword().Classify(context.Background(), "невыносимо, накрыла паника", now)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Intensity < 1 || rec.Intensity > 10 {
		t.Fatalf("intensity = %d, out of range", rec.Intensity)
	}
}

func TestReadingSchemaStrict(t *testing.T) {
	props, ok := readingSchema["properties"].(map[string]interface{})
	if !ok {
		t.Fatal("schema has no properties")
	}
	for _, field := range []string{"primary", "secondary", "intensity"} {
		if _, ok := props[field]; !ok {
			t.Errorf("schema missing %q", field)
		}
	}
	if readingSchema["additionalProperties"] != false {
		t.Error("schema must close additional properties")
	}
	required, ok := readingSchema["required"].([]string)
	if !ok || len(required) != 3 {
		t.Errorf("required = %v, want all three fields", readingSchema["required"])
	}
}
