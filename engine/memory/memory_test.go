package memory

import (
	"fmt"
	"testing"
	"time"
)

var base = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestRecordSignificanceGate(t *testing.T) {
	m := New()
	m.Record("sadness", 5, "тяжелый день", "сегодня был тяжелый день", base)

	if len(m.Moments) != 0 {
		t.Fatalf("intensity below threshold stored a moment: %d", len(m.Moments))
	}
	if got := m.Patterns.DominantEmotions["sadness"]; got != 1 {
		t.Fatalf("dominant counter = %d, want 1", got)
	}

	m.Record("sadness", 6, "опять тяжело", "все снова плохо", base.Add(time.Hour))
	if len(m.Moments) != 1 {
		t.Fatalf("intensity 6 should store a moment, got %d", len(m.Moments))
	}
	if got := m.Patterns.DominantEmotions["sadness"]; got != 2 {
		t.Fatalf("dominant counter = %d, want 2", got)
	}
}

func TestRecordBounds(t *testing.T) {
	m := New()
	for i := 0; i < 200; i++ {
		ts := base.Add(time.Duration(i) * time.Hour)
		m.Record("anxiety", 8, fmt.Sprintf("момент %d", i), "тревога паника работа дедлайн", ts)
	}

	if len(m.Moments) > MaxMoments {
		t.Fatalf("moments = %d, want <= %d", len(m.Moments), MaxMoments)
	}
	if len(m.RecentTopics) > MaxTopics {
		t.Fatalf("topics = %d, want <= %d", len(m.RecentTopics), MaxTopics)
	}
	if len(m.Patterns.WeeklyTrends) > MaxWeeklyTrends {
		t.Fatalf("weekly trends = %d, want <= %d", len(m.Patterns.WeeklyTrends), MaxWeeklyTrends)
	}

	// Oldest moments must be the ones evicted.
	first := m.Moments[0]
	if first.Context == "момент 0" {
		t.Fatal("FIFO eviction did not drop the oldest moment")
	}
}

func TestWeeklyTrendRunningAverage(t *testing.T) {
	m := New()
	m.Record("sadness", 4, "", "", base)
	m.Record("joy", 8, "", "", base.Add(2*time.Hour))

	if len(m.Patterns.WeeklyTrends) != 1 {
		t.Fatalf("trend points = %d, want 1", len(m.Patterns.WeeklyTrends))
	}
	got := m.Patterns.WeeklyTrends[0].AvgIntensity
	if got != 6 {
		t.Fatalf("avg intensity = %v, want 6 (running average of 4 then 8)", got)
	}
	// The first reading of the week fixes the recorded top emotion.
	if m.Patterns.WeeklyTrends[0].TopEmotion != "sadness" {
		t.Fatalf("top emotion = %q", m.Patterns.WeeklyTrends[0].TopEmotion)
	}
}

func TestMomentContextTruncated(t *testing.T) {
	m := New()
	long := ""
	for i := 0; i < 30; i++ {
		long += "очень "
	}
	m.Record("fear", 9, long, "", base)
	if got := len([]rune(m.Moments[0].Context)); got > maxContextLen {
		t.Fatalf("context length = %d runes, want <= %d", got, maxContextLen)
	}
}

func TestExtractKeywords(t *testing.T) {
	got := ExtractKeywords("Сегодня на работе ДЕДЛАЙН, и начальник снова недоволен! Работе конец.")
	want := []string{"сегодня", "работе", "дедлайн", "начальник", "снова"}
	if len(got) != len(want) {
		t.Fatalf("keywords = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keywords = %v, want %v", got, want)
		}
	}
}

func TestExtractKeywordsSkipsShortAndStopWords(t *testing.T) {
	got := ExtractKeywords("и в на с это как что или дом")
	if len(got) != 0 {
		t.Fatalf("keywords = %v, want none", got)
	}
}

func TestExtractTopics(t *testing.T) {
	got := ExtractTopics("Начальник давит, дедлайн горит, а дома родители переживают")
	if len(got) != 2 || got[0] != "работа" || got[1] != "семья" {
		t.Fatalf("topics = %v, want [работа семья]", got)
	}
}

func TestTopicRecencyUpsert(t *testing.T) {
	m := New()
	m.Record("anxiety", 4, "", "на работе завал", base)
	m.Record("anxiety", 4, "", "опять работа и проект", base.Add(time.Hour))

	if len(m.RecentTopics) != 1 {
		t.Fatalf("topics = %d, want 1", len(m.RecentTopics))
	}
	tp := m.RecentTopics[0]
	if tp.Frequency != 2 {
		t.Fatalf("frequency = %d, want 2", tp.Frequency)
	}
	if !tp.LastMentioned.Equal(base.Add(time.Hour)) {
		t.Fatalf("last mentioned not refreshed: %v", tp.LastMentioned)
	}
}

func TestRelevantTopicCue(t *testing.T) {
	m := New()
	m.Record("anxiety", 4, "", "проблемы на работе", base)

	cues := m.Relevant("anxiety", "снова думаю про работа", base.Add(48*time.Hour))
	if len(cues) == 0 {
		t.Fatal("expected a topic cue")
	}
	if cues[0] != "Недавно ты упоминал о «работа» (2 дней назад)." {
		t.Fatalf("cue = %q", cues[0])
	}
}

func TestRelevantTopicCueExpires(t *testing.T) {
	m := New()
	m.Record("anxiety", 4, "", "проблемы на работе", base)

	cues := m.Relevant("anxiety", "опять работа", base.Add(8*24*time.Hour))
	for _, c := range cues {
		if c == "Недавно ты упоминал о «работа» (8 дней назад)." {
			t.Fatalf("cue emitted past the 7-day window: %q", c)
		}
	}
}

func TestRelevantSimilarMomentCue(t *testing.T) {
	m := New()
	m.Record("fear", 8, "боялся выступления", "страшно выступать", base)

	cues := m.Relevant("fear", "ничего общего", base.Add(24*time.Hour))
	found := false
	for _, c := range cues {
		if c == "Помню, вчера ты тоже чувствовал fear (боялся выступления)." {
			found = true
		}
	}
	if !found {
		t.Fatalf("similar-moment cue missing, cues = %v", cues)
	}
}

func TestRelevantSimilarMomentSameDaySuppressed(t *testing.T) {
	m := New()
	m.Record("fear", 8, "контекст", "текст", base)

	cues := m.Relevant("fear", "без темы", base.Add(2*time.Hour))
	for _, c := range cues {
		if c == "Помню, вчера ты тоже чувствовал fear (контекст)." {
			t.Fatal("same-day moment must not produce a cue")
		}
	}
}

func TestRelevantDominantPatternCue(t *testing.T) {
	m := New()
	for i := 0; i < 3; i++ {
		m.Record("sadness", 4, "", "", base.Add(time.Duration(i)*time.Hour))
	}

	cues := m.Relevant("sadness", "", base.Add(4*time.Hour))
	if len(cues) != 1 {
		t.Fatalf("cues = %v, want exactly the dominant-pattern cue", cues)
	}
}

func TestRelevantEmptyMemory(t *testing.T) {
	m := New()
	if cues := m.Relevant("joy", "привет", base); len(cues) != 0 {
		t.Fatalf("cues = %v, want none", cues)
	}
}

func TestWeekID(t *testing.T) {
	cases := []struct {
		t    time.Time
		want string
	}{
		{time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), "2026-W01"},
		{time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC), "2026-W53"},
	}
	for _, c := range cases {
		if got := WeekID(c.t); got != c.want {
			t.Errorf("WeekID(%v) = %q, want %q", c.t, got, c.want)
		}
	}

	// Two readings in the same week map to the same bucket.
	a := WeekID(time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC))
	b := WeekID(time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC))
	if a != b {
		t.Fatalf("adjacent days split into %q and %q", a, b)
	}
}
