package crisis

import "testing"

func TestDetect(t *testing.T) {
	positive := []string{
		"Я больше не хочу жить",
		"думаю про СУИЦИД",
		"иногда хочется покончить с собой...",
	}
	for _, text := range positive {
		if !Detect(text) {
			t.Errorf("Detect(%q) = false, want true", text)
		}
	}

	negative := []string{
		"",
		"сегодня тяжелый день на работе",
		"жить в этом городе дорого",
	}
	for _, text := range negative {
		if Detect(text) {
			t.Errorf("Detect(%q) = true, want false", text)
		}
	}
}
