package classifier

import (
	"context"
	"strings"
	"time"

	"github.com/mindberry/teplo/engine/emotion"
)

// keywordRule maps Russian stems to an emotion label with a base intensity.
// First matching rule wins, so sharper emotions come first.
type keywordRule struct {
	stems     []string
	label     string
	intensity int
}

var keywordRules = []keywordRule{
	{[]string{"паник", "ужас", "кошмар"}, emotion.Fear, 8},
	{[]string{"тревож", "беспоко", "боюсь", "страшно", "страх"}, emotion.Anxiety, 7},
	{[]string{"злюсь", "бесит", "ненавижу", "разозл"}, emotion.Anger, 7},
	{[]string{"груст", "печал", "тоск", "плохо", "депресс", "одинок"}, emotion.Sadness, 6},
	{[]string{"устал", "вымотан", "нет сил", "выгор"}, emotion.Tired, 6},
	{[]string{"не справляюсь", "слишком много", "завал"}, emotion.Overwhelmed, 7},
	{[]string{"рад", "счастл", "здорово", "отлично", "ура"}, emotion.Joy, 6},
	{[]string{"спокой", "легче", "отпустило"}, emotion.Calm, 3},
	{[]string{"вдохнов", "жду не дождусь", "предвкуш"}, emotion.Excited, 6},
}

// intensifiers bump the base intensity when the text signals escalation.
var intensifiers = []string{"очень", "совсем", "невыносимо", "постоянно", "все время", "!!"}

// Keyword is the offline classifier: fixed stem matching with a coarse
// intensity guess. Good enough to keep the therapy flow moving when the
// model is unreachable.
type Keyword struct{}

// NewKeyword returns the keyword fallback classifier.
func NewKeyword() *Keyword {
	return &Keyword{}
}

// Classify matches the lower-cased text against the stem rules. Unmatched
// text reads as neutral with low intensity.
func (k *Keyword) Classify(_ context.Context, text string, now time.Time) (emotion.Record, error) {
	lower := strings.ToLower(text)

	label, intensity := emotion.Neutral, 3
	for _, rule := range keywordRules {
		if matchesAny(lower, rule.stems) {
			label, intensity = rule.label, rule.intensity
			break
		}
	}

	if label != emotion.Neutral && matchesAny(lower, intensifiers) {
		intensity += 2
	}

	return emotion.Record{
		Primary:   label,
		Intensity: emotion.ClampIntensity(intensity),
		Timestamp: now,
	}, nil
}

func matchesAny(lower string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}
