package report

import (
	"strings"
	"testing"

	"github.com/mindberry/teplo/engine/analytics"
)

func TestFormatFullReport(t *testing.T) {
	r := analytics.Report{
		DominantEmotions: []analytics.Trend{
			{Emotion: "anxiety", Frequency: 4, AvgIntensity: 7.5, Trend: analytics.DirectionIncreasing},
			{Emotion: "joy", Frequency: 2, AvgIntensity: 6, Trend: analytics.DirectionStable},
		},
		OverallTrend:        analytics.OverallDeclining,
		AvgIntensity:        6.8,
		MostFrequentEmotion: "anxiety",
		IntensityTrend:      analytics.DirectionIncreasing,
		Recommendations:     []string{"Попробуйте техники дыхания."},
	}

	got := Format(r)

	for _, want := range []string{
		"📊 *Эмоциональный анализ за неделю*",
		"*Общая динамика:* ⚠️ Снижение",
		"*Средняя интенсивность:* 6.8/10 📈",
		"1. 😰 anxiety: 4 раз (интенсивность 7.5/10) 📈",
		"2. 😊 joy: 2 раз (интенсивность 6.0/10) ➡️",
		"*Рекомендации:*\n1. Попробуйте техники дыхания.",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q\n%s", want, got)
		}
	}
}

func TestFormatEmptyReport(t *testing.T) {
	got := Format(analytics.Report{
		OverallTrend:        analytics.OverallStable,
		MostFrequentEmotion: "neutral",
		IntensityTrend:      analytics.DirectionStable,
	})

	if !strings.Contains(got, "Стабильно") {
		t.Errorf("empty report should read as stable:\n%s", got)
	}
	if strings.Contains(got, "*Рекомендации:*") {
		t.Errorf("no recommendations section without recommendations:\n%s", got)
	}
}

func TestFormatUnknownEmotionEmoji(t *testing.T) {
	got := Format(analytics.Report{
		DominantEmotions: []analytics.Trend{
			{Emotion: "nostalgia", Frequency: 1, AvgIntensity: 5, Trend: analytics.DirectionStable},
		},
		OverallTrend:   analytics.OverallStable,
		IntensityTrend: analytics.DirectionStable,
	})
	if !strings.Contains(got, "📝 nostalgia") {
		t.Errorf("unknown labels fall back to the note emoji:\n%s", got)
	}
}
