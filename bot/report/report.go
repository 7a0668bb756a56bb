// Package report renders the weekly emotion report as a Telegram Markdown
// message.
package report

import (
	"fmt"
	"strings"

	"github.com/mindberry/teplo/engine/analytics"
	"github.com/mindberry/teplo/engine/emotion"
)

var emotionEmojis = map[string]string{
	emotion.Joy:         "😊",
	emotion.Sadness:     "😢",
	emotion.Anger:       "😠",
	emotion.Fear:        "😨",
	emotion.Anxiety:     "😰",
	emotion.Calm:        "😌",
	emotion.Excited:     "🤩",
	emotion.Tired:       "😴",
	emotion.Overwhelmed: "😵",
	emotion.Neutral:     "😐",
}

var directionEmojis = map[analytics.Direction]string{
	analytics.DirectionIncreasing: "📈",
	analytics.DirectionStable:     "➡️",
	analytics.DirectionDecreasing: "📉",
}

var overallEmojis = map[analytics.Overall]string{
	analytics.OverallImproving: "✨",
	analytics.OverallStable:    "➡️",
	analytics.OverallDeclining: "⚠️",
}

var overallLabels = map[analytics.Overall]string{
	analytics.OverallImproving: "Улучшение",
	analytics.OverallStable:    "Стабильно",
	analytics.OverallDeclining: "Снижение",
}

// Format renders the report for Telegram Markdown parse mode.
func Format(r analytics.Report) string {
	var b strings.Builder

	b.WriteString("📊 *Эмоциональный анализ за неделю*\n\n")

	fmt.Fprintf(&b, "*Общая динамика:* %s %s\n",
		overallEmojis[r.OverallTrend], overallLabels[r.OverallTrend])
	fmt.Fprintf(&b, "*Средняя интенсивность:* %.1f/10 %s\n\n",
		r.AvgIntensity, directionEmojis[r.IntensityTrend])

	b.WriteString("*Топ эмоций:*\n")
	for i, tr := range r.DominantEmotions {
		emoji, ok := emotionEmojis[tr.Emotion]
		if !ok {
			emoji = "📝"
		}
		fmt.Fprintf(&b, "%d. %s %s: %d раз (интенсивность %.1f/10) %s\n",
			i+1, emoji, tr.Emotion, tr.Frequency, tr.AvgIntensity, directionEmojis[tr.Trend])
	}

	if len(r.Recommendations) > 0 {
		b.WriteString("\n*Рекомендации:*\n")
		for i, rec := range r.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
		}
	}

	return b.String()
}
