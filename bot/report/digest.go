package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/mindberry/teplo/engine/analytics"
	"github.com/mindberry/teplo/engine/memory"
)

type practice struct {
	title       string
	description string
}

var practices = []practice{
	{
		"Техника 4-7-8 для успокоения",
		"Вдох на 4 счёта, задержка на 7, выдох на 8. Повтори 4 раза. Помогает быстро успокоиться.",
	},
	{
		"Дневник благодарности",
		"Каждый день записывай 3 вещи, за которые благодарен. Улучшает общее настроение.",
	},
	{
		"Медитация осознанности",
		"5 минут в день: сядь удобно, дыши естественно, замечай мысли без оценки.",
	},
	{
		"Техника «Якорь»",
		"Вспомни момент полного спокойствия. Закрой глаза, представь детали, заякори ощущение.",
	},
	{
		"Прогрессивная мышечная релаксация",
		"Напрягай и расслабляй мышцы по порядку (ноги, руки, туловище). Снимает напряжение.",
	},
}

// weekPractice rotates through the practice list by calendar week, so every
// subscriber gets the same practice in a given week and a new one the next.
func weekPractice(now time.Time) practice {
	_, week := now.ISOWeek()
	return practices[week%len(practices)]
}

// FormatDigest renders the weekly digest pushed by the scheduler. Unlike the
// on-demand report it leads with the week totals and closes with a practice.
func FormatDigest(mem *memory.Memory, r analytics.Report, now time.Time) string {
	weekAgo := now.Add(-7 * 24 * time.Hour)

	total := 0
	for _, m := range mem.Moments {
		if !m.Date.Before(weekAgo) {
			total++
		}
	}

	topEmoji, ok := emotionEmojis[r.MostFrequentEmotion]
	if !ok {
		topEmoji = "📝"
	}

	var b strings.Builder
	b.WriteString("📊 *Еженедельный дайджест*\n\n")
	fmt.Fprintf(&b, "_Период: %s - %s_\n\n",
		weekAgo.Format("02.01.2006"), now.Format("02.01.2006"))
	fmt.Fprintf(&b, "💬 *Значимых моментов за неделю:* %d\n", total)
	fmt.Fprintf(&b, "🎭 *Основная эмоция:* %s %s\n\n", topEmoji, r.MostFrequentEmotion)

	if len(r.DominantEmotions) > 0 {
		b.WriteString("*Эмоциональный профиль недели:*\n")
		for _, tr := range r.DominantEmotions {
			emoji, ok := emotionEmojis[tr.Emotion]
			if !ok {
				emoji = "📝"
			}
			fmt.Fprintf(&b, "%s %s: %d раз (интенсивность: %.1f/10)\n",
				emoji, tr.Emotion, tr.Frequency, tr.AvgIntensity)
		}
		b.WriteString("\n")
	}

	p := weekPractice(now)
	b.WriteString("🧘 *Практика недели:*\n")
	fmt.Fprintf(&b, "*%s*\n%s\n\n", p.title, p.description)
	b.WriteString("💙 Продолжай отслеживать свои эмоции и практиковать заботу о себе!")

	return b.String()
}
