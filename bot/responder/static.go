package responder

import (
	"context"
	"fmt"
	"strings"
)

type distortion struct {
	name        string
	explanation string
	reframe     string
}

// Static is the offline generator: rule-based CBT replies built from the
// message text alone. It keeps the dialogue alive when the model is down,
// at the cost of variety.
type Static struct{}

// NewStatic returns the rule-based generator.
func NewStatic() *Static {
	return &Static{}
}

func (s *Static) Reply(_ context.Context, req Request) (string, error) {
	lower := strings.ToLower(req.Text)

	var b strings.Builder

	if d, ok := detectDistortion(lower); ok {
		fmt.Fprintf(&b, "Я замечаю, что ты можешь использовать когнитивное искажение «%s». ", d.name)
		b.WriteString(d.explanation)
		b.WriteString(" Попробуем посмотреть на ситуацию по-другому: ")
		b.WriteString(d.reframe)
		b.WriteString("\n\n")
	}

	switch {
	case containsAny(lower, "тревож", "страх", "боюсь"):
		b.WriteString("Понимаю, что ты испытываешь тревогу. Это нормальная человеческая эмоция. ")
		b.WriteString("Давай попробуем технику «Трех вопросов»:\n")
		b.WriteString("1. Что самое худшее может произойти?\n")
		b.WriteString("2. Какова вероятность, что это произойдет?\n")
		b.WriteString("3. Если это произойдет, как я справлюсь?\n\n")
		b.WriteString("Что ты думаешь о первом вопросе?")
	case containsAny(lower, "груст", "плох", "депресс"):
		b.WriteString("Мне жаль, что тебе сейчас плохо. Твои чувства важны и обоснованы. ")
		b.WriteString("Давай попробуем переформулировать негативную мысль в более сбалансированную. ")
		b.WriteString("Например, вместо «Все плохо» можно сказать «Сейчас сложно, но я могу найти решения».\n\n")
		b.WriteString("Что тебя сейчас беспокоит больше всего?")
	case containsAny(lower, "цель", "задач"):
		b.WriteString("Отличная тема для обсуждения! Постановка целей - важная часть CBT. ")
		b.WriteString("Хорошая цель должна быть конкретной, измеримой, достижимой, релевантной и ограниченной по времени.\n\n")
		b.WriteString("Расскажи, какую цель ты хочешь поставить?")
	default:
		b.WriteString("Спасибо, что поделился. Это важный шаг в работе над собой. ")
		b.WriteString("Давай разберем это подробнее. Расскажи, как это влияет на твою повседневную жизнь?")
	}

	if req.Stress > 7 {
		fmt.Fprintf(&b, "\n\nЯ вижу, что твой уровень стресса довольно высок (%d/10). ", req.Stress)
		b.WriteString("Может быть, стоит попробовать техники релаксации или дыхательные упражнения?")
	}

	return b.String(), nil
}

// detectDistortion returns the first cognitive distortion whose markers
// appear in the text. Catastrophizing shadows black-and-white thinking
// because their markers overlap.
func detectDistortion(lower string) (distortion, bool) {
	always := strings.Contains(lower, "всегда") || strings.Contains(lower, "никогда")
	allBad := strings.Contains(lower, "все") && strings.Contains(lower, "плохо")

	if always || allBad {
		return distortion{
			name:        "Катастрофизация",
			explanation: "Ты склонен видеть ситуацию хуже, чем она есть на самом деле.",
			reframe:     "Попробуй подумать о более вероятных и менее катастрофических исходах.",
		}, true
	}
	if strings.Contains(lower, "все") || strings.Contains(lower, "ничего") {
		return distortion{
			name:        "Чёрно-белое мышление",
			explanation: "Ты видишь только крайности, не замечая промежуточных вариантов.",
			reframe:     "Попробуй найти промежуточные варианты и нюансы в ситуации.",
		}, true
	}
	if containsAny(lower, "думает", "считает", "думают") {
		return distortion{
			name:        "Чтение мыслей",
			explanation: "Ты предполагаешь, что знаешь, что думают другие, без доказательств.",
			reframe:     "Попробуй спросить напрямую или рассмотреть альтернативные объяснения их поведения.",
		}, true
	}
	return distortion{}, false
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
