package therapy

import "fmt"

// Prompt returns the fixed generator instruction for a state. The templates
// are data: they are handed verbatim to the response generator, which merges
// them into its own prompt.
func Prompt(st State, emotion string, intensity int) string {
	switch st {
	case StateReflecting:
		if emotion == "" {
			emotion = "не определена"
		}
		return fmt.Sprintf(`Сейчас ты в состоянии отражения эмоции.
Важно: глубоко валидируй эмоцию пользователя, покажи, что понимаешь.
Не спеши с советами - сначала дай человеку почувствовать, что его слышат.
Эмоция: %s, интенсивность: %d/10`, emotion, intensity)

	case StateReframing:
		return `Сейчас ты в состоянии когнитивного переформулирования.
Важно: мягко помогай увидеть альтернативные перспективы.
Используй технику "А что если...?" или "Как еще можно посмотреть на это?"
Избегай прямых указаний - предлагай вопросы для размышления.`

	case StateSuggesting:
		return `Сейчас ты в состоянии поведенческих предложений.
Важно: предлагай конкретные, выполнимые техники.
Одна техника за раз. Используй CBT техники: дыхание, grounding, поведенческая активация.
Спроси, что человек готов попробовать прямо сейчас.`

	case StateSummary:
		return `Сейчас ты подводишь итоги сессии.
Важно: кратко резюмируй ключевые моменты разговора.
Спроси, что человек вынес из разговора.
Предложи следующий шаг или практику на сегодня.`

	case StateCrisis:
		return `КРИЗИСНАЯ СИТУАЦИЯ.
Важно: немедленно покажи контакты помощи.
Будь максимально поддерживающим и сострадательным.
Не давай советы - направляй к профессиональной помощи.`

	default:
		return `Обычное общение. Будь эмпатичным и поддерживающим.
Слушай внимательно и отвечай естественно.`
	}
}
