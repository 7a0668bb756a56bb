package adapt

var tonePrompts = map[Tone]string{
	ToneCalm: "Говори спокойно, размеренно. Используй мягкие формулировки. " +
		"Создавай ощущение стабильности и безопасности.",
	ToneWarm: "Говори тепло и дружелюбно. Используй «ты», будь близким другом. " +
		"Показывай искреннюю заботу.",
	ToneHumorous: "Можешь использовать легкий юмор, но очень аккуратно. " +
		"Не шути над серьезными темами. Юмор должен быть поддерживающим, не обесценивающим.",
	ToneGentle: "Говори очень мягко и бережно. Каждое слово должно быть продуманным. " +
		"Создавай максимально безопасное пространство.",
	ToneSupportive: "Будь максимально поддерживающим. Валидируй чувства. " +
		"Показывай, что человек не один.",
}

var empathyPrompts = map[Empathy]string{
	EmpathyLow:    "Будь легким и дружелюбным. Не нужно глубоко погружаться в эмоции.",
	EmpathyMedium: "Показывай понимание и сочувствие. Валидируй чувства, но не перегружай.",
	EmpathyHigh: "Максимальная эмпатия. Глубоко валидируй эмоции. Покажи, что полностью " +
		"понимаешь и принимаешь чувства человека. Используй техники активного слушания.",
}

// TonePrompt returns the generator instruction for a tone, falling back to
// warm for unknown values.
func TonePrompt(tone Tone) string {
	if p, ok := tonePrompts[tone]; ok {
		return p
	}
	return tonePrompts[ToneWarm]
}

// EmpathyPrompt returns the generator instruction for an empathy level.
func EmpathyPrompt(level Empathy) string {
	if p, ok := empathyPrompts[level]; ok {
		return p
	}
	return empathyPrompts[EmpathyMedium]
}
