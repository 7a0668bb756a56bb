// Package crisis detects self-harm risk language in incoming messages.
// The detector is deliberately simple: fixed phrases matched over the
// lower-cased text. Its result pre-empts the therapy flow from any state.
package crisis

import "strings"

var phrases = []string{
	"не хочу жить",
	"покончить с собой",
	"убить себя",
	"суицид",
	"самоубийств",
	"нет смысла жить",
	"лучше бы меня не было",
	"причинить себе вред",
	"порезать себя",
}

// Detect reports whether the message contains crisis language.
func Detect(text string) bool {
	lower := strings.ToLower(text)
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// SupportResources is the fixed help block shown the moment a crisis is
// detected, before any generated reply.
const SupportResources = `Мне очень важно, что ты поделился этим. Пожалуйста, обратись за помощью прямо сейчас:

📞 Телефон доверия: 8-800-2000-122 (бесплатно, круглосуточно)
📞 Экстренная психологическая помощь: 051

Ты не один. Профессионалы готовы выслушать и помочь.`
