package memory

import (
	"strings"
	"unicode"
)

// Russian function words excluded from keyword extraction.
var stopWords = map[string]struct{}{
	"и": {}, "в": {}, "на": {}, "с": {}, "по": {}, "для": {},
	"как": {}, "что": {}, "это": {}, "то": {}, "а": {}, "но": {}, "или": {},
}

// ExtractKeywords pulls up to five distinct lower-cased words longer than
// three runes from the text, in first-seen order. Punctuation and digits
// are stripped; stop-words are skipped.
func ExtractKeywords(text string) []string {
	var out []string
	seen := make(map[string]struct{})

	for _, word := range splitWords(text) {
		if len([]rune(word)) <= 3 {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
		if len(out) == maxKeywords {
			break
		}
	}
	return out
}

// splitWords lowercases the text, drops everything that is not a letter or
// whitespace, and splits on whitespace.
func splitWords(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r):
			return unicode.ToLower(r)
		case unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, text)
	return strings.Fields(cleaned)
}

func toLower(s string) string {
	return strings.ToLower(s)
}

// containsFold reports whether lowered (already lower-cased) contains the
// needle, case-insensitively on the needle side.
func containsFold(lowered, needle string) bool {
	return strings.Contains(lowered, strings.ToLower(needle))
}
