package memory

import (
	"regexp"
	"strings"
)

// topicPattern maps a group of synonym stems to a canonical topic label.
type topicPattern struct {
	re    *regexp.Regexp
	topic string
}

// Detection is deliberately coarse: a handful of life areas matched by
// synonym stems over the lower-cased text. Order fixes the output order.
var topicPatterns = []topicPattern{
	{regexp.MustCompile(`работа|коллеги|начальник|проект|дедлайн`), "работа"},
	{regexp.MustCompile(`семья|родители|дети|родственники`), "семья"},
	{regexp.MustCompile(`друзья|друг|подруга|компания`), "друзья"},
	{regexp.MustCompile(`здоровье|болезнь|врач|лечение`), "здоровье"},
	{regexp.MustCompile(`отношения|партнер|любовь|расставание`), "отношения"},
	{regexp.MustCompile(`учеба|экзамен|университет|школа`), "учеба"},
	{regexp.MustCompile(`деньги|зарплата|покупки|финансы`), "финансы"},
	{regexp.MustCompile(`тревога|страх|беспокойство|паника`), "тревога"},
	{regexp.MustCompile(`грусть|печаль|тоска|одиночество`), "грусть"},
}

// ExtractTopics returns the canonical labels of every topic group whose
// pattern matches the text. Each topic appears at most once.
func ExtractTopics(text string) []string {
	lower := strings.ToLower(text)
	var topics []string
	for _, p := range topicPatterns {
		if p.re.MatchString(lower) {
			topics = append(topics, p.topic)
		}
	}
	return topics
}
