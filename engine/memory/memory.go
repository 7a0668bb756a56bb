// Package memory accumulates a bounded emotional history for one session:
// significant moments, dominant-emotion counters, weekly intensity trends
// and recently mentioned topics. All operations are in-memory and
// synchronous; the caller owns serialization.
package memory

import (
	"fmt"
	"sort"
	"time"
)

const (
	// MaxMoments bounds the significant-moment log (FIFO eviction).
	MaxMoments = 50
	// MaxTopics bounds the recent-topic table (recency eviction).
	MaxTopics = 20
	// MaxWeeklyTrends bounds the weekly trend list (oldest dropped).
	MaxWeeklyTrends = 8

	// momentThreshold is the minimum intensity that makes a reading worth
	// keeping as a moment.
	momentThreshold = 6

	maxContextLen  = 100
	maxKeywords    = 5
	topicCueWindow = 7 * 24 * time.Hour
	maxTopicCues   = 3
)

// Moment is a retained significant emotional reading enriched with a short
// context snippet and search keywords. Immutable once stored.
type Moment struct {
	Date      time.Time `json:"date"`
	Emotion   string    `json:"emotion"`
	Intensity int       `json:"intensity"`
	Context   string    `json:"context"`
	Keywords  []string  `json:"keywords"`
}

// WeeklyTrend is one aggregated point per calendar week.
type WeeklyTrend struct {
	Week         string  `json:"week"` // YYYY-Wnn
	AvgIntensity float64 `json:"avg_intensity"`
	TopEmotion   string  `json:"top_emotion"`
}

// Topic tracks how recently and how often a detected topic was mentioned.
type Topic struct {
	Topic         string    `json:"topic"`
	LastMentioned time.Time `json:"last_mentioned"`
	Frequency     int       `json:"frequency"`
}

// Patterns groups the long-horizon aggregates.
type Patterns struct {
	DominantEmotions map[string]int `json:"dominant_emotions"`
	WeeklyTrends     []WeeklyTrend  `json:"weekly_trends"`
	Triggers         []string       `json:"triggers,omitempty"`
}

// PersonalInfo is an opportunistically filled bag of facts the user shared.
// Never pruned.
type PersonalInfo struct {
	Name          string   `json:"name,omitempty"`
	WorkContext   string   `json:"work_context,omitempty"`
	Relationships []string `json:"relationships,omitempty"`
	Interests     []string `json:"interests,omitempty"`
}

// Memory is the per-session emotional memory aggregate.
type Memory struct {
	Moments      []Moment     `json:"moments"`
	Patterns     Patterns     `json:"patterns"`
	PersonalInfo PersonalInfo `json:"personal_info"`
	RecentTopics []Topic      `json:"recent_topics"`
}

// New returns an empty memory.
func New() *Memory {
	return &Memory{
		Patterns: Patterns{
			DominantEmotions: make(map[string]int),
		},
	}
}

// Record folds one classified reading into the memory. The raw text is used
// only for keyword and topic extraction and is not retained. Intensity is
// assumed already clamped to 1..10 by the classifier adapter; the only gate
// applied here is the significance threshold for moments.
func (m *Memory) Record(emotion string, intensity int, context, rawText string, now time.Time) {
	if intensity >= momentThreshold {
		m.Moments = append(m.Moments, Moment{
			Date:      now,
			Emotion:   emotion,
			Intensity: intensity,
			Context:   truncateRunes(context, maxContextLen),
			Keywords:  ExtractKeywords(rawText),
		})
		if len(m.Moments) > MaxMoments {
			m.Moments = m.Moments[len(m.Moments)-MaxMoments:]
		}
	}

	if m.Patterns.DominantEmotions == nil {
		m.Patterns.DominantEmotions = make(map[string]int)
	}
	m.Patterns.DominantEmotions[emotion]++

	m.updateWeeklyTrend(emotion, intensity, now)
	m.updateTopics(rawText, now)
}

// updateWeeklyTrend upserts the current week's point. An existing point is
// folded with a decaying running average rather than a true mean: each new
// reading halves the weight of everything before it. Inherited behaviour,
// kept as-is.
func (m *Memory) updateWeeklyTrend(emotion string, intensity int, now time.Time) {
	week := WeekID(now)
	for i := range m.Patterns.WeeklyTrends {
		if m.Patterns.WeeklyTrends[i].Week == week {
			m.Patterns.WeeklyTrends[i].AvgIntensity =
				(m.Patterns.WeeklyTrends[i].AvgIntensity + float64(intensity)) / 2
			return
		}
	}
	m.Patterns.WeeklyTrends = append(m.Patterns.WeeklyTrends, WeeklyTrend{
		Week:         week,
		AvgIntensity: float64(intensity),
		TopEmotion:   emotion,
	})
	if len(m.Patterns.WeeklyTrends) > MaxWeeklyTrends {
		m.Patterns.WeeklyTrends = m.Patterns.WeeklyTrends[len(m.Patterns.WeeklyTrends)-MaxWeeklyTrends:]
	}
}

func (m *Memory) updateTopics(rawText string, now time.Time) {
	for _, topic := range ExtractTopics(rawText) {
		found := false
		for i := range m.RecentTopics {
			if m.RecentTopics[i].Topic == topic {
				m.RecentTopics[i].LastMentioned = now
				m.RecentTopics[i].Frequency++
				found = true
				break
			}
		}
		if !found {
			m.RecentTopics = append(m.RecentTopics, Topic{
				Topic:         topic,
				LastMentioned: now,
				Frequency:     1,
			})
		}
	}

	sort.SliceStable(m.RecentTopics, func(i, j int) bool {
		return m.RecentTopics[i].LastMentioned.After(m.RecentTopics[j].LastMentioned)
	})
	if len(m.RecentTopics) > MaxTopics {
		m.RecentTopics = m.RecentTopics[:MaxTopics]
	}
}

// Relevant returns human-readable recall cues for the current message:
// recently mentioned topics that resurface in the text, the last strong
// moment with the same emotion, and a note when the current emotion is the
// dominant one. At most a handful of cues are produced; the downstream
// prompt builder embeds them verbatim.
func (m *Memory) Relevant(currentEmotion, currentText string, now time.Time) []string {
	var cues []string

	lower := toLower(currentText)
	topicCues := 0
	for _, t := range m.RecentTopics {
		if topicCues >= maxTopicCues {
			break
		}
		if !containsFold(lower, t.Topic) {
			continue
		}
		if now.Sub(t.LastMentioned) > topicCueWindow {
			continue
		}
		days := daysBetween(t.LastMentioned, now)
		cues = append(cues, fmt.Sprintf("Недавно ты упоминал о «%s» (%s).", t.Topic, daysAgo(days)))
		topicCues++
	}

	if last, ok := m.lastSimilarMoment(currentEmotion); ok {
		if days := daysBetween(last.Date, now); days > 0 {
			cues = append(cues, fmt.Sprintf(
				"Помню, %s ты тоже чувствовал %s (%s).",
				daysAgo(days), last.Emotion, last.Context,
			))
		}
	}

	if top, count := m.topDominant(); count >= 3 && top == currentEmotion {
		cues = append(cues, fmt.Sprintf(
			"Я замечаю, что %s — это эмоция, которая часто появляется в наших разговорах.", top,
		))
	}

	return cues
}

// lastSimilarMoment finds the most recent stored moment with the same
// emotion and intensity of at least 7.
func (m *Memory) lastSimilarMoment(emotion string) (Moment, bool) {
	for i := len(m.Moments) - 1; i >= 0; i-- {
		mom := m.Moments[i]
		if mom.Emotion == emotion && mom.Intensity >= 7 {
			return mom, true
		}
	}
	return Moment{}, false
}

func (m *Memory) topDominant() (string, int) {
	top, best := "", 0
	for label, count := range m.Patterns.DominantEmotions {
		if count > best || (count == best && label < top) {
			top, best = label, count
		}
	}
	return top, best
}

func daysBetween(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

func daysAgo(days int) string {
	if days == 1 {
		return "вчера"
	}
	return fmt.Sprintf("%d дней назад", days)
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
