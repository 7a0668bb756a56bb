// Package analytics builds on-demand weekly reports out of the emotional
// memory: dominant emotions, per-label and overall trends, and templated
// recommendations.
package analytics

import (
	"sort"
	"time"

	"github.com/mindberry/teplo/engine/emotion"
	"github.com/mindberry/teplo/engine/memory"
)

// Direction classifies a per-label or intensity trend between two windows.
type Direction string

const (
	DirectionIncreasing Direction = "increasing"
	DirectionStable     Direction = "stable"
	DirectionDecreasing Direction = "decreasing"
)

// Overall classifies the whole week against the previous one.
type Overall string

const (
	OverallImproving Overall = "improving"
	OverallStable    Overall = "stable"
	OverallDeclining Overall = "declining"
)

// Trend is the per-emotion aggregate over the report window.
type Trend struct {
	Emotion      string
	Frequency    int // this-week occurrences
	AvgIntensity float64
	Trend        Direction
	LastWeek     int
	ThisWeek     int
}

// Report is the weekly emotion report. Derived on demand, never cached.
// An empty memory yields an empty, stable report; that is valid data, not
// an error.
type Report struct {
	DominantEmotions    []Trend
	OverallTrend        Overall
	AvgIntensity        float64
	MostFrequentEmotion string
	IntensityTrend      Direction
	Recommendations     []string
}

type bucket struct {
	count          int
	totalIntensity int
}

// AnalyzeTrends partitions stored moments into the last 7 days and the 7
// days before that, aggregates per emotion label, and classifies trends
// with tolerance bands so small counts do not flap the report.
func AnalyzeTrends(mem *memory.Memory, now time.Time) Report {
	weekAgo := now.Add(-7 * 24 * time.Hour)
	twoWeeksAgo := now.Add(-14 * 24 * time.Hour)

	thisWeek := make(map[string]*bucket)
	lastWeek := make(map[string]*bucket)
	thisWeekCount, thisWeekTotal := 0, 0
	lastWeekCount, lastWeekTotal := 0, 0

	for _, m := range mem.Moments {
		switch {
		case !m.Date.Before(weekAgo):
			add(thisWeek, m.Emotion, m.Intensity)
			thisWeekCount++
			thisWeekTotal += m.Intensity
		case !m.Date.Before(twoWeeksAgo):
			add(lastWeek, m.Emotion, m.Intensity)
			lastWeekCount++
			lastWeekTotal += m.Intensity
		}
	}

	trends := buildTrends(thisWeek, lastWeek)
	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].Frequency > trends[j].Frequency
	})

	positiveCount, negativeCount := 0, 0
	for _, t := range trends {
		if emotion.IsPositive(t.Emotion) {
			positiveCount += t.Frequency
		}
		if emotion.IsNegative(t.Emotion) {
			negativeCount += t.Frequency
		}
	}

	overall := OverallStable
	switch {
	case float64(positiveCount) > float64(negativeCount)*1.5:
		overall = OverallImproving
	case float64(negativeCount) > float64(positiveCount)*1.5:
		overall = OverallDeclining
	}

	avgIntensity := 0.0
	if thisWeekCount > 0 {
		avgIntensity = float64(thisWeekTotal) / float64(thisWeekCount)
	}
	lastWeekAvg := 0.0
	if lastWeekCount > 0 {
		lastWeekAvg = float64(lastWeekTotal) / float64(lastWeekCount)
	}

	intensityTrend := DirectionStable
	switch {
	case avgIntensity > lastWeekAvg+1:
		intensityTrend = DirectionIncreasing
	case avgIntensity < lastWeekAvg-1:
		intensityTrend = DirectionDecreasing
	}

	mostFrequent := emotion.Neutral
	if len(trends) > 0 {
		mostFrequent = trends[0].Emotion
	}

	top := trends
	if len(top) > 5 {
		top = top[:5]
	}

	return Report{
		DominantEmotions:    top,
		OverallTrend:        overall,
		AvgIntensity:        avgIntensity,
		MostFrequentEmotion: mostFrequent,
		IntensityTrend:      intensityTrend,
		Recommendations:     recommendations(overall, intensityTrend, avgIntensity, trends),
	}
}

func add(buckets map[string]*bucket, label string, intensity int) {
	b, ok := buckets[label]
	if !ok {
		b = &bucket{}
		buckets[label] = b
	}
	b.count++
	b.totalIntensity += intensity
}

func buildTrends(thisWeek, lastWeek map[string]*bucket) []Trend {
	labels := make([]string, 0, len(thisWeek)+len(lastWeek))
	seen := make(map[string]struct{})
	for label := range thisWeek {
		labels = append(labels, label)
		seen[label] = struct{}{}
	}
	for label := range lastWeek {
		if _, ok := seen[label]; !ok {
			labels = append(labels, label)
		}
	}
	sort.Strings(labels)

	trends := make([]Trend, 0, len(labels))
	for _, label := range labels {
		cur, prev := bucket{}, bucket{}
		if b, ok := thisWeek[label]; ok {
			cur = *b
		}
		if b, ok := lastWeek[label]; ok {
			prev = *b
		}

		dir := DirectionStable
		switch {
		case float64(cur.count) > float64(prev.count)*1.2:
			dir = DirectionIncreasing
		case float64(cur.count) < float64(prev.count)*0.8:
			dir = DirectionDecreasing
		}

		avg := 0.0
		if cur.count > 0 {
			avg = float64(cur.totalIntensity) / float64(cur.count)
		}

		trends = append(trends, Trend{
			Emotion:      label,
			Frequency:    cur.count,
			AvgIntensity: avg,
			Trend:        dir,
			LastWeek:     prev.count,
			ThisWeek:     cur.count,
		})
	}
	return trends
}

// recommendations fires templated advice in a fixed rule order; several
// rules may co-fire.
func recommendations(overall Overall, intensityTrend Direction, avgIntensity float64, trends []Trend) []string {
	var recs []string

	if overall == OverallDeclining {
		recs = append(recs, "Заметил, что в последнее время больше негативных эмоций. "+
			"Может быть полезно добавить больше практик саморегуляции.")
	}
	if intensityTrend == DirectionIncreasing && avgIntensity > 7 {
		recs = append(recs, "Интенсивность эмоций довольно высокая. "+
			"Важно находить способы снижения стресса.")
	}
	for _, t := range trends {
		if t.Emotion == emotion.Anxiety && t.Trend == DirectionIncreasing {
			recs = append(recs, "Тревога стала появляться чаще. "+
				"Может помочь практика заземления или дыхательные упражнения.")
			break
		}
	}
	for _, t := range trends {
		if emotion.IsPositive(t.Emotion) && t.Trend == DirectionIncreasing {
			recs = append(recs, "Заметил больше позитивных моментов — это отлично! "+
				"Продолжай отслеживать, что помогает тебе чувствовать себя лучше.")
			break
		}
	}
	return recs
}
