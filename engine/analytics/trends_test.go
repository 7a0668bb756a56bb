package analytics

import (
	"testing"
	"time"

	"github.com/mindberry/teplo/engine/memory"
)

var now = time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC)

func record(m *memory.Memory, emotion string, intensity int, at time.Time) {
	m.Record(emotion, intensity, "ctx", "", at)
}

func TestAnalyzeTrendsEmpty(t *testing.T) {
	rep := AnalyzeTrends(memory.New(), now)

	if len(rep.DominantEmotions) != 0 {
		t.Fatalf("dominant emotions = %v, want empty", rep.DominantEmotions)
	}
	if rep.OverallTrend != OverallStable {
		t.Fatalf("overall = %q, want stable", rep.OverallTrend)
	}
	if rep.IntensityTrend != DirectionStable {
		t.Fatalf("intensity trend = %q, want stable", rep.IntensityTrend)
	}
	if len(rep.Recommendations) != 0 {
		t.Fatalf("recommendations = %v, want none", rep.Recommendations)
	}
	if rep.MostFrequentEmotion != "neutral" {
		t.Fatalf("most frequent = %q, want neutral", rep.MostFrequentEmotion)
	}
}

func TestAnalyzeTrendsWindows(t *testing.T) {
	m := memory.New()
	// Last week: two anxiety moments.
	record(m, "anxiety", 7, now.Add(-10*24*time.Hour))
	record(m, "anxiety", 7, now.Add(-9*24*time.Hour))
	// This week: three anxiety, one joy.
	record(m, "anxiety", 8, now.Add(-3*24*time.Hour))
	record(m, "anxiety", 8, now.Add(-2*24*time.Hour))
	record(m, "anxiety", 9, now.Add(-24*time.Hour))
	record(m, "joy", 6, now.Add(-12*time.Hour))

	rep := AnalyzeTrends(m, now)

	if rep.MostFrequentEmotion != "anxiety" {
		t.Fatalf("most frequent = %q, want anxiety", rep.MostFrequentEmotion)
	}
	top := rep.DominantEmotions[0]
	if top.ThisWeek != 3 || top.LastWeek != 2 {
		t.Fatalf("anxiety counts = %d/%d, want 3/2", top.ThisWeek, top.LastWeek)
	}
	// 3 > 2*1.2 holds, so anxiety trends up.
	if top.Trend != DirectionIncreasing {
		t.Fatalf("anxiety trend = %q, want increasing", top.Trend)
	}
	wantAvg := (8.0 + 8.0 + 9.0) / 3.0
	if top.AvgIntensity != wantAvg {
		t.Fatalf("anxiety avg = %v, want %v", top.AvgIntensity, wantAvg)
	}
}

func TestAnalyzeTrendsOverall(t *testing.T) {
	m := memory.New()
	// negative 4 vs positive 1: 4 > 1*1.5 -> declining.
	for i := 0; i < 4; i++ {
		record(m, "sadness", 7, now.Add(-time.Duration(i+1)*24*time.Hour))
	}
	record(m, "joy", 6, now.Add(-12*time.Hour))

	rep := AnalyzeTrends(m, now)
	if rep.OverallTrend != OverallDeclining {
		t.Fatalf("overall = %q, want declining", rep.OverallTrend)
	}
	if len(rep.Recommendations) == 0 {
		t.Fatal("declining report must carry a recommendation")
	}

	m = memory.New()
	for i := 0; i < 4; i++ {
		record(m, "joy", 6, now.Add(-time.Duration(i+1)*24*time.Hour))
	}
	record(m, "sadness", 7, now.Add(-12*time.Hour))

	rep = AnalyzeTrends(m, now)
	if rep.OverallTrend != OverallImproving {
		t.Fatalf("overall = %q, want improving", rep.OverallTrend)
	}
}

func TestAnalyzeTrendsIntensityBand(t *testing.T) {
	m := memory.New()
	record(m, "fear", 6, now.Add(-8*24*time.Hour))
	record(m, "fear", 8, now.Add(-24*time.Hour))

	rep := AnalyzeTrends(m, now)
	// 8 vs 6 exceeds the +1 band.
	if rep.IntensityTrend != DirectionIncreasing {
		t.Fatalf("intensity trend = %q, want increasing", rep.IntensityTrend)
	}

	m = memory.New()
	record(m, "fear", 7, now.Add(-8*24*time.Hour))
	record(m, "fear", 8, now.Add(-24*time.Hour))
	rep = AnalyzeTrends(m, now)
	if rep.IntensityTrend != DirectionStable {
		t.Fatalf("intensity trend = %q, want stable within the band", rep.IntensityTrend)
	}
}

func TestRecommendationRules(t *testing.T) {
	m := memory.New()
	// Anxiety appears this week only: increasing. High mean intensity.
	record(m, "anxiety", 9, now.Add(-2*24*time.Hour))
	record(m, "anxiety", 9, now.Add(-24*time.Hour))
	// Positive emotion also increasing.
	record(m, "joy", 8, now.Add(-12*time.Hour))

	rep := AnalyzeTrends(m, now)

	// All four rules co-fire: negative count 2 beats positive 1 by more
	// than 1.5x, mean intensity exceeds 7 and trends up from an empty
	// last week, anxiety trends up, and a positive emotion trends up.
	if len(rep.Recommendations) != 4 {
		t.Fatalf("recommendations = %d (%v), want 4", len(rep.Recommendations), rep.Recommendations)
	}
}

func TestDominantEmotionsCap(t *testing.T) {
	m := memory.New()
	labels := []string{"joy", "sadness", "anger", "fear", "anxiety", "tired", "calm"}
	for _, l := range labels {
		record(m, l, 7, now.Add(-24*time.Hour))
	}

	rep := AnalyzeTrends(m, now)
	if len(rep.DominantEmotions) != 5 {
		t.Fatalf("dominant emotions = %d, want top 5", len(rep.DominantEmotions))
	}
}
