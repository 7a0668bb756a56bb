package state

import "testing"

func TestUpdateFirstReading(t *testing.T) {
	st := Update(nil, "anxiety", 7, 0)

	if st.PrimaryEmotion != "anxiety" || st.Intensity != 7 {
		t.Fatalf("state = %+v", st)
	}
	if st.Trend != TrendStable {
		t.Fatalf("trend = %q, want stable on first reading", st.Trend)
	}
	if st.StressLevel != 7 {
		t.Fatalf("stress = %d, want intensity fallback 7", st.StressLevel)
	}
	if st.LastIntensity != 7 {
		t.Fatalf("last intensity = %d, want 7", st.LastIntensity)
	}
}

func TestUpdateTrend(t *testing.T) {
	cases := []struct {
		prev, next int
		want       Trend
	}{
		{8, 5, TrendImproving},
		{8, 6, TrendImproving},
		{8, 7, TrendStable},
		{8, 8, TrendStable},
		{8, 9, TrendStable},
		{5, 7, TrendDeclining},
		{5, 10, TrendDeclining},
	}
	for _, c := range cases {
		prev := Update(nil, "fear", c.prev, 0)
		st := Update(&prev, "fear", c.next, 0)
		if st.Trend != c.want {
			t.Errorf("trend(%d -> %d) = %q, want %q", c.prev, c.next, st.Trend, c.want)
		}
		if st.LastIntensity != c.prev {
			t.Errorf("last intensity = %d, want %d", st.LastIntensity, c.prev)
		}
	}
}

func TestUpdateStressFallbackChain(t *testing.T) {
	prev := Update(nil, "sadness", 4, 6)
	st := Update(&prev, "sadness", 8, 0)
	if st.StressLevel != 6 {
		t.Fatalf("stress = %d, want previous stress 6", st.StressLevel)
	}

	st = Update(&prev, "sadness", 8, 9)
	if st.StressLevel != 9 {
		t.Fatalf("stress = %d, want explicit 9", st.StressLevel)
	}
}

func TestUpdateReplacesWholesale(t *testing.T) {
	prev := Update(nil, "anger", 9, 9)
	st := Update(&prev, "calm", 2, 1)
	if st.PrimaryEmotion != "calm" || st.Intensity != 2 || st.StressLevel != 1 {
		t.Fatalf("state not replaced: %+v", st)
	}
	// Falling intensity of a positive emotion still reads as improving.
	if st.Trend != TrendImproving {
		t.Fatalf("trend = %q, want improving", st.Trend)
	}
}
