package emotion

import "testing"

func TestClassSets(t *testing.T) {
	if !IsPositive(Joy) || !IsPositive(Calm) || !IsPositive(Excited) {
		t.Fatal("positive set incomplete")
	}
	if !IsNegative(Sadness) || !IsNegative(Overwhelmed) {
		t.Fatal("negative set incomplete")
	}
	// Novel classifier labels belong to neither class.
	if IsPositive("wistful") || IsNegative("wistful") {
		t.Fatal("unknown label must be unclassified")
	}
	if IsPositive(Neutral) || IsNegative(Neutral) {
		t.Fatal("neutral belongs to neither class")
	}
}

func TestClampIntensity(t *testing.T) {
	cases := map[int]int{-3: 1, 0: 1, 1: 1, 5: 5, 10: 10, 14: 10}
	for in, want := range cases {
		if got := ClampIntensity(in); got != want {
			t.Errorf("ClampIntensity(%d) = %d, want %d", in, got, want)
		}
	}
}
