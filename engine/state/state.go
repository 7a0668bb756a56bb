// Package state tracks the current emotional reading of a session and the
// short-term trend between consecutive readings.
package state

// Trend describes the change between the two latest intensity readings.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// State is a wholesale summary of the latest reading. It is replaced, never
// merged; the only history carried over is LastIntensity.
type State struct {
	PrimaryEmotion string `json:"primary_emotion"`
	Intensity      int    `json:"intensity"`
	StressLevel    int    `json:"stress_level"`
	Trend          Trend  `json:"trend"`
	LastIntensity  int    `json:"last_intensity"`
}

// Update derives the next state from the previous one (nil on the first
// message) and a new reading. Stress falls back to the previous stress
// level, then to the new intensity.
//
// The trend compares intensity magnitudes only, not valence: intensifying
// joy is labelled declining exactly like intensifying fear. Inherited
// behaviour, kept deliberately.
func Update(prev *State, emotion string, intensity, stress int) State {
	last := intensity
	if prev != nil {
		last = prev.Intensity
	}

	trend := TrendStable
	switch {
	case intensity < last-1:
		trend = TrendImproving
	case intensity > last+1:
		trend = TrendDeclining
	}

	if stress <= 0 {
		if prev != nil && prev.StressLevel > 0 {
			stress = prev.StressLevel
		} else {
			stress = intensity
		}
	}

	return State{
		PrimaryEmotion: emotion,
		Intensity:      intensity,
		StressLevel:    stress,
		Trend:          trend,
		LastIntensity:  last,
	}
}
