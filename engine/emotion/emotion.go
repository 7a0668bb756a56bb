// Package emotion defines the classified emotion reading that drives the
// session engine. Labels are open strings: the classifier may introduce
// values outside the known vocabulary and the engine must accept them.
package emotion

import "time"

// Record is a single classified reading attached to one user message.
// The classifier is the sole producer; records are never mutated.
type Record struct {
	Primary   string    `json:"primary"`
	Secondary string    `json:"secondary,omitempty"`
	Intensity int       `json:"intensity"` // 1..10, clamped by the classifier adapter
	Timestamp time.Time `json:"timestamp"`
}

// Known labels produced by the default classifier prompt.
const (
	Joy         = "joy"
	Sadness     = "sadness"
	Anger       = "anger"
	Fear        = "fear"
	Surprise    = "surprise"
	Disgust     = "disgust"
	Neutral     = "neutral"
	Anxiety     = "anxiety"
	Calm        = "calm"
	Excited     = "excited"
	Tired       = "tired"
	Overwhelmed = "overwhelmed"
)

var positive = map[string]struct{}{
	Joy:     {},
	Calm:    {},
	Excited: {},
}

var negative = map[string]struct{}{
	Sadness:     {},
	Anger:       {},
	Fear:        {},
	Anxiety:     {},
	Overwhelmed: {},
}

// IsPositive reports whether the label belongs to the positive class.
// Unknown labels belong to neither class.
func IsPositive(label string) bool {
	_, ok := positive[label]
	return ok
}

// IsNegative reports whether the label belongs to the negative class.
func IsNegative(label string) bool {
	_, ok := negative[label]
	return ok
}

// ClampIntensity forces an intensity into the valid 1..10 range.
func ClampIntensity(v int) int {
	if v < 1 {
		return 1
	}
	if v > 10 {
		return 10
	}
	return v
}
