// Package adapt maps the current emotional state to response shaping
// directives: tone, token budget, sampling temperature, pacing and empathy
// level. The mapping is a pure, total function; the response generator is
// responsible for honouring the directives.
package adapt

import "github.com/mindberry/teplo/engine/state"

// Tone selects the overall voice of the reply.
type Tone string

const (
	ToneCalm       Tone = "calm"
	ToneWarm       Tone = "warm"
	ToneHumorous   Tone = "humorous"
	ToneGentle     Tone = "gentle"
	ToneSupportive Tone = "supportive"
)

// Length is the coarse reply length class.
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// Empathy grades how deep the reply should engage with the emotion.
type Empathy string

const (
	EmpathyLow    Empathy = "low"
	EmpathyMedium Empathy = "medium"
	EmpathyHigh   Empathy = "high"
)

// Response carries the shaping directives for the next generated reply.
// Recomputed every turn, never stored.
type Response struct {
	Tone        Tone
	Length      Length
	MaxTokens   int
	Temperature float64
	UseSilence  bool
	Empathy     Empathy
}

// Respond derives directives from the state and an optional user tone
// preference (empty means warm). High intensity overrides the preference:
// acute distress always gets a gentle, short, low-temperature reply.
func Respond(st state.State, preferred Tone) Response {
	base := preferred
	if base == "" {
		base = ToneWarm
	}

	tone := base
	switch {
	case st.Intensity >= 8:
		tone = ToneGentle
	case st.Intensity >= 6:
		tone = ToneSupportive
	case st.Intensity <= 3:
		if base == ToneHumorous {
			tone = ToneHumorous
		} else {
			tone = ToneWarm
		}
	}

	length, maxTokens := LengthMedium, 200
	switch {
	case st.Intensity >= 8 || st.StressLevel >= 8:
		length, maxTokens = LengthShort, 100
	case st.Intensity <= 3:
		length, maxTokens = LengthMedium, 250
	}

	temperature := 0.7
	switch {
	case st.Intensity >= 8:
		// Acute distress trades creativity for predictability.
		temperature = 0.5
	case st.Intensity <= 3:
		temperature = 0.8
	}

	empathy := EmpathyMedium
	switch {
	case st.Intensity >= 7:
		empathy = EmpathyHigh
	case st.Intensity <= 3:
		empathy = EmpathyLow
	}

	return Response{
		Tone:        tone,
		Length:      length,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		UseSilence:  st.Intensity >= 6 || st.StressLevel >= 6,
		Empathy:     empathy,
	}
}
