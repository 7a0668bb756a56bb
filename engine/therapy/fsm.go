// Package therapy drives the bounded CBT conversational arc:
// reflect the emotion, reframe the thought, suggest one technique,
// summarize. A crisis signal pre-empts the arc from any state.
//
// The decision step (Next) is a pure function over the context and the
// latest reading; the bookkeeping step (Apply) mutates counters and
// timestamps separately, so transitions stay inspectable.
package therapy

import "time"

// State identifies a phase of the therapy flow.
type State string

const (
	StateIdle         State = "idle"
	StateReflecting   State = "reflecting_emotion"
	StateReframing    State = "cognitive_reframing"
	StateSuggesting   State = "behavioral_suggestion"
	StateSummary      State = "summary"
	StateCrisis       State = "crisis_support"
)

const (
	// reflectDwell keeps the flow in reflection for a minimum time so it
	// cannot race through validation into advice-giving.
	reflectDwell = 2 * time.Second

	idleResetAfter    = 10 * time.Minute
	sessionResetAfter = 30 * time.Minute
)

// Context is the per-session FSM bookkeeping. Mutated only through Apply;
// recreated via NewContext when ShouldReset fires.
type Context struct {
	State             State     `json:"state"`
	ReframingAttempts int       `json:"reframing_attempts"`
	SuggestionsGiven  int       `json:"suggestions_given"`
	LastStateChange   time.Time `json:"last_state_change"`
	SessionStart      time.Time `json:"session_start"`
}

// NewContext returns a fresh idle context anchored at now.
func NewContext(now time.Time) Context {
	return Context{
		State:           StateIdle,
		LastStateChange: now,
		SessionStart:    now,
	}
}

// Next decides the following state from the current context and the latest
// reading. It never mutates the context. A crisis always wins; leaving
// crisis lands back in idle the moment the signal clears.
func Next(ctx Context, emotion string, intensity int, hasCrisis bool, now time.Time) State {
	if hasCrisis {
		return StateCrisis
	}
	if ctx.State == StateCrisis {
		return StateIdle
	}

	switch ctx.State {
	case StateIdle:
		if emotion != "" && intensity >= 5 {
			return StateReflecting
		}
		return StateIdle

	case StateReflecting:
		if ctx.ReframingAttempts == 0 && now.Sub(ctx.LastStateChange) > reflectDwell {
			return StateReframing
		}
		return StateReflecting

	case StateReframing:
		if ctx.ReframingAttempts >= 1 {
			return StateSuggesting
		}
		return StateReframing

	case StateSuggesting:
		if ctx.SuggestionsGiven >= 1 {
			return StateSummary
		}
		return StateSuggesting

	case StateSummary:
		// Still-acute distress loops back into the arc.
		if emotion != "" && intensity >= 7 {
			return StateReflecting
		}
		return StateIdle

	default:
		return StateIdle
	}
}

// Apply records the transition into the context: reframing and suggestion
// counters advance on entry to their states, and the state-change timestamp
// is refreshed on every transition. Crisis entries do not touch counters.
func Apply(ctx Context, next State, now time.Time) Context {
	switch next {
	case StateReframing:
		ctx.ReframingAttempts++
	case StateSuggesting:
		ctx.SuggestionsGiven++
	}
	ctx.State = next
	ctx.LastStateChange = now
	return ctx
}

// ShouldReset reports whether the context is stale and must be recreated:
// 10 minutes without a state change, or 30 minutes since session start.
// Evaluated lazily on the next message, never by a timer.
func ShouldReset(ctx Context, now time.Time) bool {
	if now.Sub(ctx.LastStateChange) > idleResetAfter {
		return true
	}
	if now.Sub(ctx.SessionStart) > sessionResetAfter {
		return true
	}
	return false
}
