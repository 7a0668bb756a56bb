package therapy

import (
	"testing"
	"time"
)

var t0 = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func TestNextFromIdle(t *testing.T) {
	ctx := NewContext(t0)

	if got := Next(ctx, "anxiety", 5, false, t0); got != StateReflecting {
		t.Fatalf("idle + intensity 5 = %q, want reflecting_emotion", got)
	}
	if got := Next(ctx, "anxiety", 4, false, t0); got != StateIdle {
		t.Fatalf("idle + intensity 4 = %q, want idle", got)
	}
	if got := Next(ctx, "", 9, false, t0); got != StateIdle {
		t.Fatalf("idle without emotion = %q, want idle", got)
	}
}

func TestCrisisPreemptsEveryState(t *testing.T) {
	for _, st := range []State{StateIdle, StateReflecting, StateReframing, StateSuggesting, StateSummary, StateCrisis} {
		ctx := NewContext(t0)
		ctx.State = st
		if got := Next(ctx, "fear", 2, true, t0); got != StateCrisis {
			t.Errorf("crisis from %q = %q, want crisis_support", st, got)
		}
	}

	ctx := NewContext(t0)
	ctx.State = StateCrisis
	if got := Next(ctx, "fear", 9, false, t0); got != StateIdle {
		t.Fatalf("crisis cleared = %q, want idle", got)
	}
}

func TestReflectingDwellGuard(t *testing.T) {
	ctx := Apply(NewContext(t0), StateReflecting, t0)

	if got := Next(ctx, "anxiety", 8, false, t0.Add(time.Second)); got != StateReflecting {
		t.Fatalf("within dwell = %q, want reflecting_emotion", got)
	}
	if got := Next(ctx, "anxiety", 8, false, t0.Add(3*time.Second)); got != StateReframing {
		t.Fatalf("after dwell = %q, want cognitive_reframing", got)
	}

	// A second pass through reflection does not reframe again.
	ctx.ReframingAttempts = 1
	if got := Next(ctx, "anxiety", 8, false, t0.Add(time.Minute)); got != StateReflecting {
		t.Fatalf("with attempts recorded = %q, want reflecting_emotion", got)
	}
}

func TestApplyBookkeeping(t *testing.T) {
	ctx := NewContext(t0)

	ctx = Apply(ctx, StateReframing, t0.Add(time.Minute))
	if ctx.ReframingAttempts != 1 {
		t.Fatalf("reframing attempts = %d, want 1", ctx.ReframingAttempts)
	}
	if !ctx.LastStateChange.Equal(t0.Add(time.Minute)) {
		t.Fatalf("last state change not refreshed: %v", ctx.LastStateChange)
	}

	ctx = Apply(ctx, StateSuggesting, t0.Add(2*time.Minute))
	if ctx.SuggestionsGiven != 1 {
		t.Fatalf("suggestions = %d, want 1", ctx.SuggestionsGiven)
	}

	// Crisis entry leaves the arc counters untouched.
	before := ctx
	ctx = Apply(ctx, StateCrisis, t0.Add(3*time.Minute))
	if ctx.ReframingAttempts != before.ReframingAttempts || ctx.SuggestionsGiven != before.SuggestionsGiven {
		t.Fatal("crisis entry must not advance counters")
	}
}

func TestSummaryLoop(t *testing.T) {
	ctx := NewContext(t0)
	ctx.State = StateSummary

	if got := Next(ctx, "anxiety", 7, false, t0); got != StateReflecting {
		t.Fatalf("summary + intensity 7 = %q, want reflecting_emotion", got)
	}
	if got := Next(ctx, "anxiety", 6, false, t0); got != StateIdle {
		t.Fatalf("summary + intensity 6 = %q, want idle", got)
	}
}

func TestThreeMessageArc(t *testing.T) {
	ctx := NewContext(t0)
	now := t0

	step := func(emotion string, intensity int) State {
		now = now.Add(5 * time.Second)
		next := Next(ctx, emotion, intensity, false, now)
		ctx = Apply(ctx, next, now)
		return next
	}

	if got := step("anxiety", 8); got != StateReflecting {
		t.Fatalf("step 1 = %q, want reflecting_emotion", got)
	}
	if got := step("anxiety", 9); got != StateReframing {
		t.Fatalf("step 2 = %q, want cognitive_reframing", got)
	}
	if got := step("fear", 3); got != StateSuggesting {
		t.Fatalf("step 3 = %q, want behavioral_suggestion", got)
	}
}

func TestShouldReset(t *testing.T) {
	ctx := NewContext(t0)

	if ShouldReset(ctx, t0.Add(5*time.Minute)) {
		t.Fatal("fresh context must not reset")
	}
	if !ShouldReset(ctx, t0.Add(11*time.Minute)) {
		t.Fatal("10 minutes without a state change must reset")
	}

	ctx.LastStateChange = t0.Add(29 * time.Minute)
	if !ShouldReset(ctx, t0.Add(31*time.Minute)) {
		t.Fatal("30 minutes since session start must reset")
	}
}

func TestPromptPerState(t *testing.T) {
	p := Prompt(StateReflecting, "anxiety", 8)
	if p == "" || p == Prompt(StateIdle, "", 0) {
		t.Fatal("reflection prompt must be state specific")
	}
	if Prompt(StateCrisis, "", 0) == "" {
		t.Fatal("crisis prompt must not be empty")
	}
	if Prompt(State("bogus"), "", 0) != Prompt(StateIdle, "", 0) {
		t.Fatal("unknown state must use the default prompt")
	}
}
