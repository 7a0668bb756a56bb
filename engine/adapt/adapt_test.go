package adapt

import (
	"testing"

	"github.com/mindberry/teplo/engine/state"
)

func TestRespondAcuteDistress(t *testing.T) {
	st := state.State{PrimaryEmotion: "fear", Intensity: 9, StressLevel: 9}
	r := Respond(st, "")

	if r.Tone != ToneGentle {
		t.Errorf("tone = %q, want gentle", r.Tone)
	}
	if r.Length != LengthShort || r.MaxTokens != 100 {
		t.Errorf("length = %q/%d, want short/100", r.Length, r.MaxTokens)
	}
	if r.Temperature != 0.5 {
		t.Errorf("temperature = %v, want 0.5", r.Temperature)
	}
	if !r.UseSilence {
		t.Error("useSilence = false, want true")
	}
	if r.Empathy != EmpathyHigh {
		t.Errorf("empathy = %q, want high", r.Empathy)
	}
}

func TestRespondMidIntensity(t *testing.T) {
	st := state.State{PrimaryEmotion: "sadness", Intensity: 6, StressLevel: 5}
	r := Respond(st, "")

	if r.Tone != ToneSupportive {
		t.Errorf("tone = %q, want supportive", r.Tone)
	}
	if r.Length != LengthMedium || r.MaxTokens != 200 {
		t.Errorf("length = %q/%d, want medium/200", r.Length, r.MaxTokens)
	}
	if r.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", r.Temperature)
	}
	if !r.UseSilence {
		t.Error("useSilence = false, want true at intensity 6")
	}
}

func TestRespondLowIntensityKeepsHumorousPreference(t *testing.T) {
	st := state.State{PrimaryEmotion: "joy", Intensity: 2, StressLevel: 2}

	r := Respond(st, ToneHumorous)
	if r.Tone != ToneHumorous {
		t.Errorf("tone = %q, want humorous preference kept", r.Tone)
	}
	if r.MaxTokens != 250 || r.Length != LengthMedium {
		t.Errorf("length = %q/%d, want medium/250", r.Length, r.MaxTokens)
	}
	if r.Temperature != 0.8 {
		t.Errorf("temperature = %v, want 0.8", r.Temperature)
	}
	if r.UseSilence {
		t.Error("useSilence = true, want false")
	}
	if r.Empathy != EmpathyLow {
		t.Errorf("empathy = %q, want low", r.Empathy)
	}

	r = Respond(st, ToneCalm)
	if r.Tone != ToneWarm {
		t.Errorf("tone = %q, want warm (non-humorous preference forced)", r.Tone)
	}
}

func TestRespondHighStressAlone(t *testing.T) {
	st := state.State{PrimaryEmotion: "tired", Intensity: 4, StressLevel: 8}
	r := Respond(st, "")
	if r.Length != LengthShort || r.MaxTokens != 100 {
		t.Errorf("length = %q/%d, want short/100 on stress alone", r.Length, r.MaxTokens)
	}
	if !r.UseSilence {
		t.Error("useSilence = false, want true at stress 8")
	}
}

func TestPromptsFallBack(t *testing.T) {
	if TonePrompt("unknown") != tonePrompts[ToneWarm] {
		t.Error("unknown tone must fall back to warm")
	}
	if EmpathyPrompt("unknown") != empathyPrompts[EmpathyMedium] {
		t.Error("unknown empathy must fall back to medium")
	}
}
