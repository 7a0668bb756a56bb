package responder

import (
	"context"
	"strings"
	"testing"

	"github.com/mindberry/teplo/core/config"
	"github.com/mindberry/teplo/engine/adapt"
)

func TestStaticAnxietyTechnique(t *testing.T) {
	reply, err := NewStatic().Reply(context.Background(), Request{Text: "Я боюсь завтрашнего разговора"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply, "Трех вопросов") {
		t.Errorf("anxiety reply missing the three-questions technique: %q", reply)
	}
}

func TestStaticDistortionDetection(t *testing.T) {
	reply, err := NewStatic().Reply(context.Background(), Request{Text: "У меня всегда все плохо"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply, "Катастрофизация") {
		t.Errorf("reply should name catastrophizing: %q", reply)
	}
	// Black-and-white thinking shares markers and must not double-fire.
	if strings.Contains(reply, "Чёрно-белое мышление") {
		t.Errorf("only one distortion per reply: %q", reply)
	}
}

func TestStaticMindReading(t *testing.T) {
	reply, err := NewStatic().Reply(context.Background(), Request{Text: "Он наверняка думает, что я глупый"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply, "Чтение мыслей") {
		t.Errorf("reply should name mind reading: %q", reply)
	}
}

func TestStaticStressFooter(t *testing.T) {
	reply, err := NewStatic().Reply(context.Background(), Request{Text: "просто рассказываю про день", Stress: 9})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(reply, "9/10") {
		t.Errorf("high stress should surface in the reply: %q", reply)
	}
}

func TestComposeInstructionsLayers(t *testing.T) {
	req := Request{
		Text:    "мне тревожно",
		Therapy: "Сейчас ты в состоянии отражения эмоции.",
		Directives: adapt.Response{
			Tone:    adapt.ToneGentle,
			Empathy: adapt.EmpathyHigh,
			Length:  adapt.LengthShort,
		},
		Cues: []string{"Недавно ты упоминал о «работа» (вчера)."},
	}
	got := composeInstructions(req)

	for _, want := range []string{
		"когнитивно-поведенческой терапии",
		"состоянии отражения эмоции",
		adapt.TonePrompt(adapt.ToneGentle),
		adapt.EmpathyPrompt(adapt.EmpathyHigh),
		"1-2 предложения",
		"Недавно ты упоминал о «работа»",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("instructions missing %q", want)
		}
	}

	// The base prompt must open the instruction block.
	if !strings.HasPrefix(got, "Ты - профессиональный психотерапевт") {
		t.Errorf("instructions must start with the base prompt, got %q", got[:40])
	}
}

func TestNewOpenAIWithoutKeyIsStatic(t *testing.T) {
	g := NewOpenAI(config.OpenAIConfig{Model: "gpt-4o-mini"})
	if _, ok := g.(*Static); !ok {
		t.Fatalf("empty key should yield the static generator, got %T", g)
	}
}
