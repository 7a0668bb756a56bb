// Package responder turns the engine's per-turn decisions into the actual
// reply text. The OpenAI generator merges the therapy instruction, the tone
// and empathy directives and the memory cues into one system prompt; when
// the model is unreachable the static CBT generator takes over so the
// conversation never stalls.
package responder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/mindberry/teplo/core/config"
	"github.com/mindberry/teplo/core/logger"
	"github.com/mindberry/teplo/engine/adapt"
	"github.com/mindberry/teplo/engine/session"
)

// Request carries everything one reply depends on. It is assembled by the
// message pipeline each turn and never stored.
type Request struct {
	Text       string
	Emotion    string
	Intensity  int
	Stress     int
	Therapy    string // state instruction from the therapy flow
	Directives adapt.Response
	Cues       []string // memory callbacks, already formatted
	History    []session.ChatMessage
}

// Generator produces the reply text for one user turn.
type Generator interface {
	Reply(ctx context.Context, req Request) (string, error)
}

const systemPrompt = `Ты - профессиональный психотерапевт, специализирующийся на когнитивно-поведенческой терапии (CBT).

Твоя задача:
1. Быть эмпатичным, поддерживающим и профессиональным
2. Выявлять когнитивные искажения в мыслях клиента
3. Помогать переформулировать негативные мысли в более сбалансированные
4. Предлагать конкретные CBT-техники и упражнения
5. Не давать медицинские диагнозы или заменять профессиональную терапию

Важно:
- Отвечай кратко, но информативно
- Используй принципы CBT
- Будь теплым и понимающим
- Задавай открытые вопросы для лучшего понимания ситуации`

// OpenAI generates replies through the Responses API.
type OpenAI struct {
	client   *openai.Client
	model    string
	fallback Generator
}

// NewOpenAI builds the model-backed generator. An empty API key returns the
// static generator directly so callers never need to branch.
func NewOpenAI(cfg config.OpenAIConfig) Generator {
	if cfg.APIKey == "" {
		return NewStatic()
	}
	c := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	return &OpenAI{
		client:   &c,
		model:    cfg.Model,
		fallback: NewStatic(),
	}
}

// Reply asks the model for the next message. Any model failure degrades to
// the static generator and is logged, not surfaced.
func (o *OpenAI) Reply(ctx context.Context, req Request) (string, error) {
	text, err := o.replyRemote(ctx, req)
	if err != nil {
		logger.Warn(ctx, "responder", "reply.fallback",
			slog.String("error", err.Error()))
		return o.fallback.Reply(ctx, req)
	}
	return text, nil
}

func (o *OpenAI) replyRemote(ctx context.Context, req Request) (string, error) {
	if o.client == nil {
		return "", fmt.Errorf("responder: client is nil")
	}
	if o.model == "" {
		return "", fmt.Errorf("responder: model is empty")
	}

	input := make([]responses.ResponseInputItemUnionParam, 0, len(req.History)+1)
	for _, msg := range req.History {
		role := responses.EasyInputMessageRoleUser
		if msg.Role == "assistant" {
			role = responses.EasyInputMessageRoleAssistant
		}
		input = append(input, responses.ResponseInputItemParamOfMessage(msg.Content, role))
	}
	input = append(input, responses.ResponseInputItemParamOfMessage(req.Text, responses.EasyInputMessageRoleUser))

	params := responses.ResponseNewParams{
		Model:           o.model,
		MaxOutputTokens: openai.Int(int64(req.Directives.MaxTokens)),
		Temperature:     openai.Float(req.Directives.Temperature),
		Instructions:    openai.String(composeInstructions(req)),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: input,
		},
	}

	resp, err := o.client.Responses.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("responder: responses API: %w", err)
	}

	text := strings.TrimSpace(resp.OutputText())
	if text == "" {
		return "", fmt.Errorf("responder: empty model output")
	}
	return text, nil
}

// composeInstructions layers the per-turn directives on top of the base
// therapist prompt. Order matters: the therapy state instruction comes
// first so it dominates, memory cues come last as supporting context.
func composeInstructions(req Request) string {
	var b strings.Builder
	b.WriteString(systemPrompt)

	if req.Therapy != "" {
		b.WriteString("\n\n")
		b.WriteString(req.Therapy)
	}

	b.WriteString("\n\nТон ответа: ")
	b.WriteString(adapt.TonePrompt(req.Directives.Tone))
	b.WriteString("\nУровень эмпатии: ")
	b.WriteString(adapt.EmpathyPrompt(req.Directives.Empathy))

	switch req.Directives.Length {
	case adapt.LengthShort:
		b.WriteString("\nОтвечай очень коротко, 1-2 предложения.")
	case adapt.LengthLong:
		b.WriteString("\nМожешь ответить развернуто.")
	}

	if len(req.Cues) > 0 {
		b.WriteString("\n\nКонтекст из прошлых разговоров (вплети естественно, не перечисляй):")
		for _, cue := range req.Cues {
			b.WriteString("\n- ")
			b.WriteString(cue)
		}
	}

	return b.String()
}
