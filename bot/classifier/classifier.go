// Package classifier turns raw user text into emotion records. The primary
// implementation asks an OpenAI model for a strict-schema JSON reading; the
// fallback matches Russian keyword stems so the bot keeps working without
// an API key. Both clamp intensity before the engine ever sees the record.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
	"log/slog"

	"github.com/mindberry/teplo/core/config"
	"github.com/mindberry/teplo/core/logger"
	"github.com/mindberry/teplo/engine/emotion"
)

// Classifier labels one message with an emotion reading.
type Classifier interface {
	Classify(ctx context.Context, text string, now time.Time) (emotion.Record, error)
}

const classifyInstructions = `Определи эмоциональное состояние пользователя по его сообщению.
Выбери primary из: joy, sadness, anger, fear, surprise, disgust, neutral, anxiety, calm, excited, tired, overwhelmed.
secondary — вторая заметная эмоция из того же списка или пустая строка.
intensity — целое от 1 (едва заметно) до 10 (максимально остро).
Отвечай только JSON.`

type reading struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Intensity int    `json:"intensity"`
}

var readingSchema = generateSchema[reading]()

// OpenAI classifies messages through the Responses API with a strict JSON
// schema output format.
type OpenAI struct {
	client *openai.Client
	model  string
	// fallback handles API failures so a single flaky call does not drop
	// the message on the floor.
	fallback Classifier
}

// NewOpenAI builds a model-backed classifier that degrades to the keyword
// fallback on errors. An empty API key returns the keyword classifier
// directly.
func NewOpenAI(cfg config.OpenAIConfig) Classifier {
	if cfg.APIKey == "" {
		return NewKeyword()
	}
	c := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	return &OpenAI{
		client:   &c,
		model:    cfg.Model,
		fallback: NewKeyword(),
	}
}

// Classify labels the text. Errors from the API are logged and absorbed by
// the keyword fallback; the engine always receives a record.
func (o *OpenAI) Classify(ctx context.Context, text string, now time.Time) (emotion.Record, error) {
	rec, err := o.classifyRemote(ctx, text, now)
	if err != nil {
		logger.Warn(ctx, "classifier", "classify.fallback",
			slog.String("cause", err.Error()),
		)
		return o.fallback.Classify(ctx, text, now)
	}
	return rec, nil
}

func (o *OpenAI) classifyRemote(ctx context.Context, text string, now time.Time) (emotion.Record, error) {
	if o.client == nil {
		return emotion.Record{}, fmt.Errorf("classifier: client is nil")
	}
	if o.model == "" {
		return emotion.Record{}, fmt.Errorf("classifier: model is empty")
	}

	format := responses.ResponseFormatTextConfigUnionParam{
		OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
			Name:        "EmotionReading",
			Schema:      readingSchema,
			Strict:      openai.Bool(true),
			Description: openai.String("Emotion reading JSON"),
			Type:        "json_schema",
		},
	}

	params := responses.ResponseNewParams{
		Model:           o.model,
		MaxOutputTokens: openai.Int(120),
		Instructions:    openai.String(classifyInstructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: []responses.ResponseInputItemUnionParam{
				responses.ResponseInputItemParamOfMessage(text, responses.EasyInputMessageRoleUser),
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: format,
		},
	}

	resp, err := o.client.Responses.New(ctx, params)
	if err != nil {
		return emotion.Record{}, fmt.Errorf("classifier: responses call: %w", err)
	}

	var out reading
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp.OutputText())), &out); err != nil {
		return emotion.Record{}, fmt.Errorf("classifier: unmarshal reading: %w", err)
	}

	primary := strings.ToLower(strings.TrimSpace(out.Primary))
	if primary == "" {
		primary = emotion.Neutral
	}

	return emotion.Record{
		Primary:   primary,
		Secondary: strings.ToLower(strings.TrimSpace(out.Secondary)),
		Intensity: emotion.ClampIntensity(out.Intensity),
		Timestamp: now,
	}, nil
}

func generateSchema[T any]() map[string]interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	raw, err := reflector.Reflect(v).MarshalJSON()
	if err != nil {
		panic(err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	ensureStrictSchema(out)
	return out
}

// ensureStrictSchema marks every object property required and closes the
// schema, as OpenAI strict mode demands.
func ensureStrictSchema(schema map[string]interface{}) {
	if t, ok := schema["type"].(string); ok && t == "object" {
		schema["additionalProperties"] = false
		if props, ok := schema["properties"].(map[string]interface{}); ok {
			required := make([]string, 0, len(props))
			for name := range props {
				required = append(required, name)
			}
			if len(required) > 0 {
				schema["required"] = required
			}
		}
	}
	if props, ok := schema["properties"].(map[string]interface{}); ok {
		for _, p := range props {
			if m, ok := p.(map[string]interface{}); ok {
				ensureStrictSchema(m)
			}
		}
	}
	if items, ok := schema["items"].(map[string]interface{}); ok {
		ensureStrictSchema(items)
	}
}
