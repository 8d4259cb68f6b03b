package header_mapping_service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/init-pkg/siot-loader/domain/app"
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v2"
)

type SuggestedMapping struct {
	ExcelHeader     string  `json:"excel_header" jsonschema_description:"Spreadsheet column header exactly as given"`
	CanonicalField  string  `json:"canonical_field" jsonschema_description:"One of the canonical field names, or unknown"`
	ConfidenceScore float64 `json:"confidence_score" jsonschema:"minimum=0,maximum=1" jsonschema_description:"Mapping confidence from 0 to 1"`
}

type SuggestionResponse struct {
	Mappings []SuggestedMapping `json:"mappings" jsonschema_description:"Array of header to field suggestions"`
}

func GenerateSchema[T any]() interface{} {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}

var SuggestionResponseSchema = GenerateSchema[SuggestionResponse]()

var suggestionSchemaParam = openai.ResponseFormatJSONSchemaJSONSchemaParam{
	Name:        "header_suggestions",
	Description: openai.String("Spreadsheet headers to canonical work-order fields"),
	Schema:      SuggestionResponseSchema,
	Strict:      openai.Bool(true),
}

type suggestionInput struct {
	Headers   []string `json:"headers"`
	Canonical []string `json:"canonical_fields"`
}

// HeaderSuggestionService asks a chat model which canonical field an
// unresolved header probably means. Suggestions are never applied.
type HeaderSuggestionService struct {
	openaiClient  *openai.Client
	model         string
	minConfidence float64
	ctxTimeout    time.Duration
	log           *slog.Logger
}

var _ app.HeaderSuggester = &HeaderSuggestionService{}

func NewSuggestionService(openaiClient *openai.Client, model string, log *slog.Logger) *HeaderSuggestionService {
	if model == "" {
		model = openai.ChatModelGPT5Nano
	}
	return &HeaderSuggestionService{
		openaiClient:  openaiClient,
		model:         model,
		minConfidence: 0.5,
		ctxTimeout:    25 * time.Second,
		log:           log,
	}
}

func (s *HeaderSuggestionService) Suggest(ctx context.Context, unresolved []string, canonical []string) ([]app.HeaderSuggestion, error) {
	if len(unresolved) == 0 {
		return nil, nil
	}

	js, err := json.Marshal(suggestionInput{Headers: unresolved, Canonical: canonical})
	if err != nil {
		return nil, fmt.Errorf("build input json: %w", err)
	}

	resp, err := s.callModel(ctx, string(js))
	if err != nil {
		return nil, err
	}

	known := make(map[string]struct{}, len(canonical))
	for _, c := range canonical {
		known[c] = struct{}{}
	}

	var out []app.HeaderSuggestion
	for _, m := range resp.Mappings {
		if _, ok := known[m.CanonicalField]; !ok {
			continue
		}
		score := clamp01(m.ConfidenceScore)
		if score < s.minConfidence {
			continue
		}
		out = append(out, app.HeaderSuggestion{
			Header:     m.ExcelHeader,
			Field:      m.CanonicalField,
			Confidence: score,
		})
	}

	s.log.Info("header suggestions", "unresolved", len(unresolved), "suggested", len(out))
	return out, nil
}

func (s *HeaderSuggestionService) callModel(ctx context.Context, inputJSON string) (SuggestionResponse, error) {
	system := "You map spreadsheet column headers of Spanish work-order sheets to a fixed list of canonical field names. " +
		"If unsure, use \"unknown\". Return ONLY the JSON required by the schema."
	user := fmt.Sprintf("Map headers to canonical fields.\nINPUT_JSON:\n%s", inputJSON)

	ctx, cancel := context.WithTimeout(ctx, s.ctxTimeout)
	defer cancel()

	chat, err := s.openaiClient.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: suggestionSchemaParam,
			},
		},
		Seed:  openai.Int(42),
		Model: s.model,
	})
	if err != nil {
		return SuggestionResponse{}, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(chat.Choices) == 0 {
		return SuggestionResponse{}, errors.New("openai: empty choices")
	}

	var resp SuggestionResponse
	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), &resp); err != nil {
		return SuggestionResponse{}, fmt.Errorf("unmarshal model output: %w", err)
	}
	return resp, nil
}

// NoopSuggester is wired when no model is configured.
type NoopSuggester struct{}

func (NoopSuggester) Suggest(context.Context, []string, []string) ([]app.HeaderSuggestion, error) {
	return nil, nil
}

func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	}
	return math.Round(x*100) / 100
}
