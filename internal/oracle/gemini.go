package oracle

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when GEMINI_MODEL is unset.
const DefaultGeminiModel = "gemini-2.0-flash"

// contentGenerator is the part of *genai.Models the oracle needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiOracle calls the Gemini API through google.golang.org/genai.
type GeminiOracle struct {
	models   contentGenerator
	model    string
	prompter *Prompter
}

// NewGeminiOracle creates a Gemini-backed oracle.
func NewGeminiOracle(ctx context.Context, apiKey, model string, prompter *Prompter) (*GeminiOracle, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: api key required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return newGeminiOracle(client.Models, model, prompter), nil
}

func newGeminiOracle(models contentGenerator, model string, prompter *Prompter) *GeminiOracle {
	if model == "" {
		model = DefaultGeminiModel
	}
	if prompter == nil {
		prompter = NewPrompter()
	}
	return &GeminiOracle{models: models, model: model, prompter: prompter}
}

// Predict generates a new fortune.
func (o *GeminiOracle) Predict(ctx context.Context) (string, error) {
	return o.complete(ctx, o.prompter.PredictMessages())
}

// Clarify answers a follow-up question about fortune.
func (o *GeminiOracle) Clarify(ctx context.Context, fortune, question string) (string, error) {
	return o.complete(ctx, o.prompter.ClarifyMessages(fortune, question))
}

func (o *GeminiOracle) complete(ctx context.Context, msgs []Message) (string, error) {
	system, contents := toGeminiContents(msgs)

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: system,
		Temperature:       genai.Ptr[float32](Temperature),
		MaxOutputTokens:   MaxTokens,
	}

	resp, err := o.models.GenerateContent(ctx, o.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("%w: gemini generate: %w", ErrUnavailable, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: gemini returned no candidates", ErrUnavailable)
	}

	return nonEmpty(resp.Text())
}

// toGeminiContents lifts the leading system message into the system
// instruction. Gemini has no mid-conversation system role, so later system
// turns (the replayed fortune) are sent as model turns.
func toGeminiContents(msgs []Message) (*genai.Content, []*genai.Content) {
	var system *genai.Content
	contents := make([]*genai.Content, 0, len(msgs))

	for i, m := range msgs {
		switch {
		case i == 0 && m.Role == RoleSystem:
			system = genai.NewContentFromText(m.Content, genai.RoleUser)
		case m.Role == RoleSystem:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	return system, contents
}
