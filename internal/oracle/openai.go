package oracle

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is the chat model used when none is configured.
const DefaultOpenAIModel = openai.GPT3Dot5Turbo

// OpenAIConfig holds OpenAI connection settings.
type OpenAIConfig struct {
	APIKey       string
	Organization string
	// BaseURL overrides the API root, e.g. for an OpenAI-compatible proxy.
	BaseURL string
	Model   string
	// HTTPClient is optional; tests point it at an httptest server.
	HTTPClient *http.Client
}

// OpenAIOracle calls the OpenAI chat completions API.
type OpenAIOracle struct {
	client   *openai.Client
	model    string
	prompter *Prompter
}

// NewOpenAIOracle creates an OpenAIOracle.
func NewOpenAIOracle(cfg OpenAIConfig, prompter *Prompter) (*OpenAIOracle, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: api key required")
	}
	if prompter == nil {
		prompter = NewPrompter()
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.OrgID = cfg.Organization
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if cfg.HTTPClient != nil {
		clientCfg.HTTPClient = cfg.HTTPClient
	}

	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	return &OpenAIOracle{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    model,
		prompter: prompter,
	}, nil
}

// Predict generates a new fortune.
func (o *OpenAIOracle) Predict(ctx context.Context) (string, error) {
	return o.complete(ctx, o.prompter.PredictMessages())
}

// Clarify answers a follow-up question about fortune.
func (o *OpenAIOracle) Clarify(ctx context.Context, fortune, question string) (string, error) {
	return o.complete(ctx, o.prompter.ClarifyMessages(fortune, question))
}

func (o *OpenAIOracle) complete(ctx context.Context, msgs []Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    toOpenAIMessages(msgs),
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: openai chat completion: %w", ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: openai returned no choices", ErrUnavailable)
	}

	return nonEmpty(resp.Choices[0].Message.Content)
}

func toOpenAIMessages(msgs []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleSystem {
			role = openai.ChatMessageRoleSystem
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}
