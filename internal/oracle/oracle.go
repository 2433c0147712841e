// Package oracle produces fortune and clarification text from a
// generative-text chat API.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnavailable is returned for any provider or transport failure, and
// when the provider answers with no text.
var ErrUnavailable = errors.New("oracle unavailable")

// Provider names accepted by ORACLE_PROVIDER.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderStub   = "stub"
)

// Sampling parameters shared by every provider.
const (
	Temperature = 1.0
	MaxTokens   = 75
)

// Oracle generates predictive text.
type Oracle interface {
	// Predict returns a fresh fortune.
	Predict(ctx context.Context) (string, error)
	// Clarify answers question in the context of a previously issued fortune.
	Clarify(ctx context.Context, fortune, question string) (string, error)
}

// Role is a chat message role.
type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
)

// Message is one provider-neutral chat turn.
type Message struct {
	Role    Role
	Content string
}

// nonEmpty turns a blank completion into ErrUnavailable.
func nonEmpty(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty completion", ErrUnavailable)
	}
	return text, nil
}
