// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"github.com/vibes-app/vibes-backend/internal/service"
)

// FortuneResponse is the body of GET /api/get_fortune.
type FortuneResponse struct {
	Fortune string `json:"fortune"`
}

// ClarifyRequest is the body of POST /api/clarify_vibes.
type ClarifyRequest struct {
	Question *string `json:"question"`
	Fortune  *string `json:"fortune"`
}

// AnswerResponse is the body returned by POST /api/clarify_vibes.
type AnswerResponse struct {
	Answer string `json:"answer"`
}

// UpdateStateRequest is the full vibe the web app posts to
// /api/update_state. Pointers distinguish absent or null from zero values.
type UpdateStateRequest struct {
	Fortune          *string `json:"fortune"`
	Question         *string `json:"question"`
	Answer           *string `json:"answer"`
	IsButtonShown    *bool   `json:"isButtonShown"`
	IsFortuneShown   *bool   `json:"isFortuneShown"`
	IsClarityShown   *bool   `json:"isClarityShown"`
	TimeToNextOracle *int64  `json:"timeToNextOracle"`
}

// ToUpdateInput converts the request to the service input.
func (r UpdateStateRequest) ToUpdateInput() service.UpdateInput {
	return service.UpdateInput{
		Fortune:          r.Fortune,
		Question:         r.Question,
		Answer:           r.Answer,
		IsButtonShown:    r.IsButtonShown,
		IsFortuneShown:   r.IsFortuneShown,
		IsClarityShown:   r.IsClarityShown,
		TimeToNextOracle: r.TimeToNextOracle,
	}
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
