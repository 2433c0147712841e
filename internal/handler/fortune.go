package handler

import (
	"log/slog"
	"net/http"

	"github.com/vibes-app/vibes-backend/internal/handler/dto"
	"github.com/vibes-app/vibes-backend/internal/service"
)

// FortuneHandler serves the oracle endpoints.
type FortuneHandler struct {
	svc    *service.FortuneService
	logger *slog.Logger
}

// NewFortuneHandler creates a new FortuneHandler.
func NewFortuneHandler(svc *service.FortuneService, logger *slog.Logger) *FortuneHandler {
	return &FortuneHandler{
		svc:    svc,
		logger: logger,
	}
}

// GetFortune handles GET /api/get_fortune.
func (h *FortuneHandler) GetFortune(w http.ResponseWriter, r *http.Request) {
	fortune, err := h.svc.Predict(r.Context())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FortuneResponse{Fortune: fortune})
}

// ClarifyVibes handles POST /api/clarify_vibes.
func (h *FortuneHandler) ClarifyVibes(w http.ResponseWriter, r *http.Request) {
	var req dto.ClarifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Question == nil || req.Fortune == nil {
		writeError(w, http.StatusBadRequest, CodeValidationFailed, "question and fortune are required")
		return
	}

	answer, err := h.svc.Clarify(r.Context(), *req.Fortune, *req.Question)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AnswerResponse{Answer: answer})
}
