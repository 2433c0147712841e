package handler

import (
	"log/slog"
	"net/http"

	"github.com/vibes-app/vibes-backend/internal/handler/dto"
	"github.com/vibes-app/vibes-backend/internal/identity"
	"github.com/vibes-app/vibes-backend/internal/service"
)

// VibeHandler serves the per-user state endpoints.
type VibeHandler struct {
	svc        *service.VibeService
	identifier identity.Identifier
	logger     *slog.Logger
}

// NewVibeHandler creates a new VibeHandler.
func NewVibeHandler(svc *service.VibeService, identifier identity.Identifier, logger *slog.Logger) *VibeHandler {
	return &VibeHandler{
		svc:        svc,
		identifier: identifier,
		logger:     logger,
	}
}

// GetInitialVibe handles GET /api/get_initial_vibe.
func (h *VibeHandler) GetInitialVibe(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identify(w, r)
	if !ok {
		return
	}

	vibe, err := h.svc.FetchOrCreate(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, vibe)
}

// UpdateState handles POST /api/update_state.
func (h *VibeHandler) UpdateState(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identify(w, r)
	if !ok {
		return
	}

	var req dto.UpdateStateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	vibe, err := h.svc.ApplyUpdate(r.Context(), id, req.ToUpdateInput())
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, vibe)
}

func (h *VibeHandler) identify(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := h.identifier.Identify(r)
	if err != nil {
		h.logger.Error("identify_failed", "remote_addr", r.RemoteAddr, "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternalError, "Unable to identify client")
		return "", false
	}
	return id, true
}
