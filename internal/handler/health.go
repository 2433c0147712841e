package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// HealthChecker defines an interface for checking service health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler manages health check endpoints.
type HealthHandler struct {
	store       HealthChecker
	backendName string
	logger      *slog.Logger
}

// NewHealthHandler creates a new HealthHandler. backendName labels the
// store check in readiness responses.
func NewHealthHandler(store HealthChecker, backendName string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		store:       store,
		backendName: backendName,
		logger:      logger,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Healthz is a liveness probe endpoint. No dependency checks.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz is a readiness probe endpoint. It returns 200 only if the vibe
// store answers.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	healthy := true

	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			h.logger.Warn("readiness_check_failed", "backend", h.backendName, "error", err)
			checks[h.backendName] = "error"
			healthy = false
		} else {
			checks[h.backendName] = "ok"
		}
	} else {
		checks[h.backendName] = "not configured"
		healthy = false
	}

	status := "ok"
	statusCode := http.StatusOK
	if !healthy {
		status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	writeJSON(w, statusCode, HealthResponse{
		Status: status,
		Checks: checks,
	})
}
