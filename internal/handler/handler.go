// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vibes-app/vibes-backend/internal/handler/dto"
	"github.com/vibes-app/vibes-backend/internal/oracle"
	"github.com/vibes-app/vibes-backend/internal/service"
	"github.com/vibes-app/vibes-backend/internal/store"
)

// Error codes returned in dto.ErrorResponse.
const (
	CodeInvalidJSON       = "INVALID_JSON"
	CodeValidationFailed  = "VALIDATION_FAILED"
	CodeOracleUnavailable = "ORACLE_UNAVAILABLE"
	CodeStoreUnavailable  = "STORE_UNAVAILABLE"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
	CodePayloadTooLarge   = "PAYLOAD_TOO_LARGE"
)

// NotFound handles 404 responses.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, CodeNotFound, "Resource not found")
}

// MethodNotAllowed handles 405 responses.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, CodeMethodNotAllowed, "Method not allowed")
}

// handleServiceError maps service errors to HTTP responses.
func handleServiceError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, CodeValidationFailed, err.Error())
	case errors.Is(err, oracle.ErrUnavailable):
		writeError(w, http.StatusBadGateway, CodeOracleUnavailable, "The oracle is silent, try again later")
	case errors.Is(err, store.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, CodeStoreUnavailable, "Vibe storage is unavailable")
	default:
		logger.Error("unexpected_error", "error", err)
		writeError(w, http.StatusInternalServerError, CodeInternalError, "An internal error occurred")
	}
}

// decodeJSON decodes the request body into dst. Bodies cut off by
// MaxBodySize answer 413, anything else that fails to decode answers 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, CodePayloadTooLarge, "Request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, CodeInvalidJSON, "Invalid request body")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{Error: message, Code: code})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
