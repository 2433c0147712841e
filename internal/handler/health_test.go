package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vibes-app/vibes-backend/internal/metrics"
)

type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) Ping(ctx context.Context) error {
	return m.err
}

func TestHealthHandler_Healthz(t *testing.T) {
	h := NewHealthHandler(nil, "dynamodb", discardLogger())

	rec := httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	var response HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("expected status 'ok', got %s", response.Status)
	}
}

func TestHealthHandler_Readyz(t *testing.T) {
	tests := []struct {
		name       string
		store      HealthChecker
		wantStatus int
		wantCheck  string
	}{
		{"healthy", &mockHealthChecker{}, http.StatusOK, "ok"},
		{"store down", &mockHealthChecker{err: errors.New("dial tcp 10.0.0.7:8000: connection refused")}, http.StatusServiceUnavailable, "error"},
		{"not configured", nil, http.StatusServiceUnavailable, "not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.store, "dynamodb", discardLogger())

			rec := httptest.NewRecorder()
			h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var response HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if response.Checks["dynamodb"] != tt.wantCheck {
				t.Errorf("dynamodb check = %q, want %q", response.Checks["dynamodb"], tt.wantCheck)
			}
			if strings.Contains(rec.Body.String(), "10.0.0.7") {
				t.Errorf("store error leaked into response: %s", rec.Body.String())
			}
		})
	}
}

func TestMetricsHandler(t *testing.T) {
	rec := metrics.NewInMemory()
	rec.IncFortuneGenerated()
	rec.IncFortuneGenerated()
	rec.IncVibeCreated()
	rec.IncOracleFailure()

	h := NewMetricsHandler(rec)
	w := httptest.NewRecorder()
	h.Metrics(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %s", ct)
	}

	body := w.Body.String()
	for _, line := range []string{
		`vibes_oracle_completions_total{kind="fortune"} 2`,
		`vibes_oracle_failures_total 1`,
		`vibes_records_total{event="created"} 1`,
		`vibes_records_total{event="reset"} 0`,
	} {
		if !strings.Contains(body, line) {
			t.Errorf("metrics output missing %q:\n%s", line, body)
		}
	}
}

func TestMetricsHandler_NoSnapshotter(t *testing.T) {
	h := NewMetricsHandler(nil)
	w := httptest.NewRecorder()
	h.Metrics(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
}
