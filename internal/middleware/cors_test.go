package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCORS(t *testing.T) {
	tests := []struct {
		name           string
		allowedOrigins []string
		requestOrigin  string
		method         string
		wantStatus     int
		wantHeader     string
	}{
		{
			name:           "no origins configured blocks all",
			allowedOrigins: nil,
			requestOrigin:  "https://vibes.example",
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
			wantHeader:     "",
		},
		{
			name:           "allowed origin gets header",
			allowedOrigins: []string{"https://vibes.example"},
			requestOrigin:  "https://vibes.example",
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
			wantHeader:     "https://vibes.example",
		},
		{
			name:           "trailing slash in config is ignored",
			allowedOrigins: []string{"https://vibes.example/"},
			requestOrigin:  "https://vibes.example",
			method:         http.MethodPost,
			wantStatus:     http.StatusOK,
			wantHeader:     "https://vibes.example",
		},
		{
			name:           "disallowed origin blocked on preflight",
			allowedOrigins: []string{"https://vibes.example"},
			requestOrigin:  "https://evil.example",
			method:         http.MethodOptions,
			wantStatus:     http.StatusForbidden,
			wantHeader:     "",
		},
		{
			name:           "preflight returns no content",
			allowedOrigins: []string{"https://vibes.example"},
			requestOrigin:  "https://vibes.example",
			method:         http.MethodOptions,
			wantStatus:     http.StatusNoContent,
			wantHeader:     "https://vibes.example",
		},
		{
			name:           "case insensitive origin match",
			allowedOrigins: []string{"HTTPS://VIBES.EXAMPLE"},
			requestOrigin:  "https://vibes.example",
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
			wantHeader:     "https://vibes.example",
		},
		{
			name:           "no origin header skips CORS",
			allowedOrigins: []string{"https://vibes.example"},
			requestOrigin:  "",
			method:         http.MethodGet,
			wantStatus:     http.StatusOK,
			wantHeader:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := CORS(CORSConfig{AllowedOrigins: tt.allowedOrigins, MaxAge: 600})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(tt.method, "/api/get_fortune", nil)
			if tt.requestOrigin != "" {
				req.Header.Set("Origin", tt.requestOrigin)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantHeader {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantHeader)
			}
		})
	}
}

func TestCORSPreflightHeaders(t *testing.T) {
	handler := CORS(CORSConfig{AllowedOrigins: []string{"https://vibes.example"}, MaxAge: 600})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight must not reach the handler")
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/update_state", nil)
	req.Header.Set("Origin", "https://vibes.example")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != corsAllowedMethods {
		t.Errorf("Access-Control-Allow-Methods = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Headers"); got != corsAllowedHeaders {
		t.Errorf("Access-Control-Allow-Headers = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "600" {
		t.Errorf("Access-Control-Max-Age = %q, want 600", got)
	}
}
