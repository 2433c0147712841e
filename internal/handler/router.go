package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/vibes-app/vibes-backend/internal/middleware"
)

// RouterConfig carries the handlers and settings needed to build the router.
type RouterConfig struct {
	Fortune *FortuneHandler
	Vibe    *VibeHandler
	Health  *HealthHandler
	Metrics *MetricsHandler

	CORSAllowedOrigins []string
	MaxRequestBodySize int64
	IsDevelopment      bool
	Logger             *slog.Logger
}

// NewRouter configures the chi router with all routes and middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// RealIP must run first: identity hashes RemoteAddr.
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recoverer(cfg.Logger))
	r.Use(middleware.SecurityHeaders(cfg.IsDevelopment))

	r.Get("/healthz", cfg.Health.Healthz)
	r.Get("/readyz", cfg.Health.Readyz)
	if cfg.Metrics != nil {
		r.Get("/metrics", cfg.Metrics.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS(middleware.CORSConfig{
			AllowedOrigins: cfg.CORSAllowedOrigins,
			MaxAge:         600,
		}))
		if cfg.MaxRequestBodySize > 0 {
			r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))
		}

		r.Get("/get_fortune", cfg.Fortune.GetFortune)
		r.Post("/clarify_vibes", cfg.Fortune.ClarifyVibes)
		r.Get("/get_initial_vibe", cfg.Vibe.GetInitialVibe)
		r.Post("/update_state", cfg.Vibe.UpdateState)
	})

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	return r
}
