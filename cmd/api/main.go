// Package main is the entrypoint for the vibes API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"

	"github.com/vibes-app/vibes-backend/internal/config"
	"github.com/vibes-app/vibes-backend/internal/handler"
	"github.com/vibes-app/vibes-backend/internal/identity"
	"github.com/vibes-app/vibes-backend/internal/metrics"
	"github.com/vibes-app/vibes-backend/internal/oracle"
	"github.com/vibes-app/vibes-backend/internal/server"
	"github.com/vibes-app/vibes-backend/internal/service"
	"github.com/vibes-app/vibes-backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	vibeStore, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize store",
			slog.String("backend", cfg.StoreBackend),
			slog.String("error", sanitizeError(err, cfg.DatabaseURL, cfg.RedisURL, cfg.AWSSecretAccessKey)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	logger.Info("store initialized", "backend", cfg.StoreBackend)

	fortuneOracle, err := newOracle(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize oracle",
			slog.String("provider", cfg.OracleProvider),
			slog.String("error", sanitizeError(err, cfg.OpenAIAPIKey, cfg.GeminiAPIKey)),
		)
		_ = closeStore(context.Background())
		os.Exit(1)
	}
	logger.Info("oracle initialized", "provider", cfg.OracleProvider)

	recorder := metrics.NewInMemory()
	vibeService := service.NewVibeService(vibeStore, recorder, logger)
	fortuneService := service.NewFortuneService(fortuneOracle, recorder, logger)

	if cfg.DebugIdentity {
		logger.Warn("debug identity enabled, all clients share one vibe", "user_id", identity.DebugUserID)
	}

	r := handler.NewRouter(handler.RouterConfig{
		Fortune:            handler.NewFortuneHandler(fortuneService, logger),
		Vibe:               handler.NewVibeHandler(vibeService, identity.New(cfg.DebugIdentity), logger),
		Health:             handler.NewHealthHandler(vibeStore, cfg.StoreBackend, logger),
		Metrics:            handler.NewMetricsHandler(recorder),
		CORSAllowedOrigins: cfg.GetCORSAllowedOrigins(),
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		IsDevelopment:      cfg.IsDevelopment(),
		Logger:             logger,
	})

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	srv.OnShutdown("store", closeStore)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"store", cfg.StoreBackend,
		"oracle", cfg.OracleProvider,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// newStore builds the configured vibe store and a function that releases it.
func newStore(ctx context.Context, cfg *config.Config) (store.Store, server.ShutdownFunc, error) {
	noop := func(context.Context) error { return nil }

	switch cfg.StoreBackend {
	case store.BackendDynamoDB:
		s, err := store.NewDynamoStore(ctx, store.DynamoConfig{
			Table:           cfg.DynamoDBTable,
			Region:          cfg.AWSRegion,
			Endpoint:        cfg.DynamoDBEndpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, noop, nil

	case store.BackendRedis:
		s, err := store.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return s, func(context.Context) error { return s.Close() }, nil

	case store.BackendPostgres:
		s, err := store.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, func(context.Context) error {
			s.Close()
			return nil
		}, nil

	case store.BackendMemory:
		return store.NewMemoryStore(), noop, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

// newOracle builds the configured fortune oracle.
func newOracle(ctx context.Context, cfg *config.Config) (oracle.Oracle, error) {
	switch cfg.OracleProvider {
	case oracle.ProviderOpenAI:
		o, err := oracle.NewOpenAIOracle(oracle.OpenAIConfig{
			APIKey:       cfg.OpenAIAPIKey,
			Organization: cfg.OpenAIOrg,
			BaseURL:      cfg.OpenAIBaseURL,
			Model:        cfg.OpenAIModel,
		}, oracle.NewPrompter())
		if err != nil {
			return nil, err
		}
		return o, nil

	case oracle.ProviderGemini:
		o, err := oracle.NewGeminiOracle(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, oracle.NewPrompter())
		if err != nil {
			return nil, err
		}
		return o, nil

	case oracle.ProviderStub:
		return oracle.NewStubOracle(cfg.OracleStubDelay), nil
	}

	return nil, fmt.Errorf("unknown oracle provider %q", cfg.OracleProvider)
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		if username := parsed.User.Username(); username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

// sanitizeError removes secrets (DSNs, API keys) from an error message.
func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		replacement := "[redacted]"
		if strings.Contains(secret, "://") {
			if redacted := redactURL(secret); redacted != "" {
				replacement = redacted
			}
		}
		msg = strings.ReplaceAll(msg, secret, replacement)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
