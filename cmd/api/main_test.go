package main

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibes-app/vibes-backend/internal/config"
	"github.com/vibes-app/vibes-backend/internal/oracle"
	"github.com/vibes-app/vibes-backend/internal/store"
)

func TestRedactURL(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"postgres://vibes:s3cret@db:5432/vibes", "postgres://vibes@db:5432/vibes"},
		{"redis://:s3cret@cache:6379/0", "redis://redacted@cache:6379/0"},
		{"redis://cache:6379", "redis://cache:6379"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, redactURL(tt.raw), tt.raw)
	}
}

func TestSanitizeError(t *testing.T) {
	dsn := "postgres://vibes:s3cret@db:5432/vibes"
	apiKey := "sk-test-123"

	err := errors.New("dial " + dsn + " failed; key " + apiKey + " rejected; password=hunter2")
	got := sanitizeError(err, dsn, apiKey, "")

	assert.NotContains(t, got, "s3cret")
	assert.NotContains(t, got, apiKey)
	assert.NotContains(t, got, "hunter2")
	assert.Contains(t, got, "postgres://vibes@db:5432/vibes")
	assert.Empty(t, sanitizeError(nil))
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("info"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}

func TestNewStore(t *testing.T) {
	ctx := context.Background()

	s, closeFn, err := newStore(ctx, &config.Config{StoreBackend: store.BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &store.MemoryStore{}, s)
	assert.NoError(t, closeFn(ctx))

	_, _, err = newStore(ctx, &config.Config{StoreBackend: "cassandra"})
	assert.Error(t, err)
}

func TestNewOracle(t *testing.T) {
	ctx := context.Background()

	o, err := newOracle(ctx, &config.Config{OracleProvider: oracle.ProviderStub})
	require.NoError(t, err)
	text, err := o.Predict(ctx)
	require.NoError(t, err)
	assert.Equal(t, oracle.ExampleFortune, text)

	o, err = newOracle(ctx, &config.Config{
		OracleProvider: oracle.ProviderOpenAI,
		OpenAIAPIKey:   "sk-test",
		OpenAIModel:    "gpt-3.5-turbo",
	})
	require.NoError(t, err)
	assert.IsType(t, &oracle.OpenAIOracle{}, o)

	_, err = newOracle(ctx, &config.Config{OracleProvider: "crystal-ball"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "crystal-ball"))
}
