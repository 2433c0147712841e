package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

// unsetenv clears keys for the duration of the test.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	unsetenv(t, "STORE_BACKEND", "ORACLE_PROVIDER", "DEBUG_IDENTITY", "APP_PORT", "LOG_LEVEL", "LOG_FORMAT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("expected default AppEnv 'development', got %s", cfg.AppEnv)
	}
	if cfg.AppPort != 8080 {
		t.Errorf("expected default AppPort 8080, got %d", cfg.AppPort)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Errorf("unexpected logging defaults: %s/%s", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.StoreBackend != "dynamodb" {
		t.Errorf("expected default store dynamodb, got %s", cfg.StoreBackend)
	}
	if cfg.DynamoDBTable != "vibes-db" {
		t.Errorf("expected default table vibes-db, got %s", cfg.DynamoDBTable)
	}
	if cfg.OracleProvider != "openai" || cfg.OpenAIModel != "gpt-3.5-turbo" {
		t.Errorf("unexpected oracle defaults: %s/%s", cfg.OracleProvider, cfg.OpenAIModel)
	}
	if cfg.DebugIdentity {
		t.Error("debug identity must be off by default")
	}
	if cfg.WriteTimeout != 30*time.Second {
		t.Errorf("expected WriteTimeout 30s, got %s", cfg.WriteTimeout)
	}
}

func TestLoad_MissingOpenAIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ORACLE_PROVIDER", "openai")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing OPENAI_API_KEY, got nil")
	}
	if !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("error should name the missing variable: %v", err)
	}
}

func TestLoad_StubAndMemory(t *testing.T) {
	t.Setenv("ORACLE_PROVIDER", "stub")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("ORACLE_STUB_DELAY", "2s")
	t.Setenv("DEBUG_IDENTITY", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.OracleStubDelay != 2*time.Second {
		t.Errorf("expected stub delay 2s, got %s", cfg.OracleStubDelay)
	}
	if !cfg.DebugIdentity {
		t.Error("expected DebugIdentity to be true")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "redis without url", cfg: Config{StoreBackend: "redis", OracleProvider: "stub"}, wantErr: "REDIS_URL"},
		{name: "postgres without url", cfg: Config{StoreBackend: "postgres", OracleProvider: "stub"}, wantErr: "DATABASE_URL"},
		{name: "gemini without key", cfg: Config{StoreBackend: "memory", OracleProvider: "gemini"}, wantErr: "GEMINI_API_KEY"},
		{name: "unknown store", cfg: Config{StoreBackend: "etcd", OracleProvider: "stub"}, wantErr: "STORE_BACKEND"},
		{name: "unknown oracle", cfg: Config{StoreBackend: "memory", OracleProvider: "tarot"}, wantErr: "ORACLE_PROVIDER"},
		{name: "valid redis", cfg: Config{StoreBackend: "redis", RedisURL: "redis://localhost:6379", OracleProvider: "stub"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestConfig_GetCORSAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " https://vibes.example , ,http://localhost:5173"}
	got := cfg.GetCORSAllowedOrigins()
	if len(got) != 2 || got[0] != "https://vibes.example" || got[1] != "http://localhost:5173" {
		t.Errorf("unexpected origins: %v", got)
	}
	if (&Config{}).GetCORSAllowedOrigins() != nil {
		t.Error("expected nil for empty origins")
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{AppEnv: "development"}
	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return true")
	}

	cfg.AppEnv = "production"
	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to return false")
	}
}
