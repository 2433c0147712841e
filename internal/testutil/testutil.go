// Package testutil holds helpers shared by integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/vibes-app/vibes-backend/internal/model"
)

// OracleCooldown is how long the web app waits after a reveal before the
// server may reset the vibe.
const OracleCooldown = 24 * time.Hour

// NextOracleAfter returns the epoch-millisecond timeToNextOracle the web app
// sends once a fortune has been revealed at now.
func NextOracleAfter(now time.Time) int64 {
	return now.Add(OracleCooldown).UnixMilli()
}

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

// NewRedisClient connects to REDIS_URL or skips the test.
func NewRedisClient(t testing.TB) *redis.Client {
	t.Helper()

	opt, err := redis.ParseURL(RequireEnv(t, "REDIS_URL"))
	if err != nil {
		t.Fatalf("parse REDIS_URL: %v", err)
	}

	client := redis.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}
	return client
}

// NewPostgresPool connects to DATABASE_URL or skips the test.
func NewPostgresPool(t testing.TB) *pgxpool.Pool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, RequireEnv(t, "DATABASE_URL"))
	if err != nil {
		t.Fatalf("connect DATABASE_URL: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := pool.Ping(ctx); err != nil {
		t.Skipf("postgres not reachable: %v", err)
	}
	return pool
}

// DeleteVibe removes a vibe row so a test starts from a clean slate.
func DeleteVibe(ctx context.Context, pool *pgxpool.Pool, id string) error {
	if _, err := pool.Exec(ctx, `DELETE FROM vibes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete vibe %s: %w", id, err)
	}
	return nil
}

// NewRevealedVibe returns a vibe as the web app stores it right after a
// fortune was revealed at now.
func NewRevealedVibe(t testing.TB, fortune string, now time.Time) *model.Vibe {
	t.Helper()
	empty := ""
	next := NextOracleAfter(now)
	return &model.Vibe{
		Fortune:          &fortune,
		Question:         &empty,
		Answer:           &empty,
		IsFortuneShown:   true,
		TimeToNextOracle: &next,
	}
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
