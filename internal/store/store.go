// Package store persists one vibe record per user id in a remote key-value store.
package store

import (
	"context"
	"errors"

	"github.com/vibes-app/vibes-backend/internal/model"
)

// Store errors.
var (
	// ErrUnavailable wraps any failure of the remote store call.
	ErrUnavailable = errors.New("store unavailable")
	// ErrInconsistent is returned when the store reports success but its
	// response lacks the vibe attribute.
	ErrInconsistent = errors.New("store response inconsistent")
)

// Backend names accepted by STORE_BACKEND.
const (
	BackendDynamoDB = "dynamodb"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Store reads and writes vibe records keyed by user id.
// Writes replace the whole record; the last writer wins.
type Store interface {
	// Get returns the record for id. found is false when no record exists.
	Get(ctx context.Context, id string) (vibe *model.Vibe, found bool, err error)
	// Put inserts or overwrites the record for id.
	Put(ctx context.Context, id string, vibe *model.Vibe) error
	// Update overwrites the record for id and returns the record the store
	// reports as now current.
	Update(ctx context.Context, id string, vibe *model.Vibe) (*model.Vibe, error)
	// Ping checks store connectivity.
	Ping(ctx context.Context) error
}
