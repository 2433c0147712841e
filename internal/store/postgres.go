package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vibes-app/vibes-backend/internal/model"
)

const vibesSchema = `
	CREATE TABLE IF NOT EXISTS vibes (
		id         TEXT PRIMARY KEY,
		vibe       JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// PostgresStore stores each record as a JSONB row keyed by user id.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to PostgreSQL and makes sure the vibes table exists.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{pool: pool}
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// EnsureSchema creates the vibes table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, vibesSchema); err != nil {
		return fmt.Errorf("failed to create vibes table: %w", err)
	}
	return nil
}

// Get reads the record for id.
func (s *PostgresStore) Get(ctx context.Context, id string) (*model.Vibe, bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT vibe FROM vibes WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: select vibe: %w", ErrUnavailable, err)
	}

	vibe, err := decodeVibeJSON(raw)
	if err != nil {
		return nil, false, err
	}
	return vibe, true, nil
}

// Put inserts or overwrites the record for id.
func (s *PostgresStore) Put(ctx context.Context, id string, vibe *model.Vibe) error {
	data, err := json.Marshal(vibe)
	if err != nil {
		return fmt.Errorf("failed to marshal vibe: %w", err)
	}

	query := `
		INSERT INTO vibes (id, vibe, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE
		SET vibe = EXCLUDED.vibe, updated_at = now()
	`
	if _, err := s.pool.Exec(ctx, query, id, data); err != nil {
		return fmt.Errorf("%w: insert vibe: %w", ErrUnavailable, err)
	}
	return nil
}

// Update overwrites the record for id and returns the stored JSON.
func (s *PostgresStore) Update(ctx context.Context, id string, vibe *model.Vibe) (*model.Vibe, error) {
	data, err := json.Marshal(vibe)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vibe: %w", err)
	}

	query := `
		INSERT INTO vibes (id, vibe, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE
		SET vibe = EXCLUDED.vibe, updated_at = now()
		RETURNING vibe
	`

	var raw []byte
	if err := s.pool.QueryRow(ctx, query, id, data).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no row returned", ErrInconsistent)
		}
		return nil, fmt.Errorf("%w: update vibe: %w", ErrUnavailable, err)
	}

	return decodeVibeJSON(raw)
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

func decodeVibeJSON(raw []byte) (*model.Vibe, error) {
	var vibe model.Vibe
	if err := json.Unmarshal(raw, &vibe); err != nil {
		return nil, fmt.Errorf("%w: decode vibe: %w", ErrInconsistent, err)
	}
	return &vibe, nil
}
