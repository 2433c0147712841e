package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vibes-app/vibes-backend/internal/model"
)

const vibeKeyPrefix = "vibe:"

// RedisStore stores each record as a JSON string under vibe:<id>.
// Records never expire; resets are driven by timeToNextOracle.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(ctx context.Context, redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return NewRedisStoreWithClient(client), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Get reads the record for id.
func (s *RedisStore) Get(ctx context.Context, id string) (*model.Vibe, bool, error) {
	data, err := s.client.Get(ctx, vibeKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: redis get: %w", ErrUnavailable, err)
	}

	var vibe model.Vibe
	if err := json.Unmarshal(data, &vibe); err != nil {
		return nil, false, fmt.Errorf("%w: decode vibe: %w", ErrInconsistent, err)
	}
	return &vibe, true, nil
}

// Put overwrites the record for id.
func (s *RedisStore) Put(ctx context.Context, id string, vibe *model.Vibe) error {
	data, err := json.Marshal(vibe)
	if err != nil {
		return fmt.Errorf("failed to marshal vibe: %w", err)
	}

	if err := s.client.Set(ctx, vibeKeyPrefix+id, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %w", ErrUnavailable, err)
	}
	return nil
}

// Update overwrites the record and reads it back in the same transaction.
func (s *RedisStore) Update(ctx context.Context, id string, vibe *model.Vibe) (*model.Vibe, error) {
	data, err := json.Marshal(vibe)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vibe: %w", err)
	}

	key := vibeKeyPrefix + id

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	get := pipe.Get(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: record missing after write", ErrInconsistent)
		}
		return nil, fmt.Errorf("%w: redis update: %w", ErrUnavailable, err)
	}

	written, err := get.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: read back: %w", ErrInconsistent, err)
	}

	var out model.Vibe
	if err := json.Unmarshal(written, &out); err != nil {
		return nil, fmt.Errorf("%w: decode vibe: %w", ErrInconsistent, err)
	}
	return &out, nil
}

// Ping checks Redis connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
