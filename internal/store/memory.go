package store

import (
	"context"
	"sync"

	"github.com/vibes-app/vibes-backend/internal/model"
)

// MemoryStore keeps records in process memory. Used for local development
// and tests; state is lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	vibes map[string]*model.Vibe
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{vibes: make(map[string]*model.Vibe)}
}

// Get returns a copy of the stored record.
func (s *MemoryStore) Get(_ context.Context, id string) (*model.Vibe, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.vibes[id]
	if !ok {
		return nil, false, nil
	}
	return v.Clone(), true, nil
}

// Put stores a copy of vibe.
func (s *MemoryStore) Put(_ context.Context, id string, vibe *model.Vibe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.vibes[id] = vibe.Clone()
	return nil
}

// Update stores a copy of vibe and returns another copy of it.
func (s *MemoryStore) Update(_ context.Context, id string, vibe *model.Vibe) (*model.Vibe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.vibes[id] = vibe.Clone()
	return vibe.Clone(), nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
