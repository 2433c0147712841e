// Package service provides business logic for the application.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vibes-app/vibes-backend/internal/metrics"
	"github.com/vibes-app/vibes-backend/internal/model"
	"github.com/vibes-app/vibes-backend/internal/store"
)

// ErrValidation is returned when an update payload lacks a required field.
var ErrValidation = errors.New("invalid vibe state")

// UpdateInput is a full replacement vibe as sent by the web app.
// Nil means the field was absent or null in the payload.
type UpdateInput struct {
	Fortune          *string
	Question         *string
	Answer           *string
	IsButtonShown    *bool
	IsFortuneShown   *bool
	IsClarityShown   *bool
	TimeToNextOracle *int64
}

// VibeService owns the per-user vibe lifecycle: lazy creation, expiry
// driven reset and wholesale updates.
type VibeService struct {
	store   store.Store
	metrics metrics.Recorder
	logger  *slog.Logger
	now     func() time.Time
}

// VibeOption configures a VibeService.
type VibeOption func(*VibeService)

// WithClock overrides the wall clock used for expiry checks.
func WithClock(now func() time.Time) VibeOption {
	return func(s *VibeService) { s.now = now }
}

// NewVibeService creates a new VibeService.
func NewVibeService(st store.Store, recorder metrics.Recorder, logger *slog.Logger, opts ...VibeOption) *VibeService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &VibeService{
		store:   st,
		metrics: recorder,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize writes the default vibe for id. First-time users are inserted;
// existing users are overwritten through the update path. It returns the
// record actually written.
func (s *VibeService) Initialize(ctx context.Context, id string, firstTime bool) (*model.Vibe, error) {
	vibe := model.DefaultVibe()

	if firstTime {
		if err := s.store.Put(ctx, id, vibe); err != nil {
			return nil, s.storeFailure("put", id, err)
		}
		s.metrics.IncVibeCreated()
		s.logger.Info("vibe_created", "user_id", id)
		return vibe, nil
	}

	written, err := s.store.Update(ctx, id, vibe)
	if err != nil {
		return nil, s.storeFailure("update", id, err)
	}
	s.metrics.IncVibeReset()
	s.logger.Info("vibe_reset", "user_id", id)
	return written, nil
}

// FetchOrCreate returns the current vibe for id, creating it on first
// access and resetting it once its timeToNextOracle has passed.
func (s *VibeService) FetchOrCreate(ctx context.Context, id string) (*model.Vibe, error) {
	vibe, found, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.storeFailure("get", id, err)
	}

	if !found {
		return s.Initialize(ctx, id, true)
	}

	if vibe.IsExpired(s.now()) {
		resetAt, _ := vibe.ResetAt()
		s.logger.Debug("vibe_expired", "user_id", id, "reset_at", resetAt)
		return s.Initialize(ctx, id, false)
	}

	return vibe, nil
}

// ApplyUpdate replaces the vibe for id and returns what the store reports.
//
// Absent text fields are written as empty strings while a freshly created
// vibe reads them back as null. The web app relies on both shapes.
func (s *VibeService) ApplyUpdate(ctx context.Context, id string, in UpdateInput) (*model.Vibe, error) {
	vibe, err := in.toVibe()
	if err != nil {
		s.logger.Warn("vibe_update_rejected", "user_id", id, "error", err)
		return nil, err
	}

	written, err := s.store.Update(ctx, id, vibe)
	if err != nil {
		return nil, s.storeFailure("update", id, err)
	}

	s.metrics.IncVibeUpdated()
	s.logger.Info("vibe_updated", "user_id", id)
	return written, nil
}

func (in UpdateInput) toVibe() (*model.Vibe, error) {
	var missing []string
	if in.IsButtonShown == nil {
		missing = append(missing, "isButtonShown")
	}
	if in.IsFortuneShown == nil {
		missing = append(missing, "isFortuneShown")
	}
	if in.IsClarityShown == nil {
		missing = append(missing, "isClarityShown")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %v", ErrValidation, missing)
	}

	vibe := &model.Vibe{
		Fortune:        orEmpty(in.Fortune),
		Question:       orEmpty(in.Question),
		Answer:         orEmpty(in.Answer),
		IsButtonShown:  *in.IsButtonShown,
		IsFortuneShown: *in.IsFortuneShown,
		IsClarityShown: *in.IsClarityShown,
	}
	if in.TimeToNextOracle != nil {
		next := *in.TimeToNextOracle
		vibe.TimeToNextOracle = &next
	}
	return vibe, nil
}

func orEmpty(s *string) *string {
	v := ""
	if s != nil {
		v = *s
	}
	return &v
}

func (s *VibeService) storeFailure(op, id string, err error) error {
	s.metrics.IncStoreFailure()
	s.logger.Error("store_failure",
		"operation", op,
		"user_id", id,
		"error", err,
	)
	return fmt.Errorf("%s vibe for %s: %w", op, id, err)
}
