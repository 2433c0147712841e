package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vibes-app/vibes-backend/internal/metrics"
	"github.com/vibes-app/vibes-backend/internal/oracle"
)

// FortuneService asks the oracle for fortunes and clarifications.
// Failures are logged and returned as-is; nothing is retried.
type FortuneService struct {
	oracle  oracle.Oracle
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewFortuneService creates a new FortuneService.
func NewFortuneService(o oracle.Oracle, recorder metrics.Recorder, logger *slog.Logger) *FortuneService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FortuneService{oracle: o, metrics: recorder, logger: logger}
}

// Predict returns a new fortune.
func (s *FortuneService) Predict(ctx context.Context) (string, error) {
	start := time.Now()
	text, err := s.oracle.Predict(ctx)
	s.metrics.ObserveOracleDuration(time.Since(start))

	if err == nil && text == "" {
		err = fmt.Errorf("%w: empty fortune", oracle.ErrUnavailable)
	}
	if err != nil {
		s.metrics.IncOracleFailure()
		s.logger.Error("oracle_failure", "operation", "predict", "error", err)
		return "", fmt.Errorf("predict fortune: %w", err)
	}

	s.metrics.IncFortuneGenerated()
	s.logger.Info("fortune_generated", "length", len(text))
	return text, nil
}

// Clarify answers question about a previously issued fortune.
func (s *FortuneService) Clarify(ctx context.Context, fortune, question string) (string, error) {
	start := time.Now()
	text, err := s.oracle.Clarify(ctx, fortune, question)
	s.metrics.ObserveOracleDuration(time.Since(start))

	if err == nil && text == "" {
		err = fmt.Errorf("%w: empty answer", oracle.ErrUnavailable)
	}
	if err != nil {
		s.metrics.IncOracleFailure()
		s.logger.Error("oracle_failure", "operation", "clarify", "error", err)
		return "", fmt.Errorf("clarify fortune: %w", err)
	}

	s.metrics.IncClarificationGenerated()
	s.logger.Info("clarification_generated", "length", len(text))
	return text, nil
}
