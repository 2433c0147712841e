package oracle

import (
	"context"
	"time"
)

// Canned texts returned by StubOracle.
const (
	ExampleFortune = "Take the experience of yesterday and transform it into an opportunity for growth, allowing your intuition to guide you towards a new understanding of your path forward."
	ExampleAnswer  = "The path to the horizon is unique for every individual, and often requires effort and perseverance. The universe encourages you to trust your intuition and explore new opportunities with an open mind. Embrace change, let go of fear, and take action towards your goals. Remember, the journey is just as important as the destination, so enjoy each step along the way."
)

// StubOracle returns fixed texts without calling any API.
// Delay simulates provider latency for front-end development.
type StubOracle struct {
	Delay time.Duration
}

// NewStubOracle creates a StubOracle.
func NewStubOracle(delay time.Duration) *StubOracle {
	return &StubOracle{Delay: delay}
}

// Predict returns ExampleFortune.
func (s *StubOracle) Predict(ctx context.Context) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	return ExampleFortune, nil
}

// Clarify returns ExampleAnswer.
func (s *StubOracle) Clarify(ctx context.Context, _, _ string) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	return ExampleAnswer, nil
}

func (s *StubOracle) wait(ctx context.Context) error {
	if s.Delay <= 0 {
		return nil
	}
	t := time.NewTimer(s.Delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
