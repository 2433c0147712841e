package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibes-app/vibes-backend/internal/metrics"
	"github.com/vibes-app/vibes-backend/internal/oracle"
)

type fakeOracle struct {
	text string
	err  error

	gotFortune  string
	gotQuestion string
}

func (f *fakeOracle) Predict(context.Context) (string, error) {
	return f.text, f.err
}

func (f *fakeOracle) Clarify(_ context.Context, fortune, question string) (string, error) {
	f.gotFortune, f.gotQuestion = fortune, question
	return f.text, f.err
}

func TestFortuneService_Predict(t *testing.T) {
	rec := metrics.NewInMemory()
	svc := NewFortuneService(&fakeOracle{text: "Beware the quiet Tuesday."}, rec, discardLogger())

	text, err := svc.Predict(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Beware the quiet Tuesday.", text)

	snap := rec.Snapshot()
	assert.EqualValues(t, 1, snap.FortunesGenerated)
	assert.EqualValues(t, 1, snap.OracleDurationCount)
}

func TestFortuneService_Clarify(t *testing.T) {
	o := &fakeOracle{text: "Tuesdays pass."}
	svc := NewFortuneService(o, nil, discardLogger())

	text, err := svc.Clarify(context.Background(), "Beware the quiet Tuesday.", "Which Tuesday?")
	require.NoError(t, err)
	assert.Equal(t, "Tuesdays pass.", text)
	assert.Equal(t, "Beware the quiet Tuesday.", o.gotFortune)
	assert.Equal(t, "Which Tuesday?", o.gotQuestion)
}

func TestFortuneService_OracleFailure(t *testing.T) {
	rec := metrics.NewInMemory()
	svc := NewFortuneService(&fakeOracle{err: fmt.Errorf("%w: timeout", oracle.ErrUnavailable)}, rec, discardLogger())

	_, err := svc.Predict(context.Background())
	assert.ErrorIs(t, err, oracle.ErrUnavailable)

	_, err = svc.Clarify(context.Background(), "f", "q")
	assert.ErrorIs(t, err, oracle.ErrUnavailable)

	assert.EqualValues(t, 2, rec.Snapshot().OracleFailures)
}

func TestFortuneService_EmptySuccessIsFailure(t *testing.T) {
	svc := NewFortuneService(&fakeOracle{}, nil, discardLogger())

	text, err := svc.Predict(context.Background())
	assert.ErrorIs(t, err, oracle.ErrUnavailable)
	assert.Empty(t, text)
}
