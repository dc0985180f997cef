package engine

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/trs/internal/ir"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	_, ok := r.Last()
	assert.False(t, ok)

	require.NoError(t, r.Observe("s", ir.Step{Seq: 1, Kind: ir.StepStart}))
	require.NoError(t, r.Observe("s", ir.Step{Seq: 2, Kind: ir.StepSaturated}))

	assert.Equal(t, 2, r.Len())
	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, int64(2), last.Seq)

	steps := r.Steps()
	steps[0].Kind = ir.StepFailed
	assert.Equal(t, ir.StepStart, r.Steps()[0].Kind, "Steps returns a copy")
}

func TestObserverErrorsDoNotStopCompletion(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	var calls int
	failing := ObserverFunc(func(string, ir.Step) error {
		calls++
		return errors.New("disk full")
	})
	s := newTestSession(t, mustSig(t, "f/1 a/0 b/0"), WithObserver(failing), WithLogger(logger))
	addAll(t, s, "f(a) = b")

	res, err := s.Complete(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateSaturated, res.State)
	assert.Equal(t, 5, calls)
	assert.Contains(t, buf.String(), "observer failed")
	assert.Contains(t, buf.String(), "disk full")
}

func TestPairLedger(t *testing.T) {
	l := NewPairLedger()
	assert.False(t, l.Seen("a", "b"))

	l.Record("a", "b")
	assert.True(t, l.Seen("b"))
	assert.True(t, l.Seen("x", "a"))
	assert.Equal(t, 2, l.Size())

	l.Clear()
	assert.False(t, l.Seen("a"))
	assert.Zero(t, l.Size())
}

func TestFixedGenerator(t *testing.T) {
	g := NewFixedGenerator("one", "two")
	assert.Equal(t, "one", g.Generate())
	assert.Equal(t, "two", g.Generate())
	assert.Panics(t, func() { g.Generate() })
}
