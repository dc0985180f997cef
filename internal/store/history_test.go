package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/trs/internal/engine"
	"github.com/roach88/trs/internal/ir"
	"github.com/roach88/trs/internal/term"
)

func TestWriteSession_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	rec := createTestSession("s1")
	require.NoError(t, s.WriteSession(ctx, rec))
	require.NoError(t, s.WriteSession(ctx, rec), "duplicate write is a no-op")

	got, err := s.ReadSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	require.NoError(t, s.UpdateSession(ctx, "s1", ir.StateSaturated, 42))
	got, err = s.ReadSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, ir.StateSaturated, got.State)
	assert.Equal(t, int64(42), got.Steps)
}

func TestReadSession_NotFound(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.ReadSession(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	err = s.UpdateSession(ctx, "missing", ir.StateFailed, 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestReadSessions_Ordered(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	empty, err := s.ReadSessions(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, id := range []string{"0002", "0001", "0003"} {
		require.NoError(t, s.WriteSession(ctx, createTestSession(id)))
	}
	got, err := s.ReadSessions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "0001", got[0].ID)
	assert.Equal(t, "0003", got[2].ID)
}

func TestAppendStep_OrderAndIdempotency(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.WriteSession(ctx, createTestSession("s1")))

	second := createTestStep(2, ir.StepOrient, "orient f(e,x) → x")
	second.Terms = []string{"f(e,x)", "x"}
	first := createTestStep(1, ir.StepStart, "start huet completion")

	require.NoError(t, s.AppendStep(ctx, "s1", second))
	require.NoError(t, s.AppendStep(ctx, "s1", first))
	require.NoError(t, s.AppendStep(ctx, "s1", first))

	steps, err := s.ReadSteps(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, first, steps[0])
	assert.Equal(t, second, steps[1])

	last, err := s.LastSeq(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), last)
}

func TestAppendStep_RequiresSession(t *testing.T) {
	s := createTestStore(t)
	err := s.AppendStep(context.Background(), "nope", createTestStep(1, ir.StepStart, "start"))
	assert.Error(t, err)
}

func TestAppendStep_SeqIsUniquePerSession(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.WriteSession(ctx, createTestSession("s1")))

	require.NoError(t, s.AppendStep(ctx, "s1", createTestStep(1, ir.StepStart, "start")))
	err := s.AppendStep(ctx, "s1", createTestStep(1, ir.StepSaturated, "saturated"))
	assert.Error(t, err, "a different step with the same seq violates UNIQUE(session_id, seq)")
}

func TestReplay(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.WriteSession(ctx, createTestSession("s1")))
	for i, kind := range []ir.StepKind{ir.StepStart, ir.StepOrient, ir.StepSaturated} {
		require.NoError(t, s.AppendStep(ctx, "s1", createTestStep(int64(i+1), kind, string(kind))))
	}

	var seen []int64
	require.NoError(t, s.Replay(ctx, "s1", func(st ir.Step) error {
		seen = append(seen, st.Seq)
		return nil
	}))
	assert.Equal(t, []int64{1, 2, 3}, seen)

	boom := errors.New("boom")
	err := s.Replay(ctx, "s1", func(ir.Step) error { return boom })
	assert.ErrorIs(t, err, boom)

	err = s.Replay(ctx, "missing", func(ir.Step) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)

	step, ok, err := s.StateAt(ctx, "s1", 2)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ir.StepOrient, step.Kind)

	_, ok, err = s.StateAt(ctx, "s1", 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStepWriter_RecordsCompletion(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	sig, err := term.ParseSignature("f/1 a/0 b/0")
	require.NoError(t, err)
	sess := engine.NewSession(sig,
		engine.WithIDGenerator(engine.NewFixedGenerator("run-1")),
		engine.WithObserver(NewStepWriter(ctx, s)))
	require.NoError(t, s.WriteSession(ctx, ir.SessionRecord{
		ID:        sess.ID(),
		Problem:   "tiny",
		Signature: sig.String(),
		State:     ir.StateRunning,
	}))

	_, err = sess.AddIdentity("f(a) = b")
	require.NoError(t, err)
	res, err := sess.Complete(ctx)
	require.NoError(t, err)
	require.NoError(t, s.UpdateSession(ctx, sess.ID(), ir.StateSaturated, int64(res.Steps)))

	steps, err := s.ReadSteps(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, steps, 5)
	assert.Equal(t, ir.StepAddIdentity, steps[0].Kind)
	assert.Equal(t, ir.StepSaturated, steps[4].Kind)
	assert.Equal(t, []string{"f(a) → b *"}, steps[4].Rules)
	assert.Empty(t, steps[4].Identities)
}
