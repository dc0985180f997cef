package testutil_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/trs/internal/engine"
	"github.com/roach88/trs/internal/ir"
	"github.com/roach88/trs/internal/term"
	"github.com/roach88/trs/internal/testutil"
)

// runTiny runs f(a) = b to saturation on clock and returns its steps:
// add identity, start, orient, critical pairs, saturated.
func runTiny(clock *testutil.DeterministicClock) ([]ir.Step, error) {
	sig, err := term.ParseSignature("f/1 a/0 b/0")
	if err != nil {
		return nil, err
	}
	rec := engine.NewRecorder()
	s := engine.NewSession(sig,
		engine.WithClock(clock),
		engine.WithObserver(rec),
		engine.WithIDGenerator(testutil.NewFixedSessionGenerator("")))
	if _, err := s.AddIdentity("f(a) = b"); err != nil {
		return nil, err
	}
	if _, err := s.Complete(context.Background()); err != nil {
		return nil, err
	}
	return rec.Steps(), nil
}

func completeTiny(t *testing.T, clock *testutil.DeterministicClock) []ir.Step {
	t.Helper()
	steps, err := runTiny(clock)
	require.NoError(t, err)
	return steps
}

func seqs(steps []ir.Step) []int64 {
	out := make([]int64, len(steps))
	for i, s := range steps {
		out[i] = s.Seq
	}
	return out
}

func TestDeterministicClock_SharedAcrossSessions(t *testing.T) {
	clock := testutil.NewDeterministicClock()
	assert.Equal(t, int64(0), clock.Current())

	first := completeTiny(t, clock)
	second := completeTiny(t, clock)

	assert.Equal(t, []int64{1, 2, 3, 4, 5}, seqs(first))
	assert.Equal(t, []int64{6, 7, 8, 9, 10}, seqs(second), "the second session continues the first one's numbering")
	assert.Equal(t, int64(10), clock.Current())
}

func TestDeterministicClock_ResetReplaysRun(t *testing.T) {
	clock := testutil.NewDeterministicClock()
	before := completeTiny(t, clock)

	clock.Reset()
	assert.Equal(t, int64(0), clock.Current())
	after := completeTiny(t, clock)

	require.Len(t, after, len(before))
	for i := range before {
		assert.Equal(t, before[i].Seq, after[i].Seq)
		assert.Equal(t, before[i].Kind, after[i].Kind)
		assert.Equal(t, before[i].Text, after[i].Text)
	}
}

func TestDeterministicClock_ConcurrentSessions(t *testing.T) {
	clock := testutil.NewDeterministicClock()
	const sessions = 8

	results := make([][]ir.Step, sessions)
	errs := make([]error, sessions)
	var wg sync.WaitGroup
	for i := range sessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = runTiny(clock)
		}()
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for i, steps := range results {
		require.NoError(t, errs[i])
		require.Len(t, steps, 5)
		got := seqs(steps)
		for j, seq := range got {
			assert.False(t, seen[seq], "seq %d issued twice", seq)
			seen[seq] = true
			if j > 0 {
				assert.Greater(t, seq, got[j-1], "a session's steps are ordered")
			}
		}
	}
	assert.Len(t, seen, sessions*5)
	assert.Equal(t, int64(sessions*5), clock.Current())
}
