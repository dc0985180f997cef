package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/trs/internal/ir"
)

// ErrStopReplay can be returned by a replay callback to end the replay
// early without an error.
var ErrStopReplay = errors.New("stop replay")

// Replay feeds the steps of a session to fn in seq order. A callback
// returning ErrStopReplay ends the replay cleanly; any other error is
// returned wrapped.
func (s *Store) Replay(ctx context.Context, sessionID string, fn func(ir.Step) error) error {
	if _, err := s.ReadSession(ctx, sessionID); err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	steps, err := s.ReadSteps(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("replay: %w", err)
		}
		if err := fn(step); err != nil {
			if errors.Is(err, ErrStopReplay) {
				return nil
			}
			return fmt.Errorf("replay step %d: %w", step.Seq, err)
		}
	}
	return nil
}

// StateAt returns the last step of a session with seq <= seq, which holds
// the identity and rule sets at that point of the run. ok is false when
// the session has no such step.
func (s *Store) StateAt(ctx context.Context, sessionID string, seq int64) (step ir.Step, ok bool, err error) {
	err = s.Replay(ctx, sessionID, func(st ir.Step) error {
		if st.Seq > seq {
			return ErrStopReplay
		}
		step, ok = st, true
		return nil
	})
	return step, ok, err
}

// LastSeq returns the highest step seq recorded for a session, or 0.
func (s *Store) LastSeq(ctx context.Context, sessionID string) (int64, error) {
	var seq int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) FROM steps WHERE session_id = ?
	`, sessionID).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	return seq, nil
}
