package store

import (
	"context"
	"fmt"

	"github.com/roach88/trs/internal/ir"
)

// WriteSession inserts a session record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate ids are
// silently ignored.
func (s *Store) WriteSession(ctx context.Context, rec ir.SessionRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, problem, signature, problem_hash, state, steps)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		rec.ID,
		rec.Problem,
		rec.Signature,
		rec.ProblemHash,
		rec.State,
		rec.Steps,
	)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// UpdateSession records the final state of a session and the number of
// completion steps it took.
func (s *Store) UpdateSession(ctx context.Context, id, state string, steps int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET state = ?, steps = ? WHERE id = ?
	`, state, steps, id)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update session %s: %w", id, ErrSessionNotFound)
	}
	return nil
}

// AppendStep inserts one history step of a session. The step id is
// content-addressed, so appending the same step twice is a no-op.
//
// Note: The session must exist (foreign key constraint).
func (s *Store) AppendStep(ctx context.Context, sessionID string, step ir.Step) error {
	id, err := ir.StepID(sessionID, step)
	if err != nil {
		return fmt.Errorf("append step: %w", err)
	}
	terms, err := marshalStrings(step.Terms)
	if err != nil {
		return fmt.Errorf("append step: %w", err)
	}
	identities, err := marshalStrings(step.Identities)
	if err != nil {
		return fmt.Errorf("append step: %w", err)
	}
	rules, err := marshalStrings(step.Rules)
	if err != nil {
		return fmt.Errorf("append step: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO steps (id, session_id, seq, kind, text, terms, identities, rules)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		id,
		sessionID,
		step.Seq,
		string(step.Kind),
		step.Text,
		terms,
		identities,
		rules,
	)
	if err != nil {
		return fmt.Errorf("append step: %w", err)
	}
	return nil
}

// StepWriter appends the steps it observes to a store. It satisfies the
// engine's Observer interface.
type StepWriter struct {
	ctx   context.Context
	store *Store
}

// NewStepWriter returns an observer that appends steps to s under ctx.
func NewStepWriter(ctx context.Context, s *Store) *StepWriter {
	return &StepWriter{ctx: ctx, store: s}
}

// Observe appends the step.
func (w *StepWriter) Observe(sessionID string, step ir.Step) error {
	return w.store.AppendStep(w.ctx, sessionID, step)
}
