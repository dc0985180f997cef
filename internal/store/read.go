package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/trs/internal/ir"
)

// ErrSessionNotFound is returned when a session id is not in the store.
var ErrSessionNotFound = errors.New("session not found")

// ReadSession retrieves a single session by id.
// Returns ErrSessionNotFound if it does not exist.
func (s *Store) ReadSession(ctx context.Context, id string) (ir.SessionRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, problem, signature, problem_hash, state, steps
		FROM sessions
		WHERE id = ?
	`, id)

	var rec ir.SessionRecord
	err := row.Scan(&rec.ID, &rec.Problem, &rec.Signature, &rec.ProblemHash, &rec.State, &rec.Steps)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.SessionRecord{}, fmt.Errorf("read session %s: %w", id, ErrSessionNotFound)
	}
	if err != nil {
		return ir.SessionRecord{}, fmt.Errorf("read session: %w", err)
	}
	return rec, nil
}

// ReadSessions returns every session ordered by id. Session ids are
// UUIDv7, so this is creation order.
//
// Returns an empty slice (not nil) if the store has no sessions.
func (s *Store) ReadSessions(ctx context.Context) ([]ir.SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, problem, signature, problem_hash, state, steps
		FROM sessions
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []ir.SessionRecord{}
	for rows.Next() {
		var rec ir.SessionRecord
		if err := rows.Scan(&rec.ID, &rec.Problem, &rec.Signature, &rec.ProblemHash, &rec.State, &rec.Steps); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// ReadSteps returns all steps of a session with deterministic ordering:
// ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if the session has no steps.
func (s *Store) ReadSteps(ctx context.Context, sessionID string) ([]ir.Step, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, kind, text, terms, identities, rules
		FROM steps
		WHERE session_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	steps := []ir.Step{}
	for rows.Next() {
		step, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}
	return steps, nil
}

// scanStep scans a row into a Step.
func scanStep(rows *sql.Rows) (ir.Step, error) {
	var (
		step                     ir.Step
		kind                     string
		terms, identities, rules string
	)
	if err := rows.Scan(&step.Seq, &kind, &step.Text, &terms, &identities, &rules); err != nil {
		return ir.Step{}, fmt.Errorf("scan step: %w", err)
	}
	step.Kind = ir.StepKind(kind)

	var err error
	if step.Terms, err = unmarshalStrings(terms); err != nil {
		return ir.Step{}, err
	}
	if len(step.Terms) == 0 {
		step.Terms = nil
	}
	if step.Identities, err = unmarshalStrings(identities); err != nil {
		return ir.Step{}, err
	}
	if step.Rules, err = unmarshalStrings(rules); err != nil {
		return ir.Step{}, err
	}
	return step, nil
}
