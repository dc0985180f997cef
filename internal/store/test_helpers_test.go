package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/trs/internal/ir"
)

// createTestStore creates a new store in a temp dir for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSession creates a session record with minimal required fields.
func createTestSession(id string) ir.SessionRecord {
	return ir.SessionRecord{
		ID:          id,
		Problem:     "group",
		Signature:   "f/2 i/1 e/0",
		ProblemHash: "test-hash",
		State:       ir.StateRunning,
	}
}

// createTestStep creates a step with one identity in its snapshot.
func createTestStep(seq int64, kind ir.StepKind, text string) ir.Step {
	return ir.Step{
		Seq:        seq,
		Kind:       kind,
		Text:       text,
		Identities: []string{"f(e,x) ≈ x"},
		Rules:      []string{},
	}
}
