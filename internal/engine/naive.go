package engine

import (
	"context"
	"fmt"

	"github.com/roach88/trs/internal/ir"
	"github.com/roach88/trs/internal/term"
	"github.com/roach88/trs/internal/unify"
)

// CompleteNaive runs completion without marks: each overlap step
// recomputes the critical pairs of every pair of rules and adds only the
// smallest pair not produced before. Rules are marked all at once when no
// new pair is left. It reaches the same kind of result
// as Complete with far more work, and is kept for comparison.
func (s *Session) CompleteNaive(ctx context.Context) (Result, error) {
	return s.run(ctx, "naive", s.naiveStep)
}

func (s *Session) naiveStep() bool {
	var overlaps []Overlap
	for i, outer := range s.rules {
		for j, inner := range s.rules {
			overlaps = append(overlaps, Overlaps(outer, inner, i != j)...)
		}
	}

	var (
		best     term.Identity
		bestKeys [2]string
		found    bool
	)
	for _, ov := range overlaps {
		c := unify.Canonicalize(s.sig, ov.Left, ov.Right)
		id := term.Identity{Left: c[0], Right: c[1]}
		if id.Trivial() {
			continue
		}
		fwd, bwd := s.pairKeys(id.Left, id.Right)
		if s.hasRule(fwd, bwd) || s.ledger.Seen(fwd, bwd) {
			continue
		}
		if !found || id.Size() < best.Size() {
			best, bestKeys, found = id, [2]string{fwd, bwd}, true
		}
	}
	if !found {
		// Every pair of rules has been overlapped.
		for i := range s.rules {
			s.rules[i].Marked = true
		}
		return false
	}

	s.ledger.Record(bestKeys[0], bestKeys[1])
	var terms []*term.Term
	if s.addIdentity(best) {
		terms = append(terms, best.Left, best.Right)
	}
	s.emit(ir.StepCriticalPairs,
		fmt.Sprintf("smallest new critical pair of %d overlaps: %s", len(overlaps), best.String()),
		terms...)
	return true
}
