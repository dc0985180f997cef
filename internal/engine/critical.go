package engine

import (
	"fmt"

	"github.com/roach88/trs/internal/ir"
	"github.com/roach88/trs/internal/term"
	"github.com/roach88/trs/internal/unify"
)

// Overlap is one superposition of two rules: Inner's left side unifies
// with the subterm of Outer's left side at Pos. Peak rewrites to Left by
// Outer at the root and to Right by Inner at Pos.
type Overlap struct {
	Outer term.Rule
	Inner term.Rule
	Pos   term.Position
	Peak  *term.Term
	Left  *term.Term
	Right *term.Term
}

// Overlaps returns every overlap of inner into outer. The two rules are
// renamed apart first, so a rule may overlap with itself. Variable
// positions never overlap; the root position is included only when
// withRoot is set.
func Overlaps(outer, inner term.Rule, withRoot bool) []Overlap {
	o := unify.RenameApart("1", outer.Left, outer.Right)
	in := unify.RenameApart("2", inner.Left, inner.Right)

	var out []Overlap
	for _, loc := range o[0].Positions() {
		if loc.Term.IsVar() || (loc.Pos.IsRoot() && !withRoot) {
			continue
		}
		sub, ok := unify.Unify(loc.Term, in[0])
		if !ok {
			continue
		}
		peak := sub.Apply(o[0])
		right, err := peak.ReplaceAt(loc.Pos, sub.Apply(in[1]))
		if err != nil {
			panic(err) // loc.Pos is a position of o[0], hence of peak
		}
		out = append(out, Overlap{
			Outer: outer,
			Inner: inner,
			Pos:   loc.Pos,
			Peak:  peak,
			Left:  sub.Apply(o[1]),
			Right: right,
		})
	}
	return out
}

// CriticalPairs runs one overlap step: it picks the unmarked rule of
// smallest size, adds its new critical pairs with itself and with every
// marked rule as identities, and marks it. It returns the identities
// added, and false when every rule was already marked.
//
// Pairs are canonicalized and dropped when trivial, when a rule already
// states them in either orientation, or when the session has produced
// them before.
func (s *Session) CriticalPairs() ([]term.Identity, bool) {
	idx := s.nextUnmarked()
	if idx < 0 {
		return nil, false
	}
	rule := s.rules[idx]

	overlaps := Overlaps(rule, rule, false)
	for j, other := range s.rules {
		if j == idx || !other.Marked {
			continue
		}
		overlaps = append(overlaps, Overlaps(rule, other, true)...)
		overlaps = append(overlaps, Overlaps(other, rule, false)...)
	}

	added := s.admitPairs(overlaps)
	s.rules[idx].Marked = true
	s.emitPairs(rule, added, len(overlaps))
	return added, true
}

// admitPairs canonicalizes overlaps into identities and adds the new ones.
func (s *Session) admitPairs(overlaps []Overlap) []term.Identity {
	var added []term.Identity
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
		s.ledger.Record(fwd, bwd)
		if s.addIdentity(id) {
			added = append(added, id)
		}
	}
	return added
}

func (s *Session) emitPairs(rule term.Rule, added []term.Identity, overlaps int) {
	var terms []*term.Term
	for _, id := range added {
		terms = append(terms, id.Left, id.Right)
	}
	text := fmt.Sprintf("critical pairs of %s: %d overlaps, %d new", rule.String(), overlaps, len(added))
	s.emit(ir.StepCriticalPairs, text, terms...)
}

// nextUnmarked returns the index of the unmarked rule with the smallest
// |Left|+|Right|, the earliest on ties, or -1.
func (s *Session) nextUnmarked() int {
	best := -1
	for i, r := range s.rules {
		if r.Marked {
			continue
		}
		if best < 0 || r.Size() < s.rules[best].Size() {
			best = i
		}
	}
	return best
}
