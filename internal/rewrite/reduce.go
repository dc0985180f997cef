// Package rewrite applies rewrite rules to terms.
//
// Redexes are visited deepest position first, then in depth-first order
// among positions of equal depth, then in rule order. Reduce explores every
// redex; Normalize follows the first one at each step.
package rewrite

import (
	"errors"
	"fmt"

	"github.com/roach88/trs/internal/term"
	"github.com/roach88/trs/internal/unify"
)

// Redex is one applicable rewrite: rule Rules[Rule] applied at Pos gives
// Result.
type Redex struct {
	Pos    term.Position
	Rule   int
	Result *term.Term
}

// Step returns every one-step reduct of t in visiting order.
func Step(t *term.Term, rules []term.Rule) []Redex {
	var out []Redex
	for _, loc := range t.FunctionPositions() {
		for i, r := range rules {
			sub, ok := unify.Match(r.Left, loc.Term)
			if !ok {
				continue
			}
			res, err := t.ReplaceAt(loc.Pos, sub.Apply(r.Right))
			if err != nil {
				panic(err) // loc.Pos came from t
			}
			out = append(out, Redex{Pos: loc.Pos, Rule: i, Result: res})
		}
	}
	return out
}

// first returns the first one-step reduct of t, if any.
func first(t *term.Term, rules []term.Rule) (*term.Term, bool) {
	for _, loc := range t.FunctionPositions() {
		for _, r := range rules {
			sub, ok := unify.Match(r.Left, loc.Term)
			if !ok {
				continue
			}
			res, err := t.ReplaceAt(loc.Pos, sub.Apply(r.Right))
			if err != nil {
				panic(err)
			}
			return res, true
		}
	}
	return nil, false
}

// IsNormal reports whether no rule applies anywhere in t.
func IsNormal(t *term.Term, rules []term.Rule) bool {
	_, ok := first(t, rules)
	return !ok
}

// Normalize rewrites t until no rule applies, always taking the first
// redex. The rules must terminate.
func Normalize(t *term.Term, rules []term.Rule) *term.Term {
	for {
		next, ok := first(t, rules)
		if !ok {
			return t
		}
		t = next
	}
}

// DefaultMaxRewrites bounds NormalizeBounded when limit is not positive.
const DefaultMaxRewrites = 10000

// NonTerminationError reports a rewrite sequence that revisited a term or
// ran past its limit.
type NonTerminationError struct {
	Term  *term.Term // the revisited term, or the last reduct reached
	Steps int
	Cycle bool
}

// Error implements the error interface.
func (e *NonTerminationError) Error() string {
	if e.Cycle {
		return fmt.Sprintf("rewriting cycles: %s reached again after %d steps", e.Term, e.Steps)
	}
	return fmt.Sprintf("rewriting did not terminate within %d steps, at %s", e.Steps, e.Term)
}

// IsNonTermination returns true if the error is a NonTerminationError.
func IsNonTermination(err error) bool {
	var ne *NonTerminationError
	return errors.As(err, &ne)
}

// NormalizeBounded is Normalize for rules that may not terminate. It
// fails as soon as a reduct repeats an earlier term of the sequence, or
// after limit rewrites.
func NormalizeBounded(t *term.Term, rules []term.Rule, limit int) (*term.Term, error) {
	if limit <= 0 {
		limit = DefaultMaxRewrites
	}
	seen := map[string]bool{t.Key(): true}
	for steps := 1; ; steps++ {
		next, ok := first(t, rules)
		if !ok {
			return t, nil
		}
		if seen[next.Key()] {
			return nil, &NonTerminationError{Term: next, Steps: steps, Cycle: true}
		}
		if steps >= limit {
			return nil, &NonTerminationError{Term: next, Steps: steps}
		}
		seen[next.Key()] = true
		t = next
	}
}

// Reduce returns every distinct normal form of t, in discovery order. A
// term already in normal form yields exactly itself.
func Reduce(t *term.Term, rules []term.Rule) []*term.Term {
	r := &reducer{
		rules:  rules,
		memo:   make(map[string][]*term.Term),
		active: make(map[string]bool),
	}
	return r.reduce(t)
}

type reducer struct {
	rules  []term.Rule
	memo   map[string][]*term.Term
	active map[string]bool
}

func (r *reducer) reduce(t *term.Term) []*term.Term {
	key := t.Key()
	if nfs, ok := r.memo[key]; ok {
		return nfs
	}
	if r.active[key] {
		// A rewrite cycle; the term has no normal form along this branch.
		return nil
	}
	r.active[key] = true
	defer delete(r.active, key)

	redexes := Step(t, r.rules)
	if len(redexes) == 0 {
		nfs := []*term.Term{t.Clone()}
		r.memo[key] = nfs
		return nfs
	}

	seen := make(map[string]bool)
	var nfs []*term.Term
	for _, rx := range redexes {
		for _, nf := range r.reduce(rx.Result) {
			if !seen[nf.Key()] {
				seen[nf.Key()] = true
				nfs = append(nfs, nf)
			}
		}
	}
	r.memo[key] = nfs
	return nfs
}
