package unify

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/trs/internal/term"
)

// DefaultMaxProblems bounds the identity-aware search when
// Solver.MaxProblems is zero.
const DefaultMaxProblems = 10000

// ErrNoUnifier reports that the problem has no solution.
var ErrNoUnifier = errors.New("no unifier")

// SearchExhaustedError reports that the identity-aware search visited its
// problem budget without finding a solution. The problem may still be
// solvable.
type SearchExhaustedError struct {
	Problems int
	Limit    int
}

// Error implements the error interface.
func (e *SearchExhaustedError) Error() string {
	return fmt.Sprintf("unification search exhausted after %d problems (limit %d)", e.Problems, e.Limit)
}

// IsSearchExhausted returns true if err is or wraps a
// *SearchExhaustedError.
func IsSearchExhausted(err error) bool {
	var se *SearchExhaustedError
	return errors.As(err, &se)
}

// Solver unifies equation sets modulo background identities. With no
// identities it is plain syntactic unification.
type Solver struct {
	// Identities are the background equations, usable in both directions.
	Identities []term.Identity

	// MaxProblems bounds the number of problems examined. Zero means
	// DefaultMaxProblems.
	MaxProblems int

	// Signature, when set, keeps fresh variables in the answer from
	// colliding with declared names.
	Signature *term.Signature
}

// Solve returns a substitution over the variables of eqs that makes every
// equation hold modulo the identities.
//
// The search is breadth-first. Each problem that does not unify
// syntactically spawns alternatives in which one side of one equation is
// rewritten by a single identity step, at any position and in either
// direction. Problems are deduplicated by canonical key and never
// revisited.
func (s *Solver) Solve(eqs []Equation) (Substitution, error) {
	if sub, ok := unifyAll(eqs); ok {
		return sub, nil
	}
	if len(s.Identities) == 0 {
		return nil, ErrNoUnifier
	}

	limit := s.MaxProblems
	if limit <= 0 {
		limit = DefaultMaxProblems
	}

	original := make(map[string]bool)
	for _, e := range eqs {
		for _, v := range e.Left.Variables() {
			original[v.Name()] = true
		}
		for _, v := range e.Right.Variables() {
			original[v.Name()] = true
		}
	}

	queue := [][]Equation{eqs}
	seen := map[string]bool{problemKey(eqs): true}
	examined := 0
	fresh := 0

	for len(queue) > 0 {
		problem := queue[0]
		queue = queue[1:]
		examined++

		for _, alt := range s.alternatives(problem, &fresh) {
			key := problemKey(alt)
			if seen[key] {
				continue
			}
			seen[key] = true
			if sub, ok := unifyAll(alt); ok {
				return s.answer(sub, original), nil
			}
			queue = append(queue, alt)
		}
		if examined >= limit && len(queue) > 0 {
			return nil, &SearchExhaustedError{Problems: examined, Limit: limit}
		}
	}
	return nil, ErrNoUnifier
}

// alternatives lists every problem reachable from p by one identity step
// applied to one side of one equation.
func (s *Solver) alternatives(p []Equation, fresh *int) [][]Equation {
	var out [][]Equation
	for i, e := range p {
		for side, t := range []*term.Term{e.Left, e.Right} {
			for _, reduct := range s.oneStep(t, fresh) {
				alt := append([]Equation(nil), p...)
				if side == 0 {
					alt[i] = Equation{Left: reduct, Right: e.Right}
				} else {
					alt[i] = Equation{Left: e.Left, Right: reduct}
				}
				out = append(out, alt)
			}
		}
	}
	return out
}

// oneStep returns the terms reachable from t by one identity application.
func (s *Solver) oneStep(t *term.Term, fresh *int) []*term.Term {
	var out []*term.Term
	for _, loc := range t.Positions() {
		for _, id := range s.Identities {
			*fresh++
			renamed := RenameApart("e"+strconv.Itoa(*fresh), id.Left, id.Right)
			for _, dir := range [2][2]*term.Term{{renamed[0], renamed[1]}, {renamed[1], renamed[0]}} {
				from, to := dir[0], dir[1]
				sub, ok := Match(from, loc.Term)
				if !ok {
					continue
				}
				out = append(out, mustReplace(t, loc.Pos, sub.Apply(to)))
			}
		}
	}
	return out
}

// answer restricts sub to the original variables and gives any fresh
// variable left in the range a readable name.
func (s *Solver) answer(sub Substitution, original map[string]bool) Substitution {
	sub = sub.Restrict(original)
	used := make(map[string]bool, len(original))
	for name := range original {
		used[name] = true
	}
	rename := make(map[string]*term.Term)
	next := 0
	for _, b := range sub {
		for _, v := range b.Term.Variables() {
			if !strings.ContainsRune(v.Name(), '#') {
				continue
			}
			if _, ok := rename[v.Name()]; ok {
				continue
			}
			name := CanonicalName(next)
			next++
			for used[name] || s.Signature.Declares(name) {
				name = CanonicalName(next)
				next++
			}
			used[name] = true
			rename[v.Name()] = term.Var(term.NewVariable(name))
		}
	}
	if len(rename) == 0 {
		return sub
	}
	out := make(Substitution, len(sub))
	for i, b := range sub {
		out[i] = Binding{Var: b.Var, Term: b.Term.SubstituteAll(rename)}
	}
	return out
}

func mustReplace(t *term.Term, p term.Position, r *term.Term) *term.Term {
	out, err := t.ReplaceAt(p, r)
	if err != nil {
		// p came from t.Positions.
		panic(err)
	}
	return out
}
