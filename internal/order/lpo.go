// Package order implements the lexicographic path ordering used to orient
// equations into terminating rewrite rules.
//
// Precedence is read from term.Symbol.Index: a smaller index is heavier.
// By default that is declaration order; term.Signature.WithPrecedence
// overrides it.
//
// Subterm domination compares heads only: when the heads of s and t
// differ, an argument of s headed by t's symbol counts as reaching t. This
// is weaker than textbook LPO and lets the group axioms complete under
// declaration order. The price is asymmetry: f(i(e),e) and i(f(e,e))
// each dominate the other, and Compare then keeps the order it was given.
// It can also put a term above one of its own superterms (g(f(x)) ≻
// f(g(g(f(x))))), so orientation goes through Orients, which refuses
// such rules.
package order

import (
	"github.com/roach88/trs/internal/term"
	"github.com/roach88/trs/internal/unify"
)

// Greater reports s ≻ t under the lexicographic path ordering.
func Greater(s, t *term.Term) bool {
	if s.Equal(t) {
		return false
	}
	if t.IsVar() {
		return !s.IsVar() && s.Occurs(t.Name())
	}
	if s.IsVar() {
		return false
	}

	f, g := s.Symbol(), t.Symbol()
	if f.Name() != g.Name() {
		for _, si := range s.Args() {
			if sameHead(si, t) || Greater(si, t) {
				return true
			}
		}
		return f.Index() < g.Index() && dominatesArgs(s, t)
	}

	if f.Index() != g.Index() || !dominatesArgs(s, t) {
		return false
	}
	for i, si := range s.Args() {
		ti := t.Arg(i)
		if !si.Equal(ti) {
			return Greater(si, ti)
		}
	}
	return false
}

// sameHead reports whether the non-variable u is headed by t's symbol.
func sameHead(u, t *term.Term) bool {
	return !u.IsVar() && u.Name() == t.Name()
}

// dominatesArgs reports s ≻ tj for every argument tj of t.
func dominatesArgs(s, t *term.Term) bool {
	for _, tj := range t.Args() {
		if !Greater(s, tj) {
			return false
		}
	}
	return true
}

// Orients reports whether l → r is an acceptable rule: l ≻ r, and no
// subterm of r is an instance of l, since such a rule rewrites forever.
func Orients(l, r *term.Term) bool {
	if !Greater(l, r) {
		return false
	}
	for _, loc := range r.Positions() {
		if _, ok := unify.Match(l, loc.Term); ok {
			return false
		}
	}
	return true
}

// Compare orients a pair. It returns (a, b, true) when a → b is
// acceptable, otherwise (b, a, true) when b → a is, and ok=false when
// neither is.
func Compare(a, b *term.Term) (left, right *term.Term, ok bool) {
	switch {
	case Orients(a, b):
		return a, b, true
	case Orients(b, a):
		return b, a, true
	default:
		return nil, nil, false
	}
}
