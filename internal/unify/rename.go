package unify

import (
	"strconv"

	"github.com/roach88/trs/internal/term"
)

var canonicalNames = [...]string{"x", "y", "z", "t", "u", "v", "w"}

// CanonicalName returns the i-th name of the sequence
// x y z t u v w x1 y1 … w1 x2 ….
func CanonicalName(i int) string {
	base := canonicalNames[i%len(canonicalNames)]
	if round := i / len(canonicalNames); round > 0 {
		return base + strconv.Itoa(round)
	}
	return base
}

func itoa(i int) string { return strconv.Itoa(i) }

// RenameApart renames every variable v of terms to "v#suffix", using one
// mapping for all terms. The '#' cannot appear in parsed names, so the
// result shares no variable with any parsed term.
func RenameApart(suffix string, terms ...*term.Term) []*term.Term {
	m := make(map[string]*term.Term)
	for _, t := range terms {
		for _, v := range t.Variables() {
			if _, ok := m[v.Name()]; !ok {
				m[v.Name()] = term.Var(term.NewVariable(v.Name() + "#" + suffix))
			}
		}
	}
	out := make([]*term.Term, len(terms))
	for i, t := range terms {
		out[i] = t.SubstituteAll(m)
	}
	return out
}

// Canonicalize renames the variables of terms, jointly and by first
// occurrence, onto the canonical name sequence, skipping names declared
// in sig. Terms differing only in variable names canonicalize equally.
// sig may be nil.
func Canonicalize(sig *term.Signature, terms ...*term.Term) []*term.Term {
	m := make(map[string]*term.Term)
	next := 0
	for _, t := range terms {
		for _, v := range t.Variables() {
			if _, ok := m[v.Name()]; ok {
				continue
			}
			name := CanonicalName(next)
			next++
			for sig.Declares(name) {
				name = CanonicalName(next)
				next++
			}
			m[v.Name()] = term.Var(term.NewVariable(name))
		}
	}
	out := make([]*term.Term, len(terms))
	for i, t := range terms {
		out[i] = t.SubstituteAll(m)
	}
	return out
}
