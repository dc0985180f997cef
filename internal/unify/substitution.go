package unify

import (
	"strings"

	"github.com/roach88/trs/internal/term"
)

// Binding maps one variable to a term.
type Binding struct {
	Var  *term.Symbol
	Term *term.Term
}

// String renders the binding as "x ↦ t".
func (b Binding) String() string {
	return b.Var.Name() + " ↦ " + b.Term.String()
}

// Substitution is an ordered set of bindings with distinct variables.
// Application is simultaneous.
type Substitution []Binding

// Lookup returns the term bound to the variable named name.
func (s Substitution) Lookup(name string) (*term.Term, bool) {
	for _, b := range s {
		if b.Var.Name() == name {
			return b.Term, true
		}
	}
	return nil, false
}

// Map returns the bindings keyed by variable name.
func (s Substitution) Map() map[string]*term.Term {
	m := make(map[string]*term.Term, len(s))
	for _, b := range s {
		m[b.Var.Name()] = b.Term
	}
	return m
}

// Apply instantiates t.
func (s Substitution) Apply(t *term.Term) *term.Term {
	if len(s) == 0 {
		return t
	}
	return t.SubstituteAll(s.Map())
}

// Restrict keeps only bindings for variables in names.
func (s Substitution) Restrict(names map[string]bool) Substitution {
	out := Substitution{}
	for _, b := range s {
		if names[b.Var.Name()] {
			out = append(out, b)
		}
	}
	return out
}

// String renders the substitution as "{x ↦ e, y ↦ i(z)}".
func (s Substitution) String() string {
	parts := make([]string, len(s))
	for i, b := range s {
		parts[i] = b.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
