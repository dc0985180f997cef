package unify

import (
	"strings"

	"github.com/roach88/trs/internal/term"
)

// Equation is one pending unification problem s =? t.
type Equation struct {
	Left  *term.Term
	Right *term.Term
}

// String renders the equation as "s = t".
func (e Equation) String() string {
	return e.Left.String() + " = " + e.Right.String()
}

// Unify returns a most general unifier of s and t.
func Unify(s, t *term.Term) (Substitution, bool) {
	return unifyAll([]Equation{{Left: s, Right: t}})
}

// UnifyAll returns a most general unifier of every equation.
func UnifyAll(eqs []Equation) (Substitution, bool) {
	return unifyAll(eqs)
}

// unifyAll rewrites the equation list to solved form with the rules
// delete, orient, decompose, occurs-check and eliminate. The returned
// bindings never mention a bound variable on their right-hand side.
func unifyAll(eqs []Equation) (Substitution, bool) {
	work := append([]Equation(nil), eqs...)
	solved := Substitution{}

	for len(work) > 0 {
		e := work[0]
		work = work[1:]
		l, r := e.Left, e.Right

		if l.Equal(r) {
			continue
		}
		if !l.IsVar() && r.IsVar() {
			l, r = r, l
		}
		if l.IsVar() {
			name := l.Name()
			if r.Occurs(name) {
				return nil, false
			}
			bind := map[string]*term.Term{name: r}
			for i := range work {
				work[i] = Equation{
					Left:  work[i].Left.SubstituteAll(bind),
					Right: work[i].Right.SubstituteAll(bind),
				}
			}
			for i := range solved {
				solved[i].Term = solved[i].Term.SubstituteAll(bind)
			}
			solved = append(solved, Binding{Var: l.Symbol(), Term: r})
			continue
		}

		if l.Name() != r.Name() || len(l.Args()) != len(r.Args()) {
			return nil, false
		}
		args := make([]Equation, 0, len(l.Args())+len(work))
		for i, la := range l.Args() {
			args = append(args, Equation{Left: la, Right: r.Arg(i)})
		}
		work = append(args, work...)
	}
	return solved, true
}

// problemKey is the canonical key of an equation list. Variables whose
// names contain '#' are internal and renamed by first occurrence, so
// problems differing only in fresh names share a key.
func problemKey(eqs []Equation) string {
	fresh := make(map[string]*term.Term)
	var b strings.Builder
	for i, e := range eqs {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(freshCanonical(e.Left, fresh).Key())
		b.WriteByte('=')
		b.WriteString(freshCanonical(e.Right, fresh).Key())
	}
	return b.String()
}

func freshCanonical(t *term.Term, fresh map[string]*term.Term) *term.Term {
	m := make(map[string]*term.Term)
	for _, v := range t.Variables() {
		if !strings.ContainsRune(v.Name(), '#') {
			continue
		}
		if _, ok := fresh[v.Name()]; !ok {
			fresh[v.Name()] = term.Var(term.NewVariable("#" + itoa(len(fresh))))
		}
		m[v.Name()] = fresh[v.Name()]
	}
	return t.SubstituteAll(m)
}
