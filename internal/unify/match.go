package unify

import "github.com/roach88/trs/internal/term"

// Match finds σ with σ(pattern) = target. Only pattern variables bind;
// target variables behave like constants. A pattern variable occurring
// several times must bind to equal subterms.
//
// Pattern and target may share variable names: bindings are applied to
// the pattern only, and application is simultaneous.
func Match(pattern, target *term.Term) (Substitution, bool) {
	m := &matcher{bound: make(map[string]*term.Term), subst: Substitution{}}
	if !m.match(pattern, target) {
		return nil, false
	}
	return m.subst, true
}

type matcher struct {
	bound map[string]*term.Term
	subst Substitution
}

func (m *matcher) match(p, t *term.Term) bool {
	if p.IsVar() {
		if prev, ok := m.bound[p.Name()]; ok {
			return prev.Equal(t)
		}
		m.bound[p.Name()] = t
		m.subst = append(m.subst, Binding{Var: p.Symbol(), Term: t})
		return true
	}
	if t.IsVar() {
		return false
	}
	if p.Name() != t.Name() || len(p.Args()) != len(t.Args()) {
		return false
	}
	for i, pa := range p.Args() {
		if !m.match(pa, t.Arg(i)) {
			return false
		}
	}
	return true
}
