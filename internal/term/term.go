package term

import "strings"

// Term is an immutable first-order term: a variable leaf or a symbol
// applied to exactly Arity() children.
//
// The structural key is computed once at construction. Variables carry a
// leading '?' in the key so a variable never collides with a constant of
// the same name.
type Term struct {
	sym  *Symbol
	args []*Term
	key  string
	size int
}

// Var returns the leaf term for a variable symbol.
func Var(sym *Symbol) *Term {
	return &Term{sym: sym, key: "?" + sym.name, size: 1}
}

// App applies a function or constant symbol to args.
func App(sym *Symbol, args ...*Term) (*Term, error) {
	if sym.IsVariable() {
		if len(args) != 0 {
			return nil, &ArityError{Symbol: sym.name, Expected: 0, Got: len(args)}
		}
		return Var(sym), nil
	}
	if len(args) != sym.arity {
		return nil, &ArityError{Symbol: sym.name, Expected: sym.arity, Got: len(args)}
	}
	return newApp(sym, append([]*Term(nil), args...)), nil
}

// MustApp is like App but panics on an arity mismatch.
func MustApp(sym *Symbol, args ...*Term) *Term {
	t, err := App(sym, args...)
	if err != nil {
		panic(err)
	}
	return t
}

// newApp takes ownership of args.
func newApp(sym *Symbol, args []*Term) *Term {
	if len(args) == 0 {
		return &Term{sym: sym, key: sym.name, size: 1}
	}
	var b strings.Builder
	size := 1
	b.WriteString(sym.name)
	b.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.key)
		size += a.size
	}
	b.WriteByte(')')
	return &Term{sym: sym, args: args, key: b.String(), size: size}
}

// Symbol returns the head symbol (the variable itself for a leaf).
func (t *Term) Symbol() *Symbol { return t.sym }

// Name returns the head symbol name.
func (t *Term) Name() string { return t.sym.name }

// IsVar reports whether t is a variable leaf.
func (t *Term) IsVar() bool { return t.sym.kind == Variable }

// Args returns the children. The slice must not be modified.
func (t *Term) Args() []*Term { return t.args }

// Arg returns the i-th child, 0-based.
func (t *Term) Arg(i int) *Term { return t.args[i] }

// Size returns the number of positions in t.
func (t *Term) Size() int { return t.size }

// Key returns the canonical structural key. Two terms are equal iff their
// keys are equal.
func (t *Term) Key() string { return t.key }

// Equal reports structural equality.
func (t *Term) Equal(o *Term) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil {
		return false
	}
	return t.key == o.key
}

// String renders t in functional notation, e.g. "f(x,i(x))".
func (t *Term) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.sym.kind == Variable {
		return t.sym.name
	}
	var b strings.Builder
	t.write(&b)
	return b.String()
}

func (t *Term) write(b *strings.Builder) {
	b.WriteString(t.sym.name)
	if len(t.args) == 0 {
		return
	}
	b.WriteByte('(')
	for i, a := range t.args {
		if i > 0 {
			b.WriteByte(',')
		}
		a.write(b)
	}
	b.WriteByte(')')
}

// Clone returns a deep copy of t sharing only symbols.
func (t *Term) Clone() *Term {
	if len(t.args) == 0 {
		c := *t
		return &c
	}
	args := make([]*Term, len(t.args))
	for i, a := range t.args {
		args[i] = a.Clone()
	}
	return &Term{sym: t.sym, args: args, key: t.key, size: t.size}
}

// Variables returns the distinct variables of t in first-occurrence order.
func (t *Term) Variables() []*Symbol {
	seen := make(map[string]bool)
	var out []*Symbol
	t.walk(func(s *Term) {
		if s.IsVar() && !seen[s.sym.name] {
			seen[s.sym.name] = true
			out = append(out, s.sym)
		}
	})
	return out
}

// Occurs reports whether the variable named name occurs in t.
func (t *Term) Occurs(name string) bool {
	if t.IsVar() {
		return t.sym.name == name
	}
	for _, a := range t.args {
		if a.Occurs(name) {
			return true
		}
	}
	return false
}

// IsGround reports whether t contains no variables.
func (t *Term) IsGround() bool {
	if t.IsVar() {
		return false
	}
	for _, a := range t.args {
		if !a.IsGround() {
			return false
		}
	}
	return true
}

func (t *Term) walk(fn func(*Term)) {
	fn(t)
	for _, a := range t.args {
		a.walk(fn)
	}
}

// Substitute replaces every occurrence of the variable named name with
// replacement. It returns t itself and false when the variable does not
// occur.
func (t *Term) Substitute(name string, replacement *Term) (*Term, bool) {
	if !t.Occurs(name) {
		return t, false
	}
	return t.SubstituteAll(map[string]*Term{name: replacement}), true
}

// SubstituteAll replaces variables simultaneously: a variable whose name
// is a key of m becomes m[name]. Replacement terms are not themselves
// rewritten. Unchanged subterms are shared with t.
func (t *Term) SubstituteAll(m map[string]*Term) *Term {
	if len(m) == 0 {
		return t
	}
	if t.IsVar() {
		if r, ok := m[t.sym.name]; ok {
			return r
		}
		return t
	}
	var args []*Term
	for i, a := range t.args {
		na := a.SubstituteAll(m)
		if na != a && args == nil {
			args = make([]*Term, len(t.args))
			copy(args, t.args[:i])
		}
		if args != nil {
			args[i] = na
		}
	}
	if args == nil {
		return t
	}
	return newApp(t.sym, args)
}
