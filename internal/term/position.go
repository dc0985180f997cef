package term

import (
	"sort"
	"strings"
)

// Position addresses a subterm: a string of 1-based child indices read
// top-down. Root is the empty position.
type Position string

// Root addresses the term itself.
const Root Position = ""

// Child returns the position of the i-th child (1-based) below p.
func (p Position) Child(i int) Position {
	return p + Position(rune('0'+i))
}

// Depth returns the number of steps from the root.
func (p Position) Depth() int { return len(p) }

// IsRoot reports whether p addresses the whole term.
func (p Position) IsRoot() bool { return p == Root }

// String renders the root as "ε" and other positions as dotted indices.
func (p Position) String() string {
	if p == Root {
		return "ε"
	}
	parts := make([]string, len(p))
	for i := range p {
		parts[i] = string(p[i])
	}
	return strings.Join(parts, ".")
}

// Located pairs a position with the subterm found there.
type Located struct {
	Pos  Position
	Term *Term
}

// Positions lists every position of t depth-first, parent before
// children.
func (t *Term) Positions() []Located {
	out := make([]Located, 0, t.size)
	var visit func(p Position, s *Term)
	visit = func(p Position, s *Term) {
		out = append(out, Located{Pos: p, Term: s})
		for i, a := range s.args {
			visit(p.Child(i+1), a)
		}
	}
	visit(Root, t)
	return out
}

// PositionMap returns the positions of t keyed by position.
func (t *Term) PositionMap() map[Position]*Term {
	m := make(map[Position]*Term, t.size)
	for _, l := range t.Positions() {
		m[l.Pos] = l.Term
	}
	return m
}

// FunctionPositions returns the non-variable positions of t, deepest
// first, ties broken by depth-first order.
func (t *Term) FunctionPositions() []Located {
	var out []Located
	for _, l := range t.Positions() {
		if !l.Term.IsVar() {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Pos.Depth() > out[j].Pos.Depth()
	})
	return out
}

// At returns the subterm at p.
func (t *Term) At(p Position) (*Term, error) {
	cur := t
	for i := 0; i < len(p); i++ {
		idx := int(p[i] - '0')
		if idx < 1 || idx > len(cur.args) {
			return nil, &InvalidPositionError{Position: p, Term: t.String()}
		}
		cur = cur.args[idx-1]
	}
	return cur, nil
}

// ReplaceAt returns a new term equal to t except that the subterm at p is
// replacement.
func (t *Term) ReplaceAt(p Position, replacement *Term) (*Term, error) {
	if _, err := t.At(p); err != nil {
		return nil, err
	}
	return t.replace(p, replacement), nil
}

func (t *Term) replace(p Position, replacement *Term) *Term {
	if p == Root {
		return replacement
	}
	idx := int(p[0]-'0') - 1
	args := make([]*Term, len(t.args))
	copy(args, t.args)
	args[idx] = args[idx].replace(p[1:], replacement)
	return newApp(t.sym, args)
}
