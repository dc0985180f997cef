package term

import "strings"

// Identity is an unordered equation. Left and Right keep the order they
// were written in, but the identity is symmetric.
type Identity struct {
	Left  *Term
	Right *Term
}

// Size returns |Left| + |Right|.
func (e Identity) Size() int { return e.Left.Size() + e.Right.Size() }

// Trivial reports whether both sides are equal.
func (e Identity) Trivial() bool { return e.Left.Equal(e.Right) }

// Key returns the structural key of the identity in its written
// orientation.
func (e Identity) Key() string { return e.Left.Key() + "=" + e.Right.Key() }

// Flip swaps the sides.
func (e Identity) Flip() Identity { return Identity{Left: e.Right, Right: e.Left} }

// String renders the identity as "L ≈ R".
func (e Identity) String() string {
	return e.Left.String() + " ≈ " + e.Right.String()
}

// Rule is an oriented equation Left → Right. Marked records that the
// rule's overlaps with every marked rule have been enumerated.
type Rule struct {
	Left   *Term
	Right  *Term
	Marked bool
}

// Size returns |Left| + |Right|.
func (r Rule) Size() int { return r.Left.Size() + r.Right.Size() }

// Key returns the structural key of Left → Right, ignoring the mark.
func (r Rule) Key() string { return r.Left.Key() + ">" + r.Right.Key() }

// Identity forgets the orientation.
func (r Rule) Identity() Identity { return Identity{Left: r.Left, Right: r.Right} }

// String renders the rule as "L → R", with a trailing " *" when marked.
func (r Rule) String() string {
	s := r.Left.String() + " → " + r.Right.String()
	if r.Marked {
		s += " *"
	}
	return s
}

// ParseEquation parses "<term> = <term>" within the parser's variable
// scope. Both sides share that scope.
func (p *Parser) ParseEquation(text string) (Identity, error) {
	if n := strings.Count(text, "="); n != 1 {
		return Identity{}, &FormatError{Input: text, Message: "expected exactly one '='"}
	}
	lhs, rhs, _ := strings.Cut(text, "=")
	l, err := p.Parse(lhs)
	if err != nil {
		return Identity{}, err
	}
	r, err := p.Parse(rhs)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Left: l, Right: r}, nil
}

// ParseEquation parses one equation with a fresh variable scope.
func ParseEquation(sig *Signature, text string) (Identity, error) {
	return NewParser(sig).ParseEquation(text)
}

// ParseEquations parses one equation per line. Blank lines and lines
// starting with "//" or "%" are skipped. When shared is true all
// equations use one variable scope (a unification problem); otherwise
// each equation gets its own (a set of axioms).
func ParseEquations(sig *Signature, text string, shared bool) ([]Identity, error) {
	p := NewParser(sig)
	var out []Identity
	for _, line := range splitLines(text) {
		if !shared {
			p = NewParser(sig)
		}
		eq, err := p.ParseEquation(line)
		if err != nil {
			return nil, err
		}
		out = append(out, eq)
	}
	return out, nil
}
