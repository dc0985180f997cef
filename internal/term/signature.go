package term

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// MaxArity is the largest supported arity. Positions use one digit per
// level, so a larger arity would make position strings ambiguous.
const MaxArity = 9

// Decl declares one function or constant symbol.
type Decl struct {
	Name  string
	Arity int
}

// String renders the declaration as "name/arity".
func (d Decl) String() string {
	return fmt.Sprintf("%s/%d", d.Name, d.Arity)
}

// Signature is an immutable catalog of declared symbols.
//
// Symbols are interned once and shared by every term parsed against the
// signature. The symbol index is the precedence rank: rank 0 is the
// heaviest symbol in the lexicographic path ordering.
type Signature struct {
	decls   []Decl
	symbols []*Symbol // in precedence order
	byName  map[string]*Symbol
}

// NewSignature builds a signature from declarations. Precedence follows
// declaration order: earlier declarations are heavier.
func NewSignature(decls ...Decl) (*Signature, error) {
	sig := &Signature{
		decls:  make([]Decl, 0, len(decls)),
		byName: make(map[string]*Symbol, len(decls)),
	}
	for _, d := range decls {
		name := norm.NFC.String(d.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		if d.Arity < 0 || d.Arity > MaxArity {
			return nil, &SignatureError{
				Token:   Decl{Name: name, Arity: d.Arity}.String(),
				Message: fmt.Sprintf("arity must be between 0 and %d", MaxArity),
			}
		}
		if _, dup := sig.byName[name]; dup {
			return nil, &SignatureError{Token: name, Message: "duplicate symbol"}
		}
		sym := newFunction(name, d.Arity, len(sig.symbols))
		sig.decls = append(sig.decls, Decl{Name: name, Arity: d.Arity})
		sig.symbols = append(sig.symbols, sym)
		sig.byName[name] = sym
	}
	return sig, nil
}

// ParseSignature parses "name/arity" tokens separated by whitespace,
// semicolons or commas, e.g. "f/2 i/1 e/0" or "f/2;i/1;e/0".
func ParseSignature(text string) (*Signature, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || r == ';' || r == ','
	})
	decls := make([]Decl, 0, len(fields))
	for _, tok := range fields {
		d, err := parseDecl(tok)
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
	}
	return NewSignature(decls...)
}

func parseDecl(tok string) (Decl, error) {
	slash := strings.LastIndexByte(tok, '/')
	if slash < 0 {
		return Decl{}, &SignatureError{Token: tok, Message: "expected name/arity"}
	}
	name, arityText := tok[:slash], tok[slash+1:]
	if name == "" {
		return Decl{}, &SignatureError{Token: tok, Message: "empty name"}
	}
	arity, err := strconv.Atoi(arityText)
	if err != nil {
		return Decl{}, &SignatureError{Token: tok, Message: "arity is not a number"}
	}
	return Decl{Name: name, Arity: arity}, nil
}

// validateName rejects names the term parser could not read back.
func validateName(name string) error {
	if name == "" {
		return &SignatureError{Token: name, Message: "empty name"}
	}
	for _, r := range name {
		if !isNameRune(r) {
			return &SignatureError{Token: name, Message: fmt.Sprintf("invalid character %q", r)}
		}
	}
	return nil
}

// WithPrecedence returns a copy of the signature whose precedence lists
// names first (heaviest first), followed by every remaining symbol in
// declaration order. Terms parsed against the receiver keep the
// receiver's precedence; parse against the returned signature.
func (s *Signature) WithPrecedence(names ...string) (*Signature, error) {
	out := &Signature{
		decls:  append([]Decl(nil), s.decls...),
		byName: make(map[string]*Symbol, len(s.decls)),
	}
	arity := make(map[string]int, len(s.decls))
	for _, d := range s.decls {
		arity[d.Name] = d.Arity
	}
	add := func(name string) {
		sym := newFunction(name, arity[name], len(out.symbols))
		out.symbols = append(out.symbols, sym)
		out.byName[name] = sym
	}
	for _, raw := range names {
		name := norm.NFC.String(raw)
		if _, ok := arity[name]; !ok {
			return nil, &SignatureError{Token: name, Message: "precedence names an undeclared symbol"}
		}
		if _, dup := out.byName[name]; dup {
			return nil, &SignatureError{Token: name, Message: "symbol listed twice in precedence"}
		}
		add(name)
	}
	for _, d := range s.decls {
		if _, done := out.byName[d.Name]; !done {
			add(d.Name)
		}
	}
	return out, nil
}

// Lookup returns the declared symbol with the given name.
func (s *Signature) Lookup(name string) (*Symbol, bool) {
	sym, ok := s.byName[name]
	return sym, ok
}

// Declares reports whether name is a declared symbol. A nil signature
// declares nothing.
func (s *Signature) Declares(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.byName[name]
	return ok
}

// Decls returns the declarations in declaration order.
func (s *Signature) Decls() []Decl {
	return append([]Decl(nil), s.decls...)
}

// Symbols returns the declared symbols, heaviest first.
func (s *Signature) Symbols() []*Symbol {
	return append([]*Symbol(nil), s.symbols...)
}

// Precedence returns symbol names, heaviest first.
func (s *Signature) Precedence() []string {
	names := make([]string, len(s.symbols))
	for i, sym := range s.symbols {
		names[i] = sym.name
	}
	return names
}

// String renders the declarations as "f/2 i/1 e/0".
func (s *Signature) String() string {
	parts := make([]string, len(s.decls))
	for i, d := range s.decls {
		parts[i] = d.String()
	}
	return strings.Join(parts, " ")
}
