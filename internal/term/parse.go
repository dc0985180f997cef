package term

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// isNameRune reports whether r may appear in a symbol or variable name.
// '#' is reserved for internally renamed variables, '?' marks variables
// in term keys and '/' separates a name from its arity in declarations.
func isNameRune(r rune) bool {
	if unicode.IsSpace(r) {
		return false
	}
	switch r {
	case '(', ')', ',', '=', ';', '#', '?', '/':
		return false
	}
	return true
}

// Parser parses term text against a signature. Bare names that are not
// declared become variables, interned once per Parser so repeated
// occurrences across several Parse calls denote the same variable.
type Parser struct {
	sig  *Signature
	vars map[string]*Symbol
}

// NewParser returns a parser with an empty variable scope.
func NewParser(sig *Signature) *Parser {
	return &Parser{sig: sig, vars: make(map[string]*Symbol)}
}

// Parse parses a single term with a fresh variable scope.
func Parse(sig *Signature, text string) (*Term, error) {
	return NewParser(sig).Parse(text)
}

// MustParse is like Parse but panics on error. Intended for tests and
// fixed inputs.
func MustParse(sig *Signature, text string) *Term {
	t, err := Parse(sig, text)
	if err != nil {
		panic(err)
	}
	return t
}

// Variables returns the variables interned so far, in first-seen order.
func (p *Parser) Variables() []*Symbol {
	out := make([]*Symbol, len(p.vars))
	for _, v := range p.vars {
		out[v.index] = v
	}
	return out
}

// Parse parses text within the parser's variable scope.
func (p *Parser) Parse(text string) (*Term, error) {
	text = norm.NFC.String(text)
	sc := &scanner{input: text}
	t, err := p.parseTerm(sc)
	if err != nil {
		return nil, err
	}
	sc.skipSpace()
	if !sc.done() {
		return nil, sc.errorf("unexpected %q after term", sc.peek())
	}
	return t, nil
}

func (p *Parser) parseTerm(sc *scanner) (*Term, error) {
	sc.skipSpace()
	name := sc.name()
	if name == "" {
		if sc.done() {
			return nil, sc.errorf("unexpected end of input, expected a term")
		}
		return nil, sc.errorf("unexpected %q, expected a name", sc.peek())
	}

	var args []*Term
	sc.skipSpace()
	if sc.peek() == '(' {
		sc.next()
		for {
			arg, err := p.parseTerm(sc)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			sc.skipSpace()
			switch sc.peek() {
			case ',':
				sc.next()
				continue
			case ')':
				sc.next()
			case eof:
				return nil, sc.errorf("unbalanced parentheses: missing ')'")
			default:
				return nil, sc.errorf("unexpected %q in argument list", sc.peek())
			}
			break
		}
	}

	if sym, ok := p.sig.Lookup(name); ok {
		if len(args) != sym.arity {
			return nil, &ArityError{Symbol: name, Expected: sym.arity, Got: len(args)}
		}
		return newApp(sym, args), nil
	}
	if len(args) != 0 {
		return nil, &ArityError{Symbol: name, Expected: 0, Got: len(args)}
	}
	return Var(p.variable(name)), nil
}

func (p *Parser) variable(name string) *Symbol {
	if v, ok := p.vars[name]; ok {
		return v
	}
	v := &Symbol{name: name, kind: Variable, index: len(p.vars)}
	p.vars[name] = v
	return v
}

const eof = rune(-1)

type scanner struct {
	input string
	pos   int
}

func (s *scanner) done() bool { return s.pos >= len(s.input) }

func (s *scanner) peek() rune {
	if s.done() {
		return eof
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.pos:])
	return r
}

func (s *scanner) next() rune {
	if s.done() {
		return eof
	}
	r, w := utf8.DecodeRuneInString(s.input[s.pos:])
	s.pos += w
	return r
}

func (s *scanner) skipSpace() {
	for !s.done() && unicode.IsSpace(s.peek()) {
		s.next()
	}
}

func (s *scanner) name() string {
	start := s.pos
	for !s.done() && isNameRune(s.peek()) {
		s.next()
	}
	return s.input[start:s.pos]
}

func (s *scanner) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Input:   s.input,
		Offset:  s.pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// splitLines returns the non-blank, non-comment lines of text. Lines
// starting with "//" or "%" are comments.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") || strings.HasPrefix(line, "%") {
			continue
		}
		out = append(out, line)
	}
	return out
}
