package term

import "fmt"

// Kind classifies a symbol.
type Kind int

const (
	// Function is a symbol of arity one or more.
	Function Kind = iota
	// Constant is a function symbol of arity zero.
	Constant
	// Variable is a variable symbol. Variables always have arity zero.
	Variable
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Function:
		return "Function"
	case Constant:
		return "Constant"
	case Variable:
		return "Variable"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Symbol is an interned, immutable symbol.
//
// The index is a creation-order index scoped per kind: functions and
// constants share the counter of the signature that declared them, and
// variables are numbered by the parser (or arena) that interned them. The
// function index drives LPO precedence: a smaller index is heavier.
type Symbol struct {
	name  string
	arity int
	kind  Kind
	index int
}

// Name returns the symbol name.
func (s *Symbol) Name() string { return s.name }

// Arity returns the declared number of arguments.
func (s *Symbol) Arity() int { return s.arity }

// Kind returns the symbol kind.
func (s *Symbol) Kind() Kind { return s.kind }

// Index returns the creation-order index within the symbol's kind.
func (s *Symbol) Index() int { return s.index }

// IsVariable reports whether the symbol is a variable.
func (s *Symbol) IsVariable() bool { return s.kind == Variable }

// String renders the symbol as "[Kind] name/arity".
func (s *Symbol) String() string {
	return fmt.Sprintf("[%s] %s/%d", s.kind, s.name, s.arity)
}

// NewVariable creates a variable symbol outside of any parser scope.
// Used by renaming and canonicalization, where the index is irrelevant.
func NewVariable(name string) *Symbol {
	return &Symbol{name: name, kind: Variable, index: -1}
}

func newFunction(name string, arity, index int) *Symbol {
	kind := Function
	if arity == 0 {
		kind = Constant
	}
	return &Symbol{name: name, arity: arity, kind: kind, index: index}
}
