package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/trs/internal/ir"
	"github.com/roach88/trs/internal/term"
)

// Validation error codes (E100-E199)
const (
	ErrInvalidSignature  = "E101" // signature missing or malformed
	ErrNoIdentities      = "E102" // at least one identity required
	ErrInvalidIdentity   = "E103" // identity does not parse against the signature
	ErrInvalidPrecedence = "E104" // precedence names an undeclared or repeated symbol
	ErrDuplicateIdentity = "E105" // identity listed twice
	ErrInvalidStrategy   = "E106" // unknown completion strategy
	ErrInvalidMaxSteps   = "E107" // max_steps must be positive
	ErrTrivialIdentity   = "E108" // both sides are the same term
)

// ValidationError represents a problem validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a problem beyond what the CUE schema can express.
// Returns all errors found (does not fail-fast).
func Validate(spec *ir.ProblemSpec) []ValidationError {
	var errs []ValidationError

	sig, err := term.ParseSignature(strings.Join(spec.Signature, " "))
	switch {
	case err != nil:
		errs = append(errs, ValidationError{Field: "signature", Message: err.Error(), Code: ErrInvalidSignature})
	case len(sig.Decls()) == 0:
		errs = append(errs, ValidationError{Field: "signature", Message: "at least one symbol is required", Code: ErrInvalidSignature})
		sig = nil
	}

	if sig != nil && len(spec.Precedence) > 0 {
		ordered, err := sig.WithPrecedence(spec.Precedence...)
		if err != nil {
			errs = append(errs, ValidationError{Field: "precedence", Message: err.Error(), Code: ErrInvalidPrecedence})
		} else {
			sig = ordered
		}
	}

	if len(spec.Identities) == 0 {
		errs = append(errs, ValidationError{Field: "identities", Message: "at least one identity is required", Code: ErrNoIdentities})
	}
	seen := make(map[string]int)
	for i, text := range spec.Identities {
		field := fmt.Sprintf("identities[%d]", i)
		key := strings.Join(strings.Fields(text), "")
		if j, dup := seen[key]; dup {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicate of identities[%d]", j),
				Code:    ErrDuplicateIdentity,
			})
			continue
		}
		seen[key] = i

		if sig == nil {
			continue
		}
		id, err := term.ParseEquation(sig, text)
		if err != nil {
			errs = append(errs, ValidationError{Field: field, Message: err.Error(), Code: ErrInvalidIdentity})
			continue
		}
		if id.Trivial() {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("identity %s is trivial", id),
				Code:    ErrTrivialIdentity,
			})
		}
	}

	if spec.Strategy != "" && !ir.ValidStrategies[spec.Strategy] {
		errs = append(errs, ValidationError{
			Field:   "strategy",
			Message: fmt.Sprintf("invalid strategy %q, must be \"huet\" or \"naive\"", spec.Strategy),
			Code:    ErrInvalidStrategy,
		})
	}
	if spec.MaxSteps < 0 {
		errs = append(errs, ValidationError{
			Field:   "max_steps",
			Message: fmt.Sprintf("max_steps must be positive, got %d", spec.MaxSteps),
			Code:    ErrInvalidMaxSteps,
		})
	}
	return errs
}
