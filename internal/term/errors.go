package term

import (
	"errors"
	"fmt"
)

// SignatureError reports a malformed declaration: a bad name/arity token,
// a duplicate name, or an arity outside the supported range.
type SignatureError struct {
	// Token is the offending declaration text or symbol name.
	Token string

	// Message describes what is wrong with it.
	Message string
}

// Error implements the error interface.
func (e *SignatureError) Error() string {
	return fmt.Sprintf("signature: %q: %s", e.Token, e.Message)
}

// SyntaxError reports unbalanced parentheses, an empty token or trailing
// input in term text.
type SyntaxError struct {
	Input   string
	Offset  int
	Message string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d in %q: %s", e.Offset, e.Input, e.Message)
}

// ArityError reports a declared symbol applied to the wrong number of
// arguments.
type ArityError struct {
	Symbol   string
	Expected int
	Got      int
}

// Error implements the error interface.
func (e *ArityError) Error() string {
	return fmt.Sprintf("symbol %s expects %d argument(s), got %d", e.Symbol, e.Expected, e.Got)
}

// FormatError reports equation text that does not contain exactly one "=".
type FormatError struct {
	Input   string
	Message string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("equation %q: %s", e.Input, e.Message)
}

// InvalidPositionError reports a position that does not resolve in a term.
type InvalidPositionError struct {
	Position Position
	Term     string
}

// Error implements the error interface.
func (e *InvalidPositionError) Error() string {
	return fmt.Sprintf("position %q does not exist in %s", string(e.Position), e.Term)
}

// IsSignatureError returns true if err is or wraps a *SignatureError.
func IsSignatureError(err error) bool {
	var se *SignatureError
	return errors.As(err, &se)
}

// IsSyntaxError returns true if err is or wraps a *SyntaxError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}

// IsArityError returns true if err is or wraps an *ArityError.
func IsArityError(err error) bool {
	var ae *ArityError
	return errors.As(err, &ae)
}

// IsFormatError returns true if err is or wraps a *FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// IsInvalidPositionError returns true if err is or wraps an
// *InvalidPositionError.
func IsInvalidPositionError(err error) bool {
	var pe *InvalidPositionError
	return errors.As(err, &pe)
}
