package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/trs/internal/rewrite"
	"github.com/roach88/trs/internal/term"
)

// UnorientableEquationError is returned when completion meets an identity
// whose normalized sides are incomparable under LPO.
//
// The error is fatal to the run. The session keeps the identities and
// rules it had just before the failing step, including the identity that
// could not be oriented.
type UnorientableEquationError struct {
	SessionID string

	// Identity is the identity as it was in the session.
	Identity term.Identity

	// Left and Right are its normal forms, the pair LPO could not orient.
	Left  *term.Term
	Right *term.Term
}

// Error implements the error interface.
func (e *UnorientableEquationError) Error() string {
	return fmt.Sprintf("session %s: cannot orient %s ≈ %s", e.SessionID, e.Left, e.Right)
}

// IsUnorientable returns true if the error is an UnorientableEquationError.
// Uses errors.As to handle wrapped errors.
func IsUnorientable(err error) bool {
	var ue *UnorientableEquationError
	return errors.As(err, &ue)
}

// NonTerminatingRulesError is returned when normalizing under the current
// rules cycles or runs past the rewrite limit. The rules were oriented by
// an ordering that is not well-founded on every pair. The session keeps
// the identities and rules it had before the step.
type NonTerminatingRulesError struct {
	SessionID string
	Cause     *rewrite.NonTerminationError
}

// Error implements the error interface.
func (e *NonTerminatingRulesError) Error() string {
	return fmt.Sprintf("session %s: %v", e.SessionID, e.Cause)
}

// Unwrap returns the rewrite error.
func (e *NonTerminatingRulesError) Unwrap() error {
	return e.Cause
}

// IsNonTerminating returns true if the error is a NonTerminatingRulesError.
func IsNonTerminating(err error) bool {
	var ne *NonTerminatingRulesError
	return errors.As(err, &ne)
}

// IsQuotaError returns true if the run stopped on a resource limit: the
// step quota or the rewrite limit.
// Uses errors.As to handle wrapped errors.
func IsQuotaError(err error) bool {
	var se *StepsExceededError
	return errors.As(err, &se) || IsNonTerminating(err)
}
