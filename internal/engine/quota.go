package engine

import (
	"errors"
	"fmt"
)

// QuotaEnforcer counts completion steps for one session and enforces a
// maximum.
//
// Completion of an arbitrary equational theory need not terminate. The
// quota turns a diverging run into a StepsExceededError instead of an
// endless loop.
type QuotaEnforcer struct {
	maxSteps int
	current  int
}

// NewQuotaEnforcer creates a quota enforcer with the given limit.
func NewQuotaEnforcer(maxSteps int) *QuotaEnforcer {
	return &QuotaEnforcer{maxSteps: maxSteps}
}

// Check increments the step counter and validates it against the limit.
func (q *QuotaEnforcer) Check(sessionID string) error {
	q.current++
	if q.current > q.maxSteps {
		return &StepsExceededError{
			SessionID: sessionID,
			Steps:     q.current,
			Limit:     q.maxSteps,
		}
	}
	return nil
}

// Reset sets the step counter back to 0.
func (q *QuotaEnforcer) Reset() {
	q.current = 0
}

// Current returns the current step count.
func (q *QuotaEnforcer) Current() int {
	return q.current
}

// MaxSteps returns the limit.
func (q *QuotaEnforcer) MaxSteps() int {
	return q.maxSteps
}

// StepsExceededError is returned when completion runs past its step
// quota. The session keeps the identities and rules it had reached.
type StepsExceededError struct {
	SessionID string
	Steps     int
	Limit     int
}

// Error implements the error interface.
func (e *StepsExceededError) Error() string {
	return fmt.Sprintf("session %s exceeded max steps quota: %d steps > %d limit",
		e.SessionID, e.Steps, e.Limit)
}

// IsStepsExceededError returns true if the error is a StepsExceededError.
// Uses errors.As to handle wrapped errors.
func IsStepsExceededError(err error) bool {
	var se *StepsExceededError
	return errors.As(err, &se)
}
