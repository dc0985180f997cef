package engine

import (
	"sync"

	"github.com/roach88/trs/internal/ir"
)

// Observer receives every completion step of a session, in seq order.
// Observe must not call back into the session.
type Observer interface {
	Observe(sessionID string, step ir.Step) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(sessionID string, step ir.Step) error

// Observe calls f.
func (f ObserverFunc) Observe(sessionID string, step ir.Step) error {
	return f(sessionID, step)
}

// Recorder is an in-memory history log.
//
// Thread-safety: Recorder is safe for concurrent use, so a host may read
// the log while completion runs on another goroutine.
type Recorder struct {
	mu    sync.Mutex
	steps []ir.Step
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Observe appends the step.
func (r *Recorder) Observe(_ string, step ir.Step) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, step)
	return nil
}

// Steps returns a copy of the recorded steps.
func (r *Recorder) Steps() []ir.Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ir.Step(nil), r.steps...)
}

// Last returns the most recent step.
func (r *Recorder) Last() (ir.Step, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.steps) == 0 {
		return ir.Step{}, false
	}
	return r.steps[len(r.steps)-1], true
}

// Len returns the number of recorded steps.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.steps)
}
