package harness

import (
	"github.com/roach88/trs/internal/ir"
	"github.com/roach88/trs/internal/term"
)

// TraceEvent is one history step as read back from the store.
type TraceEvent struct {
	Seq        int64    `json:"seq"`
	Kind       string   `json:"kind"`
	Text       string   `json:"text"`
	Terms      []string `json:"terms,omitempty"`
	Identities int      `json:"identities"`
	Rules      int      `json:"rules"`
}

func traceEvent(step ir.Step) TraceEvent {
	return TraceEvent{
		Seq:        step.Seq,
		Kind:       string(step.Kind),
		Text:       step.Text,
		Terms:      step.Terms,
		Identities: len(step.Identities),
		Rules:      len(step.Rules),
	}
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every assertion holds.
	Pass bool `json:"pass"`

	// Outcome is saturated, failed (an unorientable identity) or aborted
	// (step quota exhausted).
	Outcome string `json:"outcome"`

	// SessionID is the id the run was stored under.
	SessionID string `json:"session_id"`

	// Steps counts completion steps, as the quota does.
	Steps int `json:"steps"`

	Trace      []TraceEvent `json:"trace"`
	Rules      []string     `json:"rules"`
	Identities []string     `json:"identities"`

	// Errors contains failed assertion messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	sig   *term.Signature
	rules []term.Rule
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:       true,
		Trace:      []TraceEvent{},
		Rules:      []string{},
		Identities: []string{},
		Errors:     []string{},
	}
}

// AddError adds a failed assertion message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
