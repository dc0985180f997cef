package ir

// ProblemSpec is a completion problem as loaded from a problem file or a
// scenario: a signature, an optional precedence and the axioms.
type ProblemSpec struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Signature   []string `json:"signature"`            // "name/arity" declarations
	Precedence  []string `json:"precedence,omitempty"` // heaviest first
	Identities  []string `json:"identities"`           // "l = r"
	Strategy    string   `json:"strategy,omitempty"`   // "huet" or "naive"
	MaxSteps    int64    `json:"max_steps,omitempty"`
}

// Strategy names.
const (
	StrategyHuet  = "huet"
	StrategyNaive = "naive"
)

// ValidStrategies lists the accepted strategy names.
var ValidStrategies = map[string]bool{
	StrategyHuet:  true,
	StrategyNaive: true,
}

// StepKind classifies a history step.
type StepKind string

const (
	StepStart         StepKind = "start"
	StepAddIdentity   StepKind = "add_identity"
	StepDropIdentity  StepKind = "drop_identity"
	StepOrient        StepKind = "orient"
	StepSimplifyRule  StepKind = "simplify_rule"
	StepDemoteRule    StepKind = "demote_rule"
	StepCriticalPairs StepKind = "critical_pairs"
	StepSaturated     StepKind = "saturated"
	StepFailed        StepKind = "failed"
)

// Step is one entry of the history log: what happened, the terms involved
// and the identity and rule sets right after it.
type Step struct {
	Seq        int64    `json:"seq"`
	Kind       StepKind `json:"kind"`
	Text       string   `json:"text"`
	Terms      []string `json:"terms,omitempty"`
	Identities []string `json:"identities"`
	Rules      []string `json:"rules"`
}

// Session states as stored.
const (
	StateRunning   = "running"
	StateSaturated = "saturated"
	StateFailed    = "failed"
	StateAborted   = "aborted"
)

// SessionRecord is a stored completion session.
type SessionRecord struct {
	ID          string `json:"id"`
	Problem     string `json:"problem"`
	Signature   string `json:"signature"`
	ProblemHash string `json:"problem_hash"`
	State       string `json:"state"`
	Steps       int64  `json:"steps"`
}
