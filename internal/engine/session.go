package engine

import (
	"fmt"
	"log/slog"

	"github.com/roach88/trs/internal/ir"
	"github.com/roach88/trs/internal/rewrite"
	"github.com/roach88/trs/internal/term"
	"github.com/roach88/trs/internal/unify"
)

// DefaultMaxSteps is the default completion step quota.
const DefaultMaxSteps = 10000

// State is a completion state.
type State string

const (
	StateProcessIdentities State = "process_identities"
	StateComputeOverlaps   State = "compute_overlaps"
	StateSaturated         State = "saturated"
	StateFailed            State = "failed"
)

// Session holds the identities and rules of one completion problem.
//
// INVARIANTS:
//   - every rule satisfies Left ≻ Right under LPO when it is created
//   - no identity is trivial or duplicates another identity or rule, up to
//     variable renaming and orientation
//   - terms are immutable; the session never edits a term it hands out
type Session struct {
	id         string
	sig        *term.Signature
	identities []term.Identity
	rules      []term.Rule
	ledger     *PairLedger
	clock      SeqClock
	state      State

	maxSteps    int
	maxRewrites int
	logger      *slog.Logger
	observers   []Observer
	idGen       IDGenerator
}

// Option configures a Session.
type Option func(*Session)

// WithMaxSteps sets the completion step quota.
//
// Default: 10000 steps (DefaultMaxSteps).
func WithMaxSteps(n int) Option {
	return func(s *Session) {
		s.maxSteps = n
	}
}

// WithMaxRewrites bounds every normalization completion performs.
//
// Default: rewrite.DefaultMaxRewrites.
func WithMaxRewrites(n int) Option {
	return func(s *Session) {
		s.maxRewrites = n
	}
}

// WithLogger sets the logger. By default the session logs nothing.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithObserver adds an observer of completion steps.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		s.observers = append(s.observers, o)
	}
}

// WithIDGenerator sets the session id source. Default: UUIDv7Generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Session) {
		s.idGen = g
	}
}

// SeqClock issues strictly increasing step sequence numbers. *Clock is
// the default implementation.
type SeqClock interface {
	Next() int64
}

// WithClock sets the step clock. Used to continue a history after a
// known seq, or to share one clock between sessions.
func WithClock(c SeqClock) Option {
	return func(s *Session) {
		s.clock = c
	}
}

// NewSession creates an empty session over sig.
func NewSession(sig *term.Signature, opts ...Option) *Session {
	s := &Session{
		sig:         sig,
		ledger:      NewPairLedger(),
		clock:       NewClock(),
		state:       StateProcessIdentities,
		maxSteps:    DefaultMaxSteps,
		maxRewrites: rewrite.DefaultMaxRewrites,
		logger:      slog.New(slog.DiscardHandler),
		idGen:       UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.id = s.idGen.Generate()
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Signature returns the session signature.
func (s *Session) Signature() *term.Signature { return s.sig }

// State returns the current completion state.
func (s *Session) State() State { return s.state }

// Identities returns a copy of the current identities.
func (s *Session) Identities() []term.Identity {
	return append([]term.Identity(nil), s.identities...)
}

// Rules returns a copy of the current rules.
func (s *Session) Rules() []term.Rule {
	return append([]term.Rule(nil), s.rules...)
}

// AddIdentity parses "l = r" against the session signature and adds it.
// It returns false without error when the identity is trivial or already
// present.
func (s *Session) AddIdentity(text string) (bool, error) {
	eq, err := term.ParseEquation(s.sig, text)
	if err != nil {
		return false, fmt.Errorf("add identity: %w", err)
	}
	return s.AddEquation(eq.Left, eq.Right)
}

// AddEquation adds the identity l ≈ r. It returns false when the identity
// is trivial or duplicates an identity or rule in either orientation.
func (s *Session) AddEquation(l, r *term.Term) (bool, error) {
	if l == nil || r == nil {
		return false, fmt.Errorf("add identity: missing side")
	}
	if !s.addIdentity(term.Identity{Left: l, Right: r}) {
		s.logger.Debug("identity rejected", "session", s.id, "identity", term.Identity{Left: l, Right: r}.String())
		return false, nil
	}
	if s.state == StateSaturated {
		s.state = StateProcessIdentities
	}
	s.emit(ir.StepAddIdentity, "add identity "+term.Identity{Left: l, Right: r}.String(), l, r)
	return true, nil
}

// addIdentity appends id unless it is trivial or a duplicate.
func (s *Session) addIdentity(id term.Identity) bool {
	if id.Trivial() {
		return false
	}
	fwd, bwd := s.pairKeys(id.Left, id.Right)
	for _, e := range s.identities {
		if k := s.canonicalKey(e.Left, e.Right); k == fwd || k == bwd {
			return false
		}
	}
	if s.hasRule(fwd, bwd) {
		return false
	}
	s.identities = append(s.identities, id)
	return true
}

// canonicalKey identifies l ≈ r up to variable renaming.
func (s *Session) canonicalKey(l, r *term.Term) string {
	c := unify.Canonicalize(s.sig, l, r)
	return c[0].Key() + "=" + c[1].Key()
}

// pairKeys returns the canonical keys of l ≈ r in both orientations.
func (s *Session) pairKeys(l, r *term.Term) (fwd, bwd string) {
	return s.canonicalKey(l, r), s.canonicalKey(r, l)
}

// hasRule reports whether a rule has one of the canonical keys.
func (s *Session) hasRule(keys ...string) bool {
	for _, rule := range s.rules {
		k := s.canonicalKey(rule.Left, rule.Right)
		for _, want := range keys {
			if k == want {
				return true
			}
		}
	}
	return false
}

// Snapshot renders the current identities and rules.
func (s *Session) Snapshot() (identities, rules []string) {
	identities = make([]string, len(s.identities))
	for i, e := range s.identities {
		identities[i] = e.String()
	}
	rules = make([]string, len(s.rules))
	for i, r := range s.rules {
		rules[i] = r.String()
	}
	return identities, rules
}

// emit stamps a step and hands it to every observer. Observer errors are
// logged and do not stop completion.
func (s *Session) emit(kind ir.StepKind, text string, terms ...*term.Term) ir.Step {
	ids, rules := s.Snapshot()
	step := ir.Step{
		Seq:        s.clock.Next(),
		Kind:       kind,
		Text:       text,
		Identities: ids,
		Rules:      rules,
	}
	for _, t := range terms {
		step.Terms = append(step.Terms, t.String())
	}
	s.logger.Debug("completion step",
		"session", s.id,
		"seq", step.Seq,
		"kind", string(kind),
		"text", text,
		"identities", len(ids),
		"rules", len(rules))
	for _, o := range s.observers {
		if err := o.Observe(s.id, step); err != nil {
			s.logger.Warn("observer failed", "session", s.id, "seq", step.Seq, "error", err)
		}
	}
	return step
}
