package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/trs/internal/ir"
	"github.com/roach88/trs/internal/order"
	"github.com/roach88/trs/internal/rewrite"
	"github.com/roach88/trs/internal/term"
)

// Result is the outcome of a completion run.
type Result struct {
	State      State
	Identities []term.Identity
	Rules      []term.Rule
	Steps      int
}

// Complete runs Huet-style completion until the session saturates, an
// identity cannot be oriented, the step quota runs out or ctx is done.
//
// On success the identity set is empty and the rules form a convergent
// system for the original identities. On any error the session keeps the
// identities and rules reached so far, and the returned Result reflects
// them.
func (s *Session) Complete(ctx context.Context) (Result, error) {
	return s.run(ctx, "huet", s.overlapStep)
}

// run drives the state machine. overlap performs one ComputeOverlaps step
// and reports whether anything was left to overlap.
func (s *Session) run(ctx context.Context, strategy string, overlap func() bool) (Result, error) {
	quota := NewQuotaEnforcer(s.maxSteps)
	for i := range s.rules {
		s.rules[i].Marked = false
	}
	s.ledger.Clear()

	s.logger.Info("completion starting",
		"session", s.id,
		"strategy", strategy,
		"identities", len(s.identities),
		"rules", len(s.rules),
		"max_steps", s.maxSteps)
	s.emit(ir.StepStart, fmt.Sprintf("start %s completion", strategy))

	for {
		if err := ctx.Err(); err != nil {
			s.logger.Info("completion aborted", "session", s.id, "steps", quota.Current())
			return s.result(quota), fmt.Errorf("session %s: %w", s.id, err)
		}
		if err := quota.Check(s.id); err != nil {
			s.logger.Info("completion quota exceeded", "session", s.id, "limit", s.maxSteps)
			return s.result(quota), err
		}

		if len(s.identities) > 0 {
			s.state = StateProcessIdentities
			if err := s.processIdentity(); err != nil {
				if IsUnorientable(err) {
					s.state = StateFailed
				}
				s.logger.Info("completion failed", "session", s.id, "error", err)
				return s.result(quota), err
			}
			continue
		}

		s.state = StateComputeOverlaps
		if overlap() {
			continue
		}

		s.state = StateSaturated
		s.emit(ir.StepSaturated, fmt.Sprintf("saturated with %d rules", len(s.rules)))
		s.logger.Info("completion saturated",
			"session", s.id,
			"rules", len(s.rules),
			"steps", quota.Current())
		return s.result(quota), nil
	}
}

func (s *Session) overlapStep() bool {
	_, ok := s.CriticalPairs()
	return ok
}

func (s *Session) result(q *QuotaEnforcer) Result {
	return Result{
		State:      s.state,
		Identities: s.Identities(),
		Rules:      s.Rules(),
		Steps:      q.Current(),
	}
}

// smallestIdentity returns the index of the identity with the smallest
// |Left|+|Right|, the earliest on ties.
func (s *Session) smallestIdentity() int {
	best := 0
	for i, e := range s.identities {
		if e.Size() < s.identities[best].Size() {
			best = i
		}
	}
	return best
}

// processIdentity handles the smallest identity: drop it when its normal
// forms meet, otherwise orient it and interreduce. Nothing in the session
// changes when orientation fails.
func (s *Session) processIdentity() error {
	idx := s.smallestIdentity()
	id := s.identities[idx]

	l, err := s.normalize(id.Left, s.rules)
	if err != nil {
		return err
	}
	r, err := s.normalize(id.Right, s.rules)
	if err != nil {
		return err
	}
	if l.Equal(r) {
		s.removeIdentity(idx)
		s.emit(ir.StepDropIdentity, "drop joinable "+id.String(), id.Left, id.Right)
		return nil
	}

	left, right, ok := order.Compare(l, r)
	if !ok {
		s.emit(ir.StepFailed, "cannot orient "+term.Identity{Left: l, Right: r}.String(), l, r)
		return &UnorientableEquationError{SessionID: s.id, Identity: id, Left: l, Right: r}
	}
	rule := term.Rule{Left: left, Right: right}

	kept, demoted, simplified, err := s.interreduce(rule)
	if err != nil {
		return err
	}
	s.removeIdentity(idx)
	s.rules = append(kept, rule)
	s.emit(ir.StepOrient, "orient "+rule.String(), rule.Left, rule.Right)

	for _, r := range simplified {
		s.emit(ir.StepSimplifyRule, "simplify "+r.String(), r.Left, r.Right)
	}
	for _, d := range demoted {
		added := s.addIdentity(d)
		s.logger.Debug("rule demoted", "session", s.id, "identity", d.String(), "added", added)
		s.emit(ir.StepDemoteRule, "demote to "+d.String(), d.Left, d.Right)
	}
	return nil
}

// interreduce checks every current rule against the new rule. A rule
// whose left side the new rule rewrites becomes an identity between that
// reduced left side and its right side. Any other rule keeps its left side
// and mark, with its right side normalized by all rules including the new
// one. The session is not modified.
func (s *Session) interreduce(rule term.Rule) (kept []term.Rule, demoted []term.Identity, simplified []term.Rule, err error) {
	only := []term.Rule{rule}
	all := append(s.Rules(), rule)

	for _, r := range s.rules {
		if !rewrite.IsNormal(r.Left, only) {
			lhs, err := s.normalize(r.Left, only)
			if err != nil {
				return nil, nil, nil, err
			}
			demoted = append(demoted, term.Identity{Left: lhs, Right: r.Right})
			continue
		}
		rhs, err := s.normalize(r.Right, all)
		if err != nil {
			return nil, nil, nil, err
		}
		if rhs.Equal(r.Right) {
			kept = append(kept, r)
			continue
		}
		if !order.Orients(r.Left, rhs) {
			demoted = append(demoted, term.Identity{Left: r.Left, Right: rhs})
			continue
		}
		nr := term.Rule{Left: r.Left, Right: rhs, Marked: r.Marked}
		kept = append(kept, nr)
		simplified = append(simplified, nr)
	}
	return kept, demoted, simplified, nil
}

// normalize rewrites t to normal form within the session's rewrite limit.
func (s *Session) normalize(t *term.Term, rules []term.Rule) (*term.Term, error) {
	nf, err := rewrite.NormalizeBounded(t, rules, s.maxRewrites)
	if err != nil {
		var ne *rewrite.NonTerminationError
		errors.As(err, &ne)
		return nil, &NonTerminatingRulesError{SessionID: s.id, Cause: ne}
	}
	return nf, nil
}

func (s *Session) removeIdentity(i int) {
	s.identities = append(s.identities[:i:i], s.identities[i+1:]...)
}
