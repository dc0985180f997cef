package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/trs/internal/compiler"
	"github.com/roach88/trs/internal/engine"
	"github.com/roach88/trs/internal/ir"
	"github.com/roach88/trs/internal/store"
	"github.com/roach88/trs/internal/testutil"
)

// Harness runs scenarios with a deterministic clock and session id.
type Harness struct {
	logger *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger passed to every session.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = l
	}
}

// New creates a harness. By default it logs nothing.
func New(opts ...Option) *Harness {
	h := &Harness{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a default harness.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	return New().Run(ctx, scenario)
}

// Run executes a scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
//  1. Build the problem (validate and parse signature and identities)
//  2. Record a session and add the identities
//  3. Complete with the scenario's strategy
//  4. Read the trace back from the store and evaluate assertions
//
// An unorientable identity or an exhausted quota is an outcome, not an
// error. Errors are reserved for scenarios that cannot run at all.
func (h *Harness) Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	spec := scenario.ProblemSpec()
	problem, err := compiler.Build(spec)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	opts := []engine.Option{
		engine.WithIDGenerator(testutil.NewFixedSessionGenerator(scenario.SessionID)),
		engine.WithClock(testutil.NewDeterministicClock()),
		engine.WithObserver(store.NewStepWriter(ctx, st)),
		engine.WithLogger(h.logger),
	}
	if spec.MaxSteps > 0 {
		opts = append(opts, engine.WithMaxSteps(int(spec.MaxSteps)))
	}
	sess := engine.NewSession(problem.Signature, opts...)

	if err := st.WriteSession(ctx, ir.SessionRecord{
		ID:          sess.ID(),
		Problem:     scenario.Name,
		Signature:   problem.Signature.String(),
		ProblemHash: problem.Hash,
		State:       ir.StateRunning,
	}); err != nil {
		return nil, err
	}
	for _, id := range problem.Identities {
		if _, err := sess.AddEquation(id.Left, id.Right); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
	}

	var res engine.Result
	if spec.Strategy == ir.StrategyNaive {
		res, err = sess.CompleteNaive(ctx)
	} else {
		res, err = sess.Complete(ctx)
	}
	outcome, err := classify(err)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	if err := st.UpdateSession(ctx, sess.ID(), outcome, int64(res.Steps)); err != nil {
		return nil, err
	}

	steps, err := st.ReadSteps(ctx, sess.ID())
	if err != nil {
		return nil, err
	}

	result := NewResult()
	result.Outcome = outcome
	result.SessionID = sess.ID()
	result.Steps = res.Steps
	result.sig = problem.Signature
	result.rules = res.Rules
	for _, step := range steps {
		result.Trace = append(result.Trace, traceEvent(step))
	}
	result.Identities, result.Rules = sess.Snapshot()

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

// classify maps a completion error to a stored session state.
func classify(err error) (string, error) {
	switch {
	case err == nil:
		return ir.StateSaturated, nil
	case engine.IsUnorientable(err):
		return ir.StateFailed, nil
	case engine.IsQuotaError(err):
		return ir.StateAborted, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ir.StateAborted, err
	default:
		return "", err
	}
}

// RunAll runs scenarios concurrently, at most limit at a time (no limit
// when limit <= 0). Scenarios share nothing, so results[i] belongs to
// scenarios[i] regardless of finishing order. The first error cancels the
// remaining runs.
func (h *Harness) RunAll(ctx context.Context, scenarios []*Scenario, limit int) ([]*Result, error) {
	results := make([]*Result, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, sc := range scenarios {
		g.Go(func() error {
			res, err := h.Run(ctx, sc)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
