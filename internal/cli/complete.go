package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/trs/internal/compiler"
	"github.com/roach88/trs/internal/engine"
	"github.com/roach88/trs/internal/ir"
	"github.com/roach88/trs/internal/store"
)

// CompleteOptions holds flags for the complete command.
type CompleteOptions struct {
	*RootOptions
	SignatureOptions
	Problem    string
	Identities []string
	Strategy   string
	MaxSteps   int
	Database   string
	MetricsOut string
	Trace      bool

	// IDGenerator overrides the session id source (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDGenerator engine.IDGenerator
}

// CompleteResult is the outcome of one completion run.
type CompleteResult struct {
	SessionID  string    `json:"session_id"`
	Problem    string    `json:"problem"`
	Outcome    string    `json:"outcome"`
	Steps      int       `json:"steps"`
	Rules      []string  `json:"rules"`
	Identities []string  `json:"identities"`
	Trace      []ir.Step `json:"trace,omitempty"`
}

// NewCompleteCommand creates the complete command.
func NewCompleteCommand(rootOpts *RootOptions) *cobra.Command {
	return newCompleteCommand(&CompleteOptions{RootOptions: rootOpts})
}

func newCompleteCommand(opts *CompleteOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete [problem-file-or-dir]",
		Short: "Run Knuth-Bendix completion",
		Long: `Run Knuth-Bendix completion on a set of identities.

The problem comes either from a CUE problem file (or a directory of them,
selected with --problem) or inline from --signature and --identity. Flags
given explicitly override the problem file.

With --db every step is appended to a SQLite history database that the
history command can replay. With --metrics-out the run's Prometheus
metrics are written in the textfile format when it ends.

Exit codes:
  0 - Completion saturated: the rules are convergent
  1 - An identity could not be oriented, or the step quota ran out
  2 - Command error (bad problem, database error)

Examples:
  trs complete ./problems/group.cue --problem group
  trs complete -s "f/2 i/1 e/0" --precedence f,i,e \
    -e "f(f(x,y),z) = f(x,f(y,z))" -e "f(x,i(x)) = e" -e "f(e,x) = x"
  trs complete ./problems --problem group --db ./trs.db --trace`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runComplete(opts, path, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Signature, "signature", "s", "", `declarations such as "f/2 i/1 e/0"`)
	cmd.Flags().StringSliceVar(&opts.Precedence, "precedence", nil, "symbol precedence, heaviest first")
	cmd.Flags().StringArrayVarP(&opts.Identities, "identity", "e", nil, `identity "l = r" (repeatable)`)
	cmd.Flags().StringVarP(&opts.Problem, "problem", "p", "", "problem name within the problem files")
	cmd.Flags().StringVar(&opts.Strategy, "strategy", ir.StrategyHuet, "completion strategy (huet|naive)")
	cmd.Flags().IntVar(&opts.MaxSteps, "max-steps", engine.DefaultMaxSteps, "completion step quota")
	cmd.Flags().StringVar(&opts.Database, "db", "", "append the run to this SQLite history database")
	cmd.Flags().StringVar(&opts.MetricsOut, "metrics-out", "", "write Prometheus metrics to this file")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "print every completion step")

	return cmd
}

func runComplete(opts *CompleteOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	spec, err := completeProblem(opts, path, cmd)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return formatter.Fail(ExitCommandError, loadErr.Code, loadErr.Message, nil)
		}
		return formatter.Fail(ExitCommandError, ErrCodeBuildFailed, err.Error(), nil)
	}
	problem, err := compiler.Build(spec)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeBuildFailed, err.Error(), nil)
	}
	logger.Info("problem loaded",
		"problem", spec.Name,
		"signature", problem.Signature.String(),
		"identities", len(problem.Identities),
		"strategy", spec.Strategy,
	)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder := engine.NewRecorder()
	metrics := engine.NewMetrics()
	idGen := opts.IDGenerator
	if idGen == nil {
		idGen = engine.UUIDv7Generator{}
	}
	sessOpts := []engine.Option{
		engine.WithIDGenerator(idGen),
		engine.WithLogger(logger),
		engine.WithMaxSteps(int(spec.MaxSteps)),
		engine.WithObserver(recorder),
		engine.WithObserver(metrics),
	}

	var st *store.Store
	if opts.Database != "" {
		st, err = store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()
		sessOpts = append(sessOpts, engine.WithObserver(store.NewStepWriter(ctx, st)))
	}

	sess := engine.NewSession(problem.Signature, sessOpts...)
	if st != nil {
		if err := st.WriteSession(ctx, ir.SessionRecord{
			ID:          sess.ID(),
			Problem:     spec.Name,
			Signature:   problem.Signature.String(),
			ProblemHash: problem.Hash,
			State:       ir.StateRunning,
		}); err != nil {
			return WrapExitError(ExitCommandError, "failed to record session", err)
		}
	}
	for _, id := range problem.Identities {
		if _, err := sess.AddEquation(id.Left, id.Right); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeBuildFailed, err.Error(), nil)
		}
	}

	var res engine.Result
	if spec.Strategy == ir.StrategyNaive {
		res, err = sess.CompleteNaive(ctx)
	} else {
		res, err = sess.Complete(ctx)
	}
	outcome, code := completionOutcome(err)
	logger.Info("completion finished", "session", sess.ID(), "outcome", outcome, "steps", res.Steps)

	if st != nil {
		// The run context may be cancelled already; the final state is
		// still recorded.
		if uerr := st.UpdateSession(context.WithoutCancel(ctx), sess.ID(), outcome, int64(res.Steps)); uerr != nil {
			return WrapExitError(ExitCommandError, "failed to record outcome", uerr)
		}
	}
	if opts.MetricsOut != "" {
		if merr := metrics.WriteTextfile(opts.MetricsOut); merr != nil {
			return WrapExitError(ExitCommandError, "failed to write metrics", merr)
		}
	}

	identities, rules := sess.Snapshot()
	result := CompleteResult{
		SessionID:  sess.ID(),
		Problem:    spec.Name,
		Outcome:    outcome,
		Steps:      res.Steps,
		Rules:      rules,
		Identities: identities,
	}
	if opts.Trace {
		result.Trace = recorder.Steps()
	}

	if code != "" {
		if formatter.JSON() {
			return formatter.Fail(ExitFailure, code, err.Error(), result)
		}
		writeCompleteText(formatter.Writer, result)
		return formatter.Fail(ExitFailure, code, err.Error(), nil)
	}
	return formatter.Emit(result, func(w io.Writer) {
		writeCompleteText(w, result)
	})
}

// completeProblem assembles the problem from the path argument and the
// inline flags.
func completeProblem(opts *CompleteOptions, path string, cmd *cobra.Command) (ir.ProblemSpec, error) {
	var spec ir.ProblemSpec
	if path != "" {
		loaded, err := LoadProblems(path)
		if err != nil {
			return spec, err
		}
		if spec, err = SelectProblem(loaded.Problems, opts.Problem); err != nil {
			return spec, err
		}
	} else {
		if opts.Signature == "" || len(opts.Identities) == 0 {
			return spec, errors.New("a problem file or both --signature and --identity are required")
		}
		spec.Name = "inline"
	}

	flags := cmd.Flags()
	if flags.Changed("signature") {
		spec.Signature = strings.Fields(opts.Signature)
	}
	if flags.Changed("precedence") {
		spec.Precedence = opts.Precedence
	}
	if flags.Changed("identity") {
		spec.Identities = opts.Identities
	}
	if flags.Changed("strategy") || spec.Strategy == "" {
		spec.Strategy = opts.Strategy
	}
	if flags.Changed("max-steps") || spec.MaxSteps == 0 {
		spec.MaxSteps = int64(opts.MaxSteps)
	}
	return spec, nil
}

// completionOutcome maps a completion error to the stored session state
// and the CLI error code. The code is empty on success.
func completionOutcome(err error) (outcome, code string) {
	switch {
	case err == nil:
		return ir.StateSaturated, ""
	case engine.IsUnorientable(err):
		return ir.StateFailed, ErrCodeUnorientable
	case engine.IsQuotaError(err):
		return ir.StateAborted, ErrCodeQuota
	default:
		return ir.StateAborted, ErrCodeGeneric
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func writeCompleteText(w io.Writer, result CompleteResult) {
	for _, step := range result.Trace {
		fmt.Fprintf(w, "[%d] %-14s %s\n", step.Seq, step.Kind, step.Text)
	}
	if len(result.Trace) > 0 {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Session %s: %s after %d steps\n", result.SessionID, result.Outcome, result.Steps)
	fmt.Fprintf(w, "Rules (%d):\n", len(result.Rules))
	for _, r := range result.Rules {
		fmt.Fprintf(w, "  %s\n", r)
	}
	if len(result.Identities) > 0 {
		fmt.Fprintf(w, "Identities (%d):\n", len(result.Identities))
		for _, id := range result.Identities {
			fmt.Fprintf(w, "  %s\n", id)
		}
	}
}
