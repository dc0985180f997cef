package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/trs/internal/term"
	"github.com/roach88/trs/internal/unify"
)

// UnifyOptions holds flags for the unify command.
type UnifyOptions struct {
	*RootOptions
	SignatureOptions
	Identities  []string
	MaxProblems int
}

// UnifyResult is the answer to a unification problem.
type UnifyResult struct {
	Equations []string `json:"equations"`
	Unifier   []string `json:"unifier"`
	// Solutions holds each equation after the unifier is applied.
	Solutions []string `json:"solutions"`
}

// NewUnifyCommand creates the unify command.
func NewUnifyCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UnifyOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "unify <equation>...",
		Short: "Find a most general unifier",
		Long: `Solve a unification problem given as one or more "s = t" equations.

The equations share one variable scope. With --identity the problem is
solved modulo those identities by a bounded breadth-first search; each
identity has its own variable scope and may be used in either direction.

Exit codes:
  0 - A unifier was found
  1 - No unifier exists, or the search budget ran out
  2 - Command error (bad signature or term text)

Example:
  trs unify --signature "f/2 g/1 a/0" "f(x, g(y)) = f(g(a), x)"
  trs unify --signature "f/2 a/0 b/0" --identity "f(x,y) = f(y,x)" "f(a, z) = f(b, a)"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnify(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Signature, "signature", "s", "", `declarations such as "f/2 i/1 e/0" (required)`)
	cmd.Flags().StringArrayVarP(&opts.Identities, "identity", "e", nil, `background identity "l = r" (repeatable)`)
	cmd.Flags().IntVar(&opts.MaxProblems, "max-problems", unify.DefaultMaxProblems, "search budget when identities are given")
	_ = cmd.MarkFlagRequired("signature")

	return cmd
}

func runUnify(opts *UnifyOptions, inputs []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	sig, err := opts.build()
	if err != nil {
		return failInput(formatter, err)
	}

	p := term.NewParser(sig)
	eqs := make([]unify.Equation, 0, len(inputs))
	for _, in := range inputs {
		id, err := p.ParseEquation(in)
		if err != nil {
			return failInput(formatter, err)
		}
		eqs = append(eqs, unify.Equation{Left: id.Left, Right: id.Right})
	}

	solver := &unify.Solver{MaxProblems: opts.MaxProblems, Signature: sig}
	for _, text := range opts.Identities {
		id, err := term.ParseEquation(sig, text)
		if err != nil {
			return failInput(formatter, err)
		}
		solver.Identities = append(solver.Identities, id)
	}
	formatter.VerboseLog("solving %d equations modulo %d identities", len(eqs), len(solver.Identities))

	sub, err := solver.Solve(eqs)
	switch {
	case unify.IsSearchExhausted(err):
		return formatter.Fail(ExitFailure, ErrCodeSearchLimit, err.Error(), nil)
	case err != nil:
		return formatter.Fail(ExitFailure, ErrCodeNoUnifier, err.Error(), nil)
	}

	result := UnifyResult{
		Equations: make([]string, len(eqs)),
		Unifier:   make([]string, len(sub)),
		Solutions: make([]string, len(eqs)),
	}
	for i, e := range eqs {
		result.Equations[i] = e.String()
		result.Solutions[i] = unify.Equation{Left: sub.Apply(e.Left), Right: sub.Apply(e.Right)}.String()
	}
	for i, b := range sub {
		result.Unifier[i] = b.String()
	}

	return formatter.Emit(result, func(w io.Writer) {
		if len(result.Unifier) == 0 {
			fmt.Fprintln(w, "unifier: {}")
		} else {
			fmt.Fprintln(w, "unifier:")
			for _, b := range result.Unifier {
				fmt.Fprintf(w, "  %s\n", b)
			}
		}
		for _, s := range result.Solutions {
			fmt.Fprintf(w, "  ⊢ %s\n", s)
		}
	})
}
