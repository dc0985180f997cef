package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/trs/internal/rewrite"
	"github.com/roach88/trs/internal/term"
)

// ReduceOptions holds flags for the reduce command.
type ReduceOptions struct {
	*RootOptions
	SignatureOptions
	Rules []string
	Steps bool
	All   bool
}

// Reduct is one single-step rewrite of the input term.
type Reduct struct {
	Position string `json:"position"`
	Rule     string `json:"rule"`
	Result   string `json:"result"`
}

// ReduceResult holds the rewrites of one term.
type ReduceResult struct {
	Term        string   `json:"term"`
	Rules       []string `json:"rules"`
	NormalForm  string   `json:"normal_form,omitempty"`
	NormalForms []string `json:"normal_forms,omitempty"`
	Reducts     []Reduct `json:"reducts,omitempty"`
}

// NewReduceCommand creates the reduce command.
func NewReduceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReduceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reduce <term>",
		Short: "Rewrite a term with a set of rules",
		Long: `Rewrite a term with rules given as "l = r".

Each rule is oriented by the lexicographic path ordering, so rewriting
always terminates; a rule whose sides are incomparable is rejected. By
default the term is rewritten to a normal form, always reducing the
deepest redex first. --steps lists every one-step rewrite instead and
--all lists every distinct normal form.

Example:
  trs reduce --signature "f/2 e/0" --rule "f(e,x) = x" "f(e,f(e,y))"
  trs reduce --signature "f/2 a/0 b/0" --rule "f(x,x) = a" --steps "f(f(b,b),f(b,b))"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReduce(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Signature, "signature", "s", "", `declarations such as "f/2 i/1 e/0" (required)`)
	cmd.Flags().StringSliceVar(&opts.Precedence, "precedence", nil, "symbol precedence, heaviest first")
	cmd.Flags().StringArrayVarP(&opts.Rules, "rule", "r", nil, `rule "l = r" (repeatable)`)
	cmd.Flags().BoolVar(&opts.Steps, "steps", false, "list one-step rewrites")
	cmd.Flags().BoolVar(&opts.All, "all", false, "list every normal form")
	cmd.MarkFlagsMutuallyExclusive("steps", "all")
	_ = cmd.MarkFlagRequired("signature")

	return cmd
}

func runReduce(opts *ReduceOptions, input string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	sig, err := opts.build()
	if err != nil {
		return failInput(formatter, err)
	}
	t, err := term.Parse(sig, input)
	if err != nil {
		return failInput(formatter, err)
	}
	rules, err := orientRules(sig, opts.Rules)
	if err != nil {
		if term.IsSyntaxError(err) || term.IsArityError(err) || term.IsFormatError(err) {
			return failInput(formatter, err)
		}
		return formatter.Fail(ExitCommandError, ErrCodeUnorientable, err.Error(), nil)
	}

	result := ReduceResult{Term: t.String(), Rules: ruleStrings(rules)}
	switch {
	case opts.Steps:
		result.Reducts = []Reduct{}
		for _, rx := range rewrite.Step(t, rules) {
			result.Reducts = append(result.Reducts, Reduct{
				Position: rx.Pos.String(),
				Rule:     rules[rx.Rule].String(),
				Result:   rx.Result.String(),
			})
		}
	case opts.All:
		for _, nf := range rewrite.Reduce(t, rules) {
			result.NormalForms = append(result.NormalForms, nf.String())
		}
	default:
		result.NormalForm = rewrite.Normalize(t, rules).String()
	}

	return formatter.Emit(result, func(w io.Writer) {
		switch {
		case opts.Steps:
			if len(result.Reducts) == 0 {
				fmt.Fprintf(w, "%s is in normal form\n", result.Term)
			}
			for _, rx := range result.Reducts {
				fmt.Fprintf(w, "%-4s %-20s %s\n", rx.Position, rx.Rule, rx.Result)
			}
		case opts.All:
			for _, nf := range result.NormalForms {
				fmt.Fprintln(w, nf)
			}
		default:
			fmt.Fprintf(w, "%s →* %s\n", result.Term, result.NormalForm)
		}
	})
}
