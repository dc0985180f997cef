package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/trs/internal/term"
)

// ParseOptions holds flags for the parse command.
type ParseOptions struct {
	*RootOptions
	SignatureOptions
	Positions bool
}

// ParsedTerm describes one parsed term.
type ParsedTerm struct {
	Input     string         `json:"input"`
	Term      string         `json:"term"`
	Size      int            `json:"size"`
	Variables []string       `json:"variables"`
	Positions []TermPosition `json:"positions,omitempty"`
}

// TermPosition is one position of a term and the subterm found there.
type TermPosition struct {
	Position string `json:"position"`
	Subterm  string `json:"subterm"`
}

// NewParseCommand creates the parse command.
func NewParseCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParseOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "parse <term>...",
		Short: "Parse terms against a signature",
		Long: `Parse terms against a signature and print their canonical form.

Names declared in the signature are function symbols and constants; any
other bare name is a variable. All terms share one variable scope.

Example:
  trs parse --signature "f/2 i/1 e/0" "f(x, i(x))"
  trs parse --signature "f/2 e/0" --positions "f(e,f(x,e))"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Signature, "signature", "s", "", `declarations such as "f/2 i/1 e/0" (required)`)
	cmd.Flags().StringSliceVar(&opts.Precedence, "precedence", nil, "symbol precedence, heaviest first")
	cmd.Flags().BoolVar(&opts.Positions, "positions", false, "list every position and subterm")
	_ = cmd.MarkFlagRequired("signature")

	return cmd
}

func runParse(opts *ParseOptions, inputs []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	sig, err := opts.build()
	if err != nil {
		return failInput(formatter, err)
	}

	p := term.NewParser(sig)
	parsed := make([]ParsedTerm, 0, len(inputs))
	for _, in := range inputs {
		t, err := p.Parse(in)
		if err != nil {
			return failInput(formatter, err)
		}
		pt := ParsedTerm{
			Input:     in,
			Term:      t.String(),
			Size:      t.Size(),
			Variables: variableNames(t),
		}
		if opts.Positions {
			for _, loc := range t.Positions() {
				pt.Positions = append(pt.Positions, TermPosition{
					Position: loc.Pos.String(),
					Subterm:  loc.Term.String(),
				})
			}
		}
		parsed = append(parsed, pt)
	}

	return formatter.Emit(parsed, func(w io.Writer) {
		for _, pt := range parsed {
			fmt.Fprintln(w, pt.Term)
			fmt.Fprintf(w, "  size: %d\n", pt.Size)
			if len(pt.Variables) > 0 {
				fmt.Fprintf(w, "  variables: %s\n", strings.Join(pt.Variables, ", "))
			}
			for _, pos := range pt.Positions {
				fmt.Fprintf(w, "  %-4s %s\n", pos.Position, pos.Subterm)
			}
		}
	})
}
