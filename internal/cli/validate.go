package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/trs/internal/compiler"
)

// ValidationIssue is one validation error of one problem.
type ValidationIssue struct {
	Problem string `json:"problem"`
	compiler.ValidationError
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid    bool              `json:"valid"`
	Problems []string          `json:"problems"`
	Errors   []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <problem-file-or-dir>",
		Short: "Validate problem files without running them",
		Long: `Validate CUE problem files without running completion.

Checks the CUE schema of every problem, then parses the signature,
precedence and identities and reports every error found.

Exit codes:
  0 - All problems valid
  1 - One or more problems are invalid
  2 - Command error (path not found, CUE syntax or schema error)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	loaded, err := LoadProblems(path)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			return formatter.Fail(ExitCommandError, loadErr.Code, loadErr.Error(), nil)
		}
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, err.Error(), nil)
	}
	formatter.VerboseLog("Found %d CUE file(s) in %s", loaded.FileCount, path)

	result := ValidationResult{Valid: true, Problems: []string{}}
	for i := range loaded.Problems {
		spec := &loaded.Problems[i]
		formatter.VerboseLog("Validating problem: %s", spec.Name)
		result.Problems = append(result.Problems, spec.Name)
		for _, verr := range compiler.Validate(spec) {
			result.Errors = append(result.Errors, ValidationIssue{Problem: spec.Name, ValidationError: verr})
		}
	}

	if len(result.Errors) == 0 {
		return formatter.Emit(result, func(w io.Writer) {
			fmt.Fprintf(w, "✓ All problems valid (%d)\n", len(result.Problems))
		})
	}

	result.Valid = false
	if formatter.JSON() {
		first := result.Errors[0]
		if err := formatter.encode(CLIResponse{
			Status: "error",
			Data:   result,
			Error:  &CLIError{Code: first.Code, Message: first.Message},
		}); err != nil {
			return err
		}
	} else {
		w := formatter.Writer
		fmt.Fprintln(w, "✗ Validation failed")
		fmt.Fprintln(w)
		for _, issue := range result.Errors {
			fmt.Fprintf(w, "problem %s\n", issue.Problem)
			fmt.Fprintf(w, "  %s: %s: %s\n\n", issue.Code, issue.Field, issue.Message)
		}
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(result.Errors)))
}
