package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/trs/internal/ir"
	"github.com/roach88/trs/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	At       int64
}

// HistoryResult holds the replayed steps of one session.
type HistoryResult struct {
	Session ir.SessionRecord `json:"session"`
	Steps   []ir.Step        `json:"steps"`
}

// HistoryState is the identity and rule sets of a session at one step.
type HistoryState struct {
	Session ir.SessionRecord `json:"session"`
	Step    ir.Step          `json:"step"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [session-id]",
		Short: "List or replay recorded completion runs",
		Long: `List the completion sessions recorded in a history database, or replay
one session step by step.

With --at the command prints the identities and rules as they were right
after the last step whose seq is at most the given value.

Exit codes:
  0 - Success
  2 - Command error (database or session not found)

Examples:
  trs history --db ./trs.db
  trs history --db ./trs.db 0192c3a4-...
  trs history --db ./trs.db 0192c3a4-... --at 12`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runHistoryList(opts, cmd)
			}
			return runHistoryReplay(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite history database (required)")
	cmd.Flags().Int64Var(&opts.At, "at", 0, "show the state after this step seq")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

// openHistory opens an existing database. store.Open would create a
// missing file, which is never what a reader wants.
func openHistory(path string) (*store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("%s: database not found: %s", ErrCodeNotFound, path))
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func runHistoryList(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	st, err := openHistory(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	sessions, err := st.ReadSessions(commandContext(cmd))
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabase, err.Error(), nil)
	}
	if sessions == nil {
		sessions = []ir.SessionRecord{}
	}

	return formatter.Emit(sessions, func(w io.Writer) {
		if len(sessions) == 0 {
			fmt.Fprintln(w, "No sessions found in database.")
			return
		}
		for _, s := range sessions {
			fmt.Fprintf(w, "%s  %-10s %5d steps  %s (%s)\n", s.ID, s.State, s.Steps, s.Problem, s.Signature)
		}
	})
}

func runHistoryReplay(opts *HistoryOptions, sessionID string, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	formatter := newFormatter(opts.RootOptions, cmd)
	st, err := openHistory(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	rec, err := st.ReadSession(ctx, sessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("session %s not found", sessionID), nil)
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabase, err.Error(), nil)
	}

	if opts.At > 0 {
		return historyStateAt(ctx, st, rec, opts.At, formatter)
	}

	result := HistoryResult{Session: rec, Steps: []ir.Step{}}
	err = st.Replay(ctx, sessionID, func(step ir.Step) error {
		formatter.VerboseLog("replayed step %d (%s)", step.Seq, step.Kind)
		result.Steps = append(result.Steps, step)
		return nil
	})
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabase, err.Error(), nil)
	}

	return formatter.Emit(result, func(w io.Writer) {
		fmt.Fprintf(w, "Session %s: %s, %s (%d steps)\n\n", rec.ID, rec.Problem, rec.State, rec.Steps)
		for _, step := range result.Steps {
			fmt.Fprintf(w, "[%d] %-14s %s\n", step.Seq, step.Kind, step.Text)
		}
	})
}

func historyStateAt(ctx context.Context, st *store.Store, rec ir.SessionRecord, seq int64, formatter *OutputFormatter) error {
	step, ok, err := st.StateAt(ctx, rec.ID, seq)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeDatabase, err.Error(), nil)
	}
	if !ok {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("session %s has no step at or before seq %d", rec.ID, seq), nil)
	}

	state := HistoryState{Session: rec, Step: step}
	return formatter.Emit(state, func(w io.Writer) {
		fmt.Fprintf(w, "After [%d] %s: %s\n", step.Seq, step.Kind, step.Text)
		fmt.Fprintf(w, "Identities (%d):\n", len(step.Identities))
		for _, id := range step.Identities {
			fmt.Fprintf(w, "  %s\n", id)
		}
		fmt.Fprintf(w, "Rules (%d):\n", len(step.Rules))
		for _, r := range step.Rules {
			fmt.Fprintf(w, "  %s\n", r)
		}
	})
}
