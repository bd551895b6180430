package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tako-San/sclit/internal/runner"
	"github.com/Tako-San/sclit/internal/store"
)

// ResultsOptions holds flags for the results command.
type ResultsOptions struct {
	*RootOptions
	Database string
	Run      string // specific run id; empty means list runs
	Limit    int
}

// ResultsData is the JSON payload of the results command.
type ResultsData struct {
	Runs    []store.Run         `json:"runs,omitempty"`
	Results []runner.TestResult `json:"results,omitempty"`
}

// NewResultsCommand creates the results command.
func NewResultsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResultsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "results",
		Short: "Query recorded runs",
		Long: `Query the run history recorded by "sclit run --db".

Without --run, lists recorded runs newest first. With --run, shows the
per-test results of that run.

Examples:
  sclit results --db runs.db
  sclit results --db runs.db --limit 5
  sclit results --db runs.db --run 0190b5e2-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResults(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Run, "run", "", "show results of a specific run id")
	cmd.Flags().IntVar(&opts.Limit, "limit", 10, "maximum number of runs to list")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runResults(opts *ResultsOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening database", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.Run != "" {
		return showRunResults(ctx, st, opts, cmd)
	}
	return listRuns(ctx, st, opts, cmd)
}

func listRuns(ctx context.Context, st *store.Store, opts *ResultsOptions, cmd *cobra.Command) error {
	runs, err := st.ListRuns(ctx, opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "listing runs", err)
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), CLIResponse{
			Status: "ok",
			Data:   ResultsData{Runs: runs},
		})
	}

	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(w, "%s  %s  %s  %d passed, %d failed, %d skipped, %d total\n",
			r.ID, r.Suite, r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Passed, r.Failed, r.Skipped, r.Total)
	}
	return nil
}

func showRunResults(ctx context.Context, st *store.Store, opts *ResultsOptions, cmd *cobra.Command) error {
	results, err := st.ReadResults(ctx, opts.Run)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading results", err)
	}
	if len(results) == 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("no results for run %s", opts.Run))
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), CLIResponse{
			Status: "ok",
			Data:   ResultsData{Results: results},
		})
	}

	w := cmd.OutOrStdout()
	for _, r := range results {
		fmt.Fprintf(w, "%-8s %s", r.Outcome, r.Name)
		if r.Reason != "" {
			fmt.Fprintf(w, " (%s)", r.Reason)
		}
		fmt.Fprintln(w)
	}
	return nil
}
