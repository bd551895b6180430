package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tako-San/sclit/internal/discover"
	"github.com/Tako-San/sclit/internal/report"
	"github.com/Tako-San/sclit/internal/runner"
	"github.com/Tako-San/sclit/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Site     string // site file override
	Filter   string // test filter (glob pattern)
	Database string // optional results database
	Workers  int    // parallel test execution
	Shell    string // command interpreter override
}

// RunData is the JSON payload of a completed run. The snapshot is
// canonical JSON from the report package, so identical suite states
// produce identical payloads.
type RunData struct {
	RunID    string          `json:"run_id,omitempty"`
	Snapshot json.RawMessage `json:"snapshot"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <tests-dir>",
		Short: "Discover and execute the test suite",
		Long: `Discover .sc test files under the tests directory and execute them.

The suite is configured from a site file (site.cue, site.yaml or
site.yml) found in the tests directory, or from --site. Placeholder
tokens in RUN lines are substituted from the site configuration.

Exit codes:
  0 - All tests passed
  1 - One or more tests failed
  2 - Command error (invalid paths, bad site file, etc.)

Examples:
  sclit run ./tests
  sclit run ./tests --filter "mux*"
  sclit run ./tests --site ci/site.cue -j 8
  sclit run ./tests --db runs.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuite(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Site, "site", "", "path to site configuration file")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter tests by glob pattern")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record results to SQLite database")
	cmd.Flags().IntVarP(&opts.Workers, "workers", "j", 1, "number of parallel test workers")
	cmd.Flags().StringVar(&opts.Shell, "shell", "", "command interpreter for RUN lines (default /bin/sh, or bash for pipefail suites)")

	return cmd
}

func runSuite(opts *RunOptions, testsDir string, cmd *cobra.Command) error {
	cfg, err := initSuite(testsDir, opts.Site)
	if err != nil {
		return err
	}
	opts.Logger.Debug().
		Str("suite", cfg.Name).
		Str("root", cfg.TestSourceRoot).
		Strs("features", cfg.Features()).
		Msg("suite initialized")

	tests, err := discover.Tests(cfg, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "test discovery failed", err)
	}
	if len(tests) == 0 {
		if opts.Format == "json" {
			return outputRunJSON(cmd, cfg.Name, "", runner.Summarize(nil))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No tests found.")
		return nil
	}
	opts.Logger.Debug().Int("tests", len(tests)).Msg("discovery complete")

	// Graceful shutdown on interrupt; in-flight shell commands are
	// killed through the context.
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case sig := <-sigChan:
			opts.Logger.Warn().Str("signal", sig.String()).Msg("interrupted, stopping tests")
			cancel()
		case <-ctx.Done():
		}
	}()

	r := runner.New(cfg, opts.Logger)
	r.Workers = opts.Workers
	r.Shell = opts.Shell

	startedAt := time.Now()
	summary := runner.Summarize(r.Run(ctx, tests))

	runID := ""
	if opts.Database != "" {
		runID, err = recordRun(ctx, opts.Database, cfg.Name, startedAt, summary)
		if err != nil {
			return WrapExitError(ExitCommandError, "recording run", err)
		}
		opts.Logger.Debug().Str("run_id", runID).Msg("run recorded")
	}

	if opts.Format == "json" {
		return outputRunJSON(cmd, cfg.Name, runID, summary)
	}
	return outputRunText(cmd, summary)
}

// recordRun persists the summary and returns the new run id.
func recordRun(ctx context.Context, dbPath, suiteName string, startedAt time.Time, summary runner.Summary) (string, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer st.Close()

	runID := store.NewRunID()
	if err := st.RecordRun(ctx, runID, suiteName, startedAt, summary); err != nil {
		return "", err
	}
	return runID, nil
}

// outputRunJSON outputs the run result as a canonical snapshot inside
// the response envelope.
func outputRunJSON(cmd *cobra.Command, suiteName, runID string, s runner.Summary) error {
	snap, err := report.Snapshot(suiteName, s)
	if err != nil {
		return WrapExitError(ExitCommandError, "building run snapshot", err)
	}

	response := CLIResponse{
		Status: "ok",
		Data:   RunData{RunID: runID, Snapshot: snap},
	}
	if !s.Ok() {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_TEST_FAILED",
			Message: fmt.Sprintf("%d test(s) failed", s.Failed),
		}
	}

	if err := writeJSON(cmd.OutOrStdout(), response); err != nil {
		return err
	}
	if !s.Ok() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d test(s) failed", s.Failed))
	}
	return nil
}

// outputRunText outputs the run result as text.
func outputRunText(cmd *cobra.Command, s runner.Summary) error {
	report.WriteText(cmd.OutOrStdout(), s)
	if !s.Ok() {
		return NewExitError(ExitFailure, fmt.Sprintf("%d test(s) failed", s.Failed))
	}
	return nil
}
