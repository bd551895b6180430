package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tako-San/sclit/internal/discover"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Site   string
	Filter string
}

// ListData is the JSON payload of a discovery pass.
type ListData struct {
	Suite string   `json:"suite"`
	Root  string   `json:"root"`
	Tests []string `json:"tests"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list <tests-dir>",
		Short: "Discover tests without running them",
		Long: `List the test files the suite would execute, in run order.

Examples:
  sclit list ./tests
  sclit list ./tests --filter "adder*" --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Site, "site", "", "path to site configuration file")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter tests by glob pattern")

	return cmd
}

func runList(opts *ListOptions, testsDir string, cmd *cobra.Command) error {
	cfg, err := initSuite(testsDir, opts.Site)
	if err != nil {
		return err
	}

	tests, err := discover.Tests(cfg, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "test discovery failed", err)
	}

	names := make([]string, len(tests))
	for i, tc := range tests {
		names[i] = tc.Name
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), CLIResponse{
			Status: "ok",
			Data:   ListData{Suite: cfg.Name, Root: cfg.TestSourceRoot, Tests: names},
		})
	}

	w := cmd.OutOrStdout()
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	fmt.Fprintf(w, "%d test(s)\n", len(names))
	return nil
}
