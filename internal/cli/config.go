package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tako-San/sclit/internal/suite"
)

// ConfigOptions holds flags for the config command.
type ConfigOptions struct {
	*RootOptions
	Site string
}

// ConfigData is the JSON payload of the config command.
type ConfigData struct {
	Name          string               `json:"name"`
	Format        suite.Format         `json:"format"`
	Suffixes      []string             `json:"suffixes"`
	Substitutions []suite.Substitution `json:"substitutions"`
	Root          string               `json:"test_source_root"`
	Features      []string             `json:"features"`
}

// NewConfigCommand creates the config command.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConfigOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "config <tests-dir>",
		Short: "Show the fully resolved suite configuration",
		Long: `Resolve the site file and print the suite configuration record:
name, execution format, recognized suffixes, the rendered substitution
sequence, the discovery root and the available feature tags.

Examples:
  sclit config ./tests
  sclit config ./tests --site ci/site.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Site, "site", "", "path to site configuration file")

	return cmd
}

func runConfig(opts *ConfigOptions, testsDir string, cmd *cobra.Command) error {
	cfg, err := initSuite(testsDir, opts.Site)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), CLIResponse{
			Status: "ok",
			Data: ConfigData{
				Name:          cfg.Name,
				Format:        cfg.Format,
				Suffixes:      cfg.Suffixes,
				Substitutions: cfg.Substitutions,
				Root:          cfg.TestSourceRoot,
				Features:      cfg.Features(),
			},
		})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "suite:    %s\n", cfg.Name)
	fmt.Fprintf(w, "format:   %s (pipefail=%t)\n", cfg.Format.Kind, cfg.Format.Pipefail)
	fmt.Fprintf(w, "suffixes: %v\n", cfg.Suffixes)
	fmt.Fprintf(w, "root:     %s\n", cfg.TestSourceRoot)
	fmt.Fprintf(w, "features: %v\n", cfg.Features())
	fmt.Fprintln(w, "substitutions:")
	for _, s := range cfg.Substitutions {
		fmt.Fprintf(w, "  %-18s -> %s\n", s.Pattern, s.Replacement)
	}
	return nil
}
