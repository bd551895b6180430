package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tako-San/sclit/internal/suite"
)

// FeaturesOptions holds flags for the features command.
type FeaturesOptions struct {
	*RootOptions
	Site string
}

// FeaturesData is the JSON payload of the features command.
type FeaturesData struct {
	ScalaVersion string   `json:"scala_version"`
	Features     []string `json:"features"`
}

// NewFeaturesCommand creates the features command.
func NewFeaturesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FeaturesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "features",
		Short: "Show the feature tags computed from the site config",
		Long: `Print the feature tags a test may query via REQUIRES, UNSUPPORTED
and XFAIL directives, as computed from the site configuration's
toolchain version.

Examples:
  sclit features --site ./tests/site.yaml
  sclit features --site ci/site.cue --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeatures(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Site, "site", "", "path to site configuration file (required)")
	_ = cmd.MarkFlagRequired("site")

	return cmd
}

func runFeatures(opts *FeaturesOptions, cmd *cobra.Command) error {
	params, err := suite.LoadSite(opts.Site)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading site config", err)
	}

	cfg := suite.Initialize(opts.Site, params)

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), CLIResponse{
			Status: "ok",
			Data: FeaturesData{
				ScalaVersion: params.ScalaVersion,
				Features:     cfg.Features(),
			},
		})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "scala version: %s\n", params.ScalaVersion)
	for _, tag := range cfg.Features() {
		fmt.Fprintln(w, tag)
	}
	return nil
}
