package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Tako-San/sclit/internal/suite"
)

// siteFileNames are probed, in order, when no --site flag is given.
var siteFileNames = []string{"site.cue", "site.yaml", "site.yml"}

// initSuite loads the site file and builds the suite configuration.
//
// testsDir is the suite directory. With no sitePath the site file is
// probed inside testsDir and discovery roots at its location, keeping
// the suite relocatable regardless of the working directory. An
// explicit sitePath may live outside the suite; discovery then still
// roots at testsDir.
func initSuite(testsDir, sitePath string) (*suite.Config, error) {
	info, err := os.Stat(testsDir)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "tests directory not found", err)
	}
	if !info.IsDir() {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("not a directory: %s", testsDir))
	}

	absTests, err := filepath.Abs(testsDir)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "resolving tests directory", err)
	}

	artifact := sitePath
	if artifact == "" {
		artifact, err = findSiteFile(absTests)
		if err != nil {
			return nil, err
		}
	}

	params, err := suite.LoadSite(artifact)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "loading site config", err)
	}

	// The record roots discovery at the artifact's directory; an
	// out-of-tree --site is re-anchored at the tests directory.
	anchor := artifact
	if filepath.Dir(artifact) != absTests {
		anchor = filepath.Join(absTests, filepath.Base(artifact))
	}

	cfg := suite.Initialize(anchor, params)
	if err := cfg.Validate(); err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid suite configuration", err)
	}
	return cfg, nil
}

// findSiteFile probes the tests directory for a site file.
func findSiteFile(testsDir string) (string, error) {
	for _, name := range siteFileNames {
		path := filepath.Join(testsDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", NewExitError(ExitCommandError,
		fmt.Sprintf("no site file found in %s (want one of %v, or pass --site)", testsDir, siteFileNames))
}
