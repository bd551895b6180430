// Package discover finds test cases under a suite's source root.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Tako-San/sclit/internal/suite"
)

// Test is one discovered test case.
type Test struct {
	// Name is the suite-relative path, slash-separated, used in
	// reports and stored results.
	Name string

	// Path is the absolute file path.
	Path string
}

// Tests walks cfg.TestSourceRoot and returns every file carrying a
// recognized suffix, sorted by name for deterministic run order.
//
// filter, when non-empty, is a glob pattern matched against the test
// file's base name without extension.
func Tests(cfg *suite.Config, filter string) ([]Test, error) {
	root := cfg.TestSourceRoot

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("test source root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test source root is not a directory: %s", root)
	}

	var tests []Test
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if !cfg.MatchesSuffix(info.Name()) {
			return nil
		}

		if filter != "" {
			base := info.Name()
			name := strings.TrimSuffix(base, filepath.Ext(base))
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		tests = append(tests, Test{
			Name: filepath.ToSlash(rel),
			Path: path,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(tests, func(i, j int) bool { return tests[i].Name < tests[j].Name })
	return tests, nil
}
