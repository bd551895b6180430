package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Tako-San/sclit/internal/discover"
	"github.com/Tako-San/sclit/internal/suite"
)

// DefaultShell executes test commands. Tests are shell scripts by
// contract, so there is no fallback interpreter.
const DefaultShell = "/bin/sh"

// pipefailShell resolves an interpreter that accepts `set -o pipefail`.
// On Debian-family systems /bin/sh is dash, which rejects the option
// and would turn every command into an exit-2 failure, so bash is
// preferred whenever it is on PATH.
var pipefailShell = sync.OnceValue(func() string {
	if path, err := exec.LookPath("bash"); err == nil {
		return path
	}
	return DefaultShell
})

// Runner executes test scripts against one suite configuration.
//
// The Runner only reads the suite Config; the single write happened in
// suite.Initialize before any test ran.
type Runner struct {
	cfg    *suite.Config
	logger zerolog.Logger

	// Shell overrides the command interpreter. When empty the runner
	// picks DefaultShell, or a pipefail-capable shell for pipefail
	// suites. An explicit value is used verbatim.
	Shell string

	// Workers bounds parallel test execution. Values below 1 mean
	// serial execution.
	Workers int

	// TempDir hosts per-test %t scratch paths. Defaults to os.TempDir().
	TempDir string
}

// New creates a Runner for the given suite.
func New(cfg *suite.Config, logger zerolog.Logger) *Runner {
	return &Runner{
		cfg:    cfg,
		logger: logger,
		Shell:  DefaultShell,
	}
}

// Run executes all tests and returns results in input order.
func (r *Runner) Run(ctx context.Context, tests []discover.Test) []TestResult {
	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(tests) {
		workers = len(tests)
	}

	results := make([]TestResult, len(tests))
	if workers <= 1 {
		for i, tc := range tests {
			results[i] = r.RunTest(ctx, tc)
		}
		return results
	}

	// Fixed worker pool over an index channel. Results land in their
	// input slot, so output order is stable regardless of scheduling.
	indexes := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = r.RunTest(ctx, tests[i])
			}
		}()
	}
	for i := range tests {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results
}

// RunTest executes a single test and classifies its outcome.
func (r *Runner) RunTest(ctx context.Context, tc discover.Test) TestResult {
	start := time.Now()

	script, err := ParseScript(tc.Path, tc.Name)
	if err != nil {
		r.logger.Debug().Str("test", tc.Name).Err(err).Msg("script extraction failed")
		return TestResult{
			Name:     tc.Name,
			Outcome:  OutcomeError,
			Reason:   err.Error(),
			Duration: time.Since(start),
		}
	}

	if reason, gated := r.gated(script); gated {
		r.logger.Debug().Str("test", tc.Name).Str("reason", reason).Msg("test skipped")
		return TestResult{
			Name:     tc.Name,
			Outcome:  OutcomeSkipped,
			Reason:   reason,
			Duration: time.Since(start),
		}
	}

	expectFail, xfailReason := r.expectedFailure(script)

	failedCmd, output, failed := r.execute(ctx, tc, script)
	result := TestResult{
		Name:     tc.Name,
		Duration: time.Since(start),
	}

	switch {
	case failed && expectFail:
		result.Outcome = OutcomeXFail
		result.Reason = xfailReason
	case failed:
		result.Outcome = OutcomeFail
		result.Command = failedCmd
		result.Output = output
	case expectFail:
		result.Outcome = OutcomeXPass
		result.Reason = fmt.Sprintf("unexpectedly passed (%s)", xfailReason)
	default:
		result.Outcome = OutcomePass
	}

	r.logger.Debug().
		Str("test", tc.Name).
		Str("outcome", string(result.Outcome)).
		Dur("duration", result.Duration).
		Msg("test finished")
	return result
}

// gated evaluates REQUIRES and UNSUPPORTED against the suite features.
func (r *Runner) gated(script *Script) (string, bool) {
	for _, tag := range script.Requires {
		if !r.cfg.HasFeature(tag) {
			return fmt.Sprintf("missing required feature %q", tag), true
		}
	}
	for _, tag := range script.Unsupported {
		if r.cfg.HasFeature(tag) {
			return fmt.Sprintf("unsupported with feature %q", tag), true
		}
	}
	return "", false
}

// expectedFailure evaluates XFAIL against the suite features.
func (r *Runner) expectedFailure(script *Script) (bool, string) {
	for _, tag := range script.XFail {
		if tag == "*" {
			return true, "expected failure"
		}
		if r.cfg.HasFeature(tag) {
			return true, fmt.Sprintf("expected failure with feature %q", tag)
		}
	}
	return false, ""
}

// execute runs the script commands in order, stopping at the first
// failure. Returns the rendered failing command, its combined output,
// and whether the script failed.
func (r *Runner) execute(ctx context.Context, tc discover.Test, script *Script) (string, string, bool) {
	shell := r.Shell
	if shell == "" {
		shell = DefaultShell
		if r.cfg.Format.Pipefail {
			shell = pipefailShell()
		}
	}

	for _, raw := range script.Commands {
		rendered := r.render(raw, tc)

		full := rendered
		if r.cfg.Format.Pipefail {
			full = "set -o pipefail; " + rendered
		}

		cmd := exec.CommandContext(ctx, shell, "-c", full)
		cmd.Dir = filepath.Dir(tc.Path)

		out, err := cmd.CombinedOutput()
		if err != nil {
			r.logger.Debug().
				Str("test", tc.Name).
				Str("command", rendered).
				Err(err).
				Msg("command failed")
			return rendered, strings.TrimRight(string(out), "\n"), true
		}
	}
	return "", "", false
}

// render applies the suite substitution sequence, then the per-test
// defaults. %% is rendered last so literal percents cannot be picked
// up by earlier patterns.
func (r *Runner) render(line string, tc discover.Test) string {
	line = r.cfg.Expand(line)
	line = strings.ReplaceAll(line, "%s", tc.Path)
	line = strings.ReplaceAll(line, "%S", filepath.Dir(tc.Path))
	line = strings.ReplaceAll(line, "%t", r.tempPath(tc))
	line = strings.ReplaceAll(line, "%%", "%")
	return line
}

// tempPath returns the %t scratch path for a test. Derived from the
// suite-relative name so parallel tests never collide.
func (r *Runner) tempPath(tc discover.Test) string {
	dir := r.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	name := strings.ReplaceAll(tc.Name, "/", "_")
	return filepath.Join(dir, name+".tmp")
}
