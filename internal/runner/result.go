package runner

import "time"

// Outcome classifies the result of one test execution.
type Outcome string

const (
	// OutcomePass means every command in the script succeeded.
	OutcomePass Outcome = "PASS"

	// OutcomeFail means a command exited non-zero.
	OutcomeFail Outcome = "FAIL"

	// OutcomeXFail means the test was expected to fail and did.
	OutcomeXFail Outcome = "XFAIL"

	// OutcomeXPass means the test was expected to fail but passed.
	// Counts as a failure.
	OutcomeXPass Outcome = "XPASS"

	// OutcomeSkipped means a REQUIRES or UNSUPPORTED directive gated
	// the test out for this suite's feature set.
	OutcomeSkipped Outcome = "SKIPPED"

	// OutcomeError means the test file itself was unusable, e.g. no
	// RUN directives or an unreadable file.
	OutcomeError Outcome = "ERROR"
)

// Failed reports whether the outcome counts against the run.
func (o Outcome) Failed() bool {
	switch o {
	case OutcomeFail, OutcomeXPass, OutcomeError:
		return true
	}
	return false
}

// TestResult is the outcome of executing a single test.
type TestResult struct {
	// Name is the suite-relative test name.
	Name string `json:"name"`

	Outcome Outcome `json:"outcome"`

	// Reason explains skips, xfails and errors.
	Reason string `json:"reason,omitempty"`

	// Command is the rendered command that failed, if any.
	Command string `json:"command,omitempty"`

	// Output is the combined stdout/stderr of the failing command.
	// Empty for passing tests.
	Output string `json:"output,omitempty"`

	Duration time.Duration `json:"duration_ns"`
}

// Summary aggregates the results of a run.
type Summary struct {
	Results []TestResult `json:"results"`
	Passed  int          `json:"passed"`
	Failed  int          `json:"failed"`
	Skipped int          `json:"skipped"`
	Total   int          `json:"total"`
}

// Summarize tallies results into a Summary, preserving order.
func Summarize(results []TestResult) Summary {
	s := Summary{Results: results, Total: len(results)}
	for _, r := range results {
		switch {
		case r.Outcome == OutcomeSkipped:
			s.Skipped++
		case r.Outcome.Failed():
			s.Failed++
		default:
			s.Passed++
		}
	}
	return s
}

// Ok reports whether the run as a whole succeeded.
func (s Summary) Ok() bool {
	return s.Failed == 0
}
