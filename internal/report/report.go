// Package report renders run results for humans and machines.
//
// Text output follows the per-test ✓/✗ line convention with a summary
// footer. Snapshot output is canonical JSON (sorted, NFC-normalized
// keys) so identical runs produce byte-identical snapshots suitable
// for golden-file comparison.
package report

import (
	"fmt"
	"io"

	"github.com/Tako-San/sclit/internal/runner"
)

// Snapshot builds the canonical JSON snapshot of a run.
//
// Durations are deliberately excluded: snapshots must be byte-stable
// across runs of the same suite state.
func Snapshot(suiteName string, s runner.Summary) ([]byte, error) {
	results := make([]any, len(s.Results))
	for i, r := range s.Results {
		entry := map[string]any{
			"name":    r.Name,
			"outcome": string(r.Outcome),
		}
		if r.Reason != "" {
			entry["reason"] = r.Reason
		}
		if r.Command != "" {
			entry["command"] = r.Command
		}
		results[i] = entry
	}

	return MarshalCanonical(map[string]any{
		"suite":   suiteName,
		"results": results,
		"passed":  s.Passed,
		"failed":  s.Failed,
		"skipped": s.Skipped,
		"total":   s.Total,
	})
}

// WriteText renders per-test lines and the summary footer.
func WriteText(w io.Writer, s runner.Summary) {
	for _, r := range s.Results {
		writeResultLine(w, r)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Suite Summary: %d passed, %d failed, %d skipped, %d total\n",
		s.Passed, s.Failed, s.Skipped, s.Total)
	if s.Ok() {
		fmt.Fprintln(w, "✓ All tests passed")
	}
}

func writeResultLine(w io.Writer, r runner.TestResult) {
	switch r.Outcome {
	case runner.OutcomePass:
		fmt.Fprintf(w, "✓ %s\n", r.Name)
	case runner.OutcomeXFail:
		fmt.Fprintf(w, "✓ %s (expected failure)\n", r.Name)
	case runner.OutcomeSkipped:
		fmt.Fprintf(w, "- %s (skipped: %s)\n", r.Name, r.Reason)
	default:
		fmt.Fprintf(w, "✗ %s [%s]\n", r.Name, r.Outcome)
		if r.Reason != "" {
			fmt.Fprintf(w, "  %s\n", r.Reason)
		}
		if r.Command != "" {
			fmt.Fprintf(w, "  command: %s\n", r.Command)
		}
		if r.Output != "" {
			fmt.Fprintf(w, "  output:\n")
			writeIndented(w, r.Output)
		}
	}
}

// writeIndented writes command output with a four-space indent.
func writeIndented(w io.Writer, output string) {
	start := 0
	for i := 0; i <= len(output); i++ {
		if i == len(output) || output[i] == '\n' {
			fmt.Fprintf(w, "    %s\n", output[start:i])
			start = i + 1
		}
	}
}
