package store

import (
	"context"
	"fmt"
	"time"

	"github.com/Tako-San/sclit/internal/runner"
)

// Run is one recorded harness invocation.
type Run struct {
	ID        string    `json:"id"`
	Suite     string    `json:"suite"`
	StartedAt time.Time `json:"started_at"`
	Passed    int       `json:"passed"`
	Failed    int       `json:"failed"`
	Skipped   int       `json:"skipped"`
	Total     int       `json:"total"`
}

// ListRuns returns recorded runs, newest first, at most limit entries.
// A limit below 1 means no limit.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, suite, started_at, passed, failed, skipped, total
		FROM runs
		ORDER BY id DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		var startedAt string
		if err := rows.Scan(&r.ID, &r.Suite, &startedAt, &r.Passed, &r.Failed, &r.Skipped, &r.Total); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, fmt.Errorf("parse run %s started_at: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// ReadResults returns the per-test results of a run in test-name order.
// Returns an empty slice (not nil) when the run has no results.
func (s *Store) ReadResults(ctx context.Context, runID string) ([]runner.TestResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, outcome, reason, command, output, duration_ns
		FROM results
		WHERE run_id = ?
		ORDER BY name ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	results := []runner.TestResult{}
	for rows.Next() {
		var r runner.TestResult
		var outcome string
		var durationNS int64
		if err := rows.Scan(&r.Name, &outcome, &r.Reason, &r.Command, &r.Output, &durationNS); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.Outcome = runner.Outcome(outcome)
		r.Duration = time.Duration(durationNS)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}

	return results, nil
}
