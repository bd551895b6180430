package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Tako-San/sclit/internal/runner"
)

// NewRunID generates a time-sortable UUIDv7 run identifier.
//
// Panics if UUID generation fails (should never happen in practice).
func NewRunID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// RecordRun writes a completed run and all of its results in one
// transaction. Either the whole run is persisted or none of it.
func (s *Store) RecordRun(ctx context.Context, runID, suiteName string, startedAt time.Time, summary runner.Summary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, suite, started_at, passed, failed, skipped, total)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		runID,
		suiteName,
		startedAt.UTC().Format(time.RFC3339Nano),
		summary.Passed,
		summary.Failed,
		summary.Skipped,
		summary.Total,
	)
	if err != nil {
		return fmt.Errorf("record run: insert run: %w", err)
	}

	for _, r := range summary.Results {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO results (run_id, name, outcome, reason, command, output, duration_ns)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			runID,
			r.Name,
			string(r.Outcome),
			r.Reason,
			r.Command,
			r.Output,
			int64(r.Duration),
		)
		if err != nil {
			return fmt.Errorf("record run: insert result %q: %w", r.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record run: commit: %w", err)
	}
	return nil
}
