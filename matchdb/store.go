package matchdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/crosswalklabs/crosswalk/internal/logging"
	"github.com/crosswalklabs/crosswalk/pkg/match"
)

// RunSummary is one stored match run.
type RunSummary struct {
	ID          string
	CreatedAt   time.Time
	LeftRows    int
	RightRows   int
	PairsScored int
	ChunkCount  int
	Duration    time.Duration
}

const insertRun = `
INSERT INTO match_runs (id, created_at, left_rows, right_rows, pairs_scored, chunk_count, duration_ms)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

// SaveResult stores the run summary and all of its match records in one
// transaction.
func (c *Client) SaveResult(ctx context.Context, res *match.Result) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			logging.SafeRollbackWithLogging(tx, c.logger, "save_match_result")
		}
	}()

	_, err = tx.ExecContext(ctx, insertRun,
		res.RunID,
		time.Now().Unix(),
		res.LeftRows,
		res.RightRows,
		res.PairsScored,
		res.Chunks,
		res.Elapsed.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert match run: %w", err)
	}

	if err := bulkInsertRecords(ctx, tx, res.RunID, res.Records, c.config.GetBulkInsertBatchSize()); err != nil {
		return fmt.Errorf("failed to insert match records: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit match result: %w", err)
	}
	committed = true

	if c.config.verbose {
		logging.LogOperation(c.logger, "match_result_saved",
			slog.String("run_id", res.RunID),
			slog.Int("records", len(res.Records)))
	}
	return nil
}

// bulkInsertRecords inserts records with multi-row INSERT statements of at
// most batchSize records each.
func bulkInsertRecords(ctx context.Context, tx *sql.Tx, runID string, records []match.MatchRecord, batchSize int) error {
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		placeholders := make([]string, len(batch))
		args := make([]any, 0, len(batch)*5)
		for i, rec := range batch {
			placeholders[i] = "(?, ?, ?, ?, ?)"
			args = append(args, runID, start+i, rec.LeftValue, rec.MatchedValue, rec.Distance)
		}

		query := "INSERT INTO match_records (run_id, position, left_value, matched_value, distance) VALUES " +
			strings.Join(placeholders, ", ")
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert batch starting at %d: %w", start, err)
		}
	}
	return nil
}

const recordsForRun = `
SELECT left_value, matched_value, distance
FROM match_records
WHERE run_id = ?
ORDER BY position
`

// RecordsForRun returns a run's match records in selection order.
func (c *Client) RecordsForRun(ctx context.Context, runID string) ([]match.MatchRecord, error) {
	rows, err := c.DB.QueryContext(ctx, recordsForRun, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query match records: %w", err)
	}
	defer logging.SafeCloseWithLogging(rows, c.logger, "database_rows")

	var items []match.MatchRecord
	for rows.Next() {
		var rec match.MatchRecord
		if err := rows.Scan(&rec.LeftValue, &rec.MatchedValue, &rec.Distance); err != nil {
			return nil, fmt.Errorf("failed to scan match record: %w", err)
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listRuns = `
SELECT id, created_at, left_rows, right_rows, pairs_scored, chunk_count, duration_ms
FROM match_runs
ORDER BY created_at DESC, rowid DESC
`

// ListRuns returns all stored runs, newest first.
func (c *Client) ListRuns(ctx context.Context) ([]RunSummary, error) {
	rows, err := c.DB.QueryContext(ctx, listRuns)
	if err != nil {
		return nil, fmt.Errorf("failed to query match runs: %w", err)
	}
	defer logging.SafeCloseWithLogging(rows, c.logger, "database_rows")

	var items []RunSummary
	for rows.Next() {
		var (
			run        RunSummary
			createdAt  int64
			durationMS int64
		)
		if err := rows.Scan(&run.ID, &createdAt, &run.LeftRows, &run.RightRows,
			&run.PairsScored, &run.ChunkCount, &durationMS); err != nil {
			return nil, fmt.Errorf("failed to scan match run: %w", err)
		}
		run.CreatedAt = time.Unix(createdAt, 0)
		run.Duration = time.Duration(durationMS) * time.Millisecond
		items = append(items, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
