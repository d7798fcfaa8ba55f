package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/steveyegge/graphmig/internal/types"
)

// RecordRun stores a run and its unparseables in one transaction.
// If run.ID is empty a new id is assigned.
func (s *SQLiteLedger) RecordRun(ctx context.Context, run *types.Run) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("invalid run: %w", err)
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	folders, err := json.Marshal(run.Folders)
	if err != nil {
		return fmt.Errorf("failed to marshal folders: %w", err)
	}
	metricNames, err := json.Marshal(run.MetricNames)
	if err != nil {
		return fmt.Errorf("failed to marshal metric names: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, folders, metric_names, translations, sanitized,
		                  units, metrics, translation_count, perfometers, graphs, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		string(folders),
		string(metricNames),
		run.Translations,
		run.Sanitized,
		run.Counts.Units,
		run.Counts.Metrics,
		run.Counts.Translations,
		run.Counts.Perfometers,
		run.Counts.Graphs,
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, u := range run.Unparseables {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO unparseables (run_id, namespace, name, kind, message)
			VALUES (?, ?, ?, ?, ?)
		`, run.ID, u.Namespace, u.Name, u.Kind, u.Message)
		if err != nil {
			return fmt.Errorf("failed to insert unparseable %s/%s: %w", u.Namespace, u.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	run.Counts.Unparseables = len(run.Unparseables)
	return nil
}

// ListRuns returns the most recent runs first. A limit <= 0 returns all runs.
func (s *SQLiteLedger) ListRuns(ctx context.Context, limit int) ([]*types.Run, error) {
	query := `
		SELECT r.id, r.started_at, r.folders, r.metric_names, r.translations, r.sanitized,
		       r.units, r.metrics, r.translation_count, r.perfometers, r.graphs, r.duration_ms,
		       (SELECT COUNT(*) FROM unparseables u WHERE u.run_id = r.id)
		FROM runs r
		ORDER BY r.started_at DESC, r.rowid DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*types.Run
	for rows.Next() {
		run := &types.Run{}
		var startedAt, folders, metricNames string
		var durationMS int64
		err := rows.Scan(
			&run.ID,
			&startedAt,
			&folders,
			&metricNames,
			&run.Translations,
			&run.Sanitized,
			&run.Counts.Units,
			&run.Counts.Metrics,
			&run.Counts.Translations,
			&run.Counts.Perfometers,
			&run.Counts.Graphs,
			&durationMS,
			&run.Counts.Unparseables,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("invalid started_at of run %s: %w", run.ID, err)
		}
		run.Duration = time.Duration(durationMS) * time.Millisecond
		if err := json.Unmarshal([]byte(folders), &run.Folders); err != nil {
			return nil, fmt.Errorf("invalid folders of run %s: %w", run.ID, err)
		}
		if err := json.Unmarshal([]byte(metricNames), &run.MetricNames); err != nil {
			return nil, fmt.Errorf("invalid metric names of run %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run rows: %w", err)
	}
	return runs, nil
}

// Unparseables returns the unparseables of a run in recording order.
func (s *SQLiteLedger) Unparseables(ctx context.Context, runID string) ([]types.Unparseable, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, runID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up run %s: %w", runID, err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT namespace, name, kind, message
		FROM unparseables
		WHERE run_id = ?
		ORDER BY id ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unparseables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var unparseables []types.Unparseable
	for rows.Next() {
		var u types.Unparseable
		if err := rows.Scan(&u.Namespace, &u.Name, &u.Kind, &u.Message); err != nil {
			return nil, fmt.Errorf("failed to scan unparseable: %w", err)
		}
		unparseables = append(unparseables, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unparseable rows: %w", err)
	}
	return unparseables, nil
}
