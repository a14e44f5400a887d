package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tomastro/sortify/internal/model"
)

// SaveRun persists a run and its per-file results in one transaction.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run *model.Run) error {
	if run == nil {
		return fmt.Errorf("run must not be nil")
	}
	if run.ID == "" {
		return fmt.Errorf("run ID must not be empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, target_dir, model, dry_run, total_files, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.TargetDir, run.Model, run.DryRun, run.TotalFiles, run.StartedAt, run.FinishedAt); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, result := range run.Results {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO moves (run_id, filename, category, destination, status, fallback, error)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, result.Move.Entry.Name, string(result.Move.Category),
			result.Destination, string(result.Status), result.Move.Fallback, result.Error); err != nil {
			return fmt.Errorf("failed to insert move for %q: %w", result.Move.Entry.Name, err)
		}
	}

	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first, without their moves.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, target_dir, model, dry_run, total_files, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.Run
	for rows.Next() {
		var run model.Run
		if err := rows.Scan(&run.ID, &run.TargetDir, &run.Model, &run.DryRun,
			&run.TotalFiles, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// GetLatestRun returns the most recent run with its per-file results, or nil
// when no run has been recorded yet.
func (s *SQLiteStorage) GetLatestRun(ctx context.Context) (*model.Run, error) {
	var run model.Run
	err := s.db.QueryRowContext(ctx, `
		SELECT id, target_dir, model, dry_run, total_files, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC
		LIMIT 1`).Scan(&run.ID, &run.TargetDir, &run.Model, &run.DryRun,
		&run.TotalFiles, &run.StartedAt, &run.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT filename, category, destination, status, fallback, error
		FROM moves
		WHERE run_id = ?
		ORDER BY id`, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query moves: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var result model.MoveResult
		var category, status string
		var errMsg sql.NullString
		if err := rows.Scan(&result.Move.Entry.Name, &category, &result.Destination,
			&status, &result.Move.Fallback, &errMsg); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		result.Move.Category = model.Category(category)
		result.Status = model.MoveStatus(status)
		result.Error = errMsg.String
		run.Results = append(run.Results, result)
	}

	return &run, rows.Err()
}
