package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/budgetui/internal/model"
)

func recordImportRunTx(ctx context.Context, q queryable, run *model.ImportRun) error {
	if err := validateString(run.ID, "run ID"); err != nil {
		return err
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO import_runs (
			id, account_id, file, format, total, duplicates, categorized, inserted, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.AccountID, run.File, run.Format,
		run.Total, run.Duplicates, run.Categorized, run.Inserted, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record import run: %w", err)
	}
	return nil
}

// GetImportRuns returns the most recent import runs, newest first. A
// non-positive limit returns all of them.
func (s *SQLiteStorage) GetImportRuns(ctx context.Context, limit int) ([]model.ImportRun, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, file, format, total, duplicates, categorized, inserted, created_at
		FROM import_runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query import runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []model.ImportRun
	for rows.Next() {
		var run model.ImportRun
		if err := rows.Scan(&run.ID, &run.AccountID, &run.File, &run.Format,
			&run.Total, &run.Duplicates, &run.Categorized, &run.Inserted, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
