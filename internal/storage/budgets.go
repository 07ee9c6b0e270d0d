package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/budgetui/internal/model"
)

// SetBudget stores the limit for a category and month, replacing any limit
// already set for that pair, and fills in the budget's ID and category. A
// budget that names its category but carries no CategoryID is resolved by name.
func (s *SQLiteStorage) SetBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudget(budget); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		id, name, err := resolveCategory(ctx, tx, budget.CategoryID, budget.Category)
		if err != nil {
			return err
		}
		budget.CategoryID, budget.Category = id, name

		_, err = tx.ExecContext(ctx, `
			INSERT INTO budgets (category_id, month, limit_amount)
			VALUES (?, ?, ?)
			ON CONFLICT(category_id, month) DO UPDATE SET limit_amount = excluded.limit_amount`,
			budget.CategoryID, budget.Month, budget.Limit.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to set budget: %w", err)
		}

		err = tx.QueryRowContext(ctx,
			`SELECT id FROM budgets WHERE category_id = ? AND month = ?`,
			budget.CategoryID, budget.Month).Scan(&budget.ID)
		if err != nil {
			return fmt.Errorf("failed to get budget ID: %w", err)
		}

		slog.Debug("set budget", "id", budget.ID, "category", budget.Category, "month", budget.Month, "limit", budget.Limit)
		return nil
	})
}

// GetBudgets returns the budgets for month, or every budget when month is
// empty, newest month first and then by category name.
func (s *SQLiteStorage) GetBudgets(ctx context.Context, month string) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT b.id, b.category_id, c.name, b.month, b.limit_amount
		FROM budgets b
		JOIN categories c ON c.id = b.category_id`
	var args []any
	if month != "" {
		if _, err := time.Parse(model.MonthLayout, month); err != nil {
			return nil, fmt.Errorf("%w: month %q, expected YYYY-MM", ErrInvalidBudget, month)
		}
		query += " WHERE b.month = ?"
		args = append(args, month)
	}
	query += " ORDER BY b.month DESC, c.name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get budgets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var budgets []model.Budget
	for rows.Next() {
		var b model.Budget
		if err := rows.Scan(&b.ID, &b.CategoryID, &b.Category, &b.Month, &b.Limit); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}
	return budgets, nil
}

// DeleteBudget deletes a budget.
func (s *SQLiteStorage) DeleteBudget(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if err := requireAffected(result, "budget", id); err != nil {
		return err
	}

	slog.Info("deleted budget", "id", id)
	return nil
}

func validateBudget(budget *model.Budget) error {
	if budget == nil {
		return fmt.Errorf("%w: budget", ErrNilParameter)
	}
	if _, err := time.Parse(model.MonthLayout, budget.Month); err != nil {
		return fmt.Errorf("%w: month %q, expected YYYY-MM", ErrInvalidBudget, budget.Month)
	}
	if !budget.Limit.IsPositive() {
		return fmt.Errorf("%w: limit must be positive, got %s", ErrInvalidBudget, budget.Limit)
	}
	if budget.CategoryID == 0 && budget.Category == "" {
		return fmt.Errorf("%w: missing category", ErrInvalidBudget)
	}
	return nil
}
