package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/budgetui/internal/model"
	"github.com/Veraticus/budgetui/internal/pattern"
)

// CreateImportRule validates and stores a rule, setting its ID. A zero
// Priority places the rule after every existing rule. A rule that names its
// category but carries no CategoryID is resolved by name.
func (s *SQLiteStorage) CreateImportRule(ctx context.Context, rule *model.ImportRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if rule == nil {
		return fmt.Errorf("%w: rule", ErrNilParameter)
	}
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return createImportRuleTx(ctx, tx, rule)
	})
}

// ReplaceImportRules deletes every rule and stores rules in their place,
// all or nothing.
func (s *SQLiteStorage) ReplaceImportRules(ctx context.Context, rules []model.ImportRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM import_rules`); err != nil {
			return fmt.Errorf("failed to clear import rules: %w", err)
		}
		for i := range rules {
			if err := createImportRuleTx(ctx, tx, &rules[i]); err != nil {
				return fmt.Errorf("rule %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("replaced import rules", "count", len(rules))
	return nil
}

// AppendImportRules stores rules after every existing rule, in slice order,
// all or nothing. Priorities carried by rules are ignored.
func (s *SQLiteStorage) AppendImportRules(ctx context.Context, rules []model.ImportRule) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		for i := range rules {
			rules[i].Priority = 0
			if err := createImportRuleTx(ctx, tx, &rules[i]); err != nil {
				return fmt.Errorf("rule %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("appended import rules", "count", len(rules))
	return nil
}

func createImportRuleTx(ctx context.Context, q queryable, rule *model.ImportRule) error {
	if rule.CategoryID == 0 && rule.Category != "" {
		var id int64
		err := q.QueryRowContext(ctx,
			`SELECT id FROM categories WHERE name = ? COLLATE NOCASE`, rule.Category).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: category %q", ErrNotFound, rule.Category)
		}
		if err != nil {
			return fmt.Errorf("failed to resolve category: %w", err)
		}
		rule.CategoryID = id
	}

	if err := pattern.ValidateRule(*rule); err != nil {
		return err
	}

	var categoryName string
	err := q.QueryRowContext(ctx,
		`SELECT name FROM categories WHERE id = ?`, rule.CategoryID).Scan(&categoryName)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: category %d", ErrNotFound, rule.CategoryID)
	}
	if err != nil {
		return fmt.Errorf("failed to verify category: %w", err)
	}
	rule.Category = categoryName

	if rule.Priority <= 0 {
		var maxPriority int
		err := q.QueryRowContext(ctx,
			`SELECT COALESCE(MAX(priority), 0) FROM import_rules`).Scan(&maxPriority)
		if err != nil {
			return fmt.Errorf("failed to get max priority: %w", err)
		}
		rule.Priority = maxPriority + 1
	} else if err := checkPriorityFree(ctx, q, rule.Priority, 0); err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, `
		INSERT INTO import_rules (pattern, kind, category_id, priority)
		VALUES (?, ?, ?, ?)`,
		rule.Pattern, string(rule.Kind), rule.CategoryID, rule.Priority,
	)
	if err != nil {
		return fmt.Errorf("failed to create import rule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get import rule ID: %w", err)
	}
	rule.ID = id

	slog.Debug("created import rule", "id", id, "pattern", rule.Pattern, "kind", rule.Kind, "priority", rule.Priority)
	return nil
}

// GetImportRules returns every rule in evaluation order.
func (s *SQLiteStorage) GetImportRules(ctx context.Context) ([]model.ImportRule, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT r.id, r.pattern, r.kind, r.category_id, c.name, r.priority
		FROM import_rules r
		JOIN categories c ON c.id = r.category_id
		ORDER BY r.priority ASC, r.id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get import rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rules []model.ImportRule
	for rows.Next() {
		var rule model.ImportRule
		var kind string
		if err := rows.Scan(&rule.ID, &rule.Pattern, &kind, &rule.CategoryID, &rule.Category, &rule.Priority); err != nil {
			return nil, fmt.Errorf("failed to scan import rule: %w", err)
		}
		rule.Kind = model.RuleKind(kind)
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating import rules: %w", err)
	}

	return rules, nil
}

// DeleteImportRule deletes a rule.
func (s *SQLiteStorage) DeleteImportRule(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM import_rules WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete import rule: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: import rule %d", ErrNotFound, id)
	}

	slog.Info("deleted import rule", "id", id)
	return nil
}

// MoveImportRule gives a rule a new priority that no other rule holds.
func (s *SQLiteStorage) MoveImportRule(ctx context.Context, id int64, priority int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if priority <= 0 {
		return fmt.Errorf("priority must be positive, got %d", priority)
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := checkPriorityFree(ctx, tx, priority, id); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `UPDATE import_rules SET priority = ? WHERE id = ?`, priority, id)
		if err != nil {
			return fmt.Errorf("failed to move import rule: %w", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return fmt.Errorf("%w: import rule %d", ErrNotFound, id)
		}
		return nil
	})
}

// checkPriorityFree fails when a rule other than self already holds priority.
func checkPriorityFree(ctx context.Context, q queryable, priority int, self int64) error {
	var holder int64
	err := q.QueryRowContext(ctx,
		`SELECT id FROM import_rules WHERE priority = ?`, priority).Scan(&holder)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check priority: %w", err)
	}
	if holder == self {
		return nil
	}
	return fmt.Errorf("%w: %d is held by rule %d", ErrPriorityTaken, priority, holder)
}
