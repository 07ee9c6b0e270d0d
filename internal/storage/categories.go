package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Veraticus/budgetui/internal/model"
)

// GetCategories returns all categories ordered by name.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, parent_id, created_at
		FROM categories
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, *cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	slog.Debug("retrieved categories", "count", len(categories))
	return categories, nil
}

// GetCategoryByName returns a category by its name, ignoring case.
func (s *SQLiteStorage) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, parent_id, created_at
		FROM categories
		WHERE name = ? COLLATE NOCASE`

	cat, err := scanCategory(s.db.QueryRowContext(ctx, query, strings.TrimSpace(name)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: category %q", ErrNotFound, name)
	}
	return cat, err
}

// GetCategoryByID returns a category by its ID.
func (s *SQLiteStorage) GetCategoryByID(ctx context.Context, id int64) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, parent_id, created_at
		FROM categories
		WHERE id = ?`

	cat, err := scanCategory(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: category %d", ErrNotFound, id)
	}
	return cat, err
}

// CreateCategory creates a new category. Creating a name that already exists
// returns the existing category.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, name string, parentID *int64) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	existing, err := s.GetCategoryByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing category: %w", err)
	}

	var parent sql.NullInt64
	if parentID != nil {
		parent = sql.NullInt64{Int64: *parentID, Valid: true}
	}

	now := time.Now()
	name = strings.TrimSpace(name)
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (name, parent_id, created_at) VALUES (?, ?, ?)`,
		name, parent, now)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category ID: %w", err)
	}

	slog.Info("created new category", "name", name, "id", id)
	return &model.Category{
		ID:        id,
		Name:      name,
		ParentID:  parentID,
		CreatedAt: now,
	}, nil
}

func scanCategory(row scanner) (*model.Category, error) {
	var cat model.Category
	var parent sql.NullInt64
	err := row.Scan(&cat.ID, &cat.Name, &parent, &cat.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan category: %w", err)
	}
	if parent.Valid {
		id := parent.Int64
		cat.ParentID = &id
	}
	return &cat, nil
}

// resolveCategory looks a category up by id, or by name when id is zero, and
// returns both.
func resolveCategory(ctx context.Context, q queryable, id int64, name string) (int64, string, error) {
	var err error
	if id == 0 {
		err = q.QueryRowContext(ctx,
			`SELECT id, name FROM categories WHERE name = ? COLLATE NOCASE`, strings.TrimSpace(name)).Scan(&id, &name)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", fmt.Errorf("%w: category %q", ErrNotFound, name)
		}
	} else {
		err = q.QueryRowContext(ctx, `SELECT name FROM categories WHERE id = ?`, id).Scan(&name)
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", fmt.Errorf("%w: category %d", ErrNotFound, id)
		}
	}
	if err != nil {
		return 0, "", fmt.Errorf("failed to resolve category: %w", err)
	}
	return id, name, nil
}
