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

const accountColumns = `id, name, account_type, institution, currency, notes, created_at`

// CreateAccount inserts an account and sets its ID.
func (s *SQLiteStorage) CreateAccount(ctx context.Context, account *model.Account) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateAccount(account); err != nil {
		return err
	}

	existing, err := s.GetAccountByName(ctx, account.Name)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if existing != nil {
		return fmt.Errorf("%w: account %q", ErrDuplicateName, account.Name)
	}

	if account.Currency == "" {
		account.Currency = "USD"
	}
	account.Name = strings.TrimSpace(account.Name)
	now := time.Now()

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (name, account_type, institution, currency, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		account.Name, string(account.Type), account.Institution, account.Currency, account.Notes, now,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get account ID: %w", err)
	}

	account.ID = id
	account.CreatedAt = now
	slog.Info("created account", "name", account.Name, "type", account.Type, "id", id)
	return nil
}

// GetAccounts returns all accounts ordered by name.
func (s *SQLiteStorage) GetAccounts(ctx context.Context) ([]model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating accounts: %w", err)
	}

	slog.Debug("retrieved accounts", "count", len(accounts))
	return accounts, nil
}

// GetAccountByName finds an account by name, ignoring case.
func (s *SQLiteStorage) GetAccountByName(ctx context.Context, name string) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE name = ? COLLATE NOCASE`,
		strings.TrimSpace(name))
	account, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: account %q", ErrNotFound, name)
	}
	return account, err
}

// GetAccountByID finds an account by ID.
func (s *SQLiteStorage) GetAccountByID(ctx context.Context, id int64) (*model.Account, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	account, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: account %d", ErrNotFound, id)
	}
	return account, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(row scanner) (*model.Account, error) {
	var account model.Account
	var accountType string
	err := row.Scan(&account.ID, &account.Name, &accountType, &account.Institution,
		&account.Currency, &account.Notes, &account.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan account: %w", err)
	}
	account.Type = model.AccountType(accountType)
	return &account, nil
}
