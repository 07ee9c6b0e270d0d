package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/budgetui/internal/model"
	"github.com/Veraticus/budgetui/internal/service"
)

const transactionColumns = `id, account_id, date, description, original_description,
	amount, category_id, notes, is_transfer, import_hash, created_at`

// ExistingHashes returns the import hashes already stored for an account.
func (s *SQLiteStorage) ExistingHashes(ctx context.Context, accountID int64) (map[string]struct{}, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return existingHashesTx(ctx, s.db, accountID)
}

func existingHashesTx(ctx context.Context, q queryable, accountID int64) (map[string]struct{}, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT import_hash FROM transactions WHERE account_id = ?`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query import hashes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	hashes := make(map[string]struct{})
	for rows.Next() {
		var h string
		if err := rows.Scan(&h); err != nil {
			return nil, fmt.Errorf("failed to scan import hash: %w", err)
		}
		hashes[h] = struct{}{}
	}
	return hashes, rows.Err()
}

// CommitImport inserts a batch and records its import run in one database
// transaction. Rows whose hash is already stored for the account are skipped,
// so a batch racing another import of the same file cannot insert twice.
// It returns the number of rows inserted; on error nothing is committed.
func (s *SQLiteStorage) CommitImport(ctx context.Context, run *model.ImportRun, transactions []model.Transaction) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	for i := range transactions {
		if err := validateTransaction(&transactions[i]); err != nil {
			return 0, fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}

	inserted := 0
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT OR IGNORE INTO transactions (
				account_id, date, description, original_description,
				amount, category_id, notes, is_transfer, import_hash
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer func() { _ = stmt.Close() }()

		for _, txn := range transactions {
			result, err := stmt.ExecContext(ctx,
				txn.AccountID,
				txn.Date.Format(model.DateLayout),
				txn.Description,
				txn.OriginalDescription,
				txn.Amount.String(),
				nullableID(txn.CategoryID),
				txn.Notes,
				txn.IsTransfer,
				txn.ImportHash,
			)
			if err != nil {
				return fmt.Errorf("failed to insert transaction %s: %w", txn.ImportHash, err)
			}
			n, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to get rows affected: %w", err)
			}
			inserted += int(n)
		}

		if run == nil {
			return nil
		}
		run.Duplicates += len(transactions) - inserted
		run.Inserted = inserted
		return recordImportRunTx(ctx, tx, run)
	})
	if err != nil {
		return 0, err
	}

	slog.Debug("committed import batch", "staged", len(transactions), "inserted", inserted)
	return inserted, nil
}

// InsertTransaction stores a single transaction, typically entered by hand,
// and sets its ID. A hash already stored for the account is an error.
func (s *SQLiteStorage) InsertTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransaction(txn); err != nil {
		return err
	}

	now := time.Now()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (
			account_id, date, description, original_description,
			amount, category_id, notes, is_transfer, import_hash, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		txn.AccountID,
		txn.Date.Format(model.DateLayout),
		txn.Description,
		txn.OriginalDescription,
		txn.Amount.String(),
		nullableID(txn.CategoryID),
		txn.Notes,
		txn.IsTransfer,
		txn.ImportHash,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get transaction ID: %w", err)
	}
	txn.ID = id
	txn.CreatedAt = now
	return nil
}

// GetTransactions returns transactions matching filter, newest first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: end date %v is before start date %v", ErrInvalidDateRange, *filter.EndDate, *filter.StartDate)
	}

	var where []string
	var args []any
	if filter.AccountID > 0 {
		where = append(where, "account_id = ?")
		args = append(args, filter.AccountID)
	}
	if filter.StartDate != nil {
		where = append(where, "date >= ?")
		args = append(args, filter.StartDate.Format(model.DateLayout))
	}
	if filter.EndDate != nil {
		where = append(where, "date < ?")
		args = append(args, filter.EndDate.Format(model.DateLayout))
	}
	if filter.UncategorizedOnly {
		where = append(where, "category_id IS NULL")
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC, id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}
	return transactions, nil
}

// GetTransactionByID retrieves a single transaction.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id int64) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)
	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %d", ErrNotFound, id)
	}
	return txn, err
}

// UpdateTransactionCategory assigns a category, or clears it when categoryID is nil.
func (s *SQLiteStorage) UpdateTransactionCategory(ctx context.Context, id int64, categoryID *int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET category_id = ? WHERE id = ?`, nullableID(categoryID), id)
	if err != nil {
		return fmt.Errorf("failed to update transaction category: %w", err)
	}
	return requireAffected(result, "transaction", id)
}

// RenameTransaction changes the description. The import hash is left as it
// was computed at insert, so re-importing the source still finds the row.
func (s *SQLiteStorage) RenameTransaction(ctx context.Context, id int64, description string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(description, "description"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET description = ? WHERE id = ?`, strings.TrimSpace(description), id)
	if err != nil {
		return fmt.Errorf("failed to rename transaction: %w", err)
	}
	return requireAffected(result, "transaction", id)
}

// DeleteTransaction removes a transaction. Re-importing its source file
// inserts the row again, since its hash goes with it.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if err := requireAffected(result, "transaction", id); err != nil {
		return err
	}

	slog.Info("deleted transaction", "id", id)
	return nil
}

// NetWorth sums every stored amount across all accounts and reports how many
// transactions were summed. Amounts are added as decimals, not by SQLite.
func (s *SQLiteStorage) NetWorth(ctx context.Context) (decimal.Decimal, int, error) {
	if err := validateContext(ctx); err != nil {
		return decimal.Zero, 0, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT amount FROM transactions`)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("failed to query amounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	total := decimal.Zero
	count := 0
	for rows.Next() {
		var amount decimal.Decimal
		if err := rows.Scan(&amount); err != nil {
			return decimal.Zero, 0, fmt.Errorf("failed to scan amount: %w", err)
		}
		total = total.Add(amount)
		count++
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, 0, fmt.Errorf("error iterating amounts: %w", err)
	}
	return total, count, nil
}

func scanTransaction(row scanner) (*model.Transaction, error) {
	var txn model.Transaction
	var date string
	var category sql.NullInt64
	err := row.Scan(
		&txn.ID, &txn.AccountID, &date, &txn.Description, &txn.OriginalDescription,
		&txn.Amount, &category, &txn.Notes, &txn.IsTransfer, &txn.ImportHash, &txn.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction: %w", err)
	}

	txn.Date, err = time.Parse(model.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("transaction %d has invalid date %q: %w", txn.ID, date, err)
	}
	if category.Valid {
		id := category.Int64
		txn.CategoryID = &id
	}
	return &txn, nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

func requireAffected(result sql.Result, what string, id int64) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %d", ErrNotFound, what, id)
	}
	return nil
}
