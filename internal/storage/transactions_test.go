package storage

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/budgetui/internal/model"
	"github.com/Veraticus/budgetui/internal/service"
)

func importedTxn(accountID int64, date, desc, amount, hash string) model.Transaction {
	d, _ := time.Parse(model.DateLayout, date)
	return model.Transaction{
		AccountID:   accountID,
		Date:        d,
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
		ImportHash:  hash,
	}
}

func TestCommitImport(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	account := createTestAccount(t, store, "Checking", model.AccountChecking)

	batch := []model.Transaction{
		importedTxn(account.ID, "2024-01-02", "COFFEE", "-4.50", "v1-a"),
		importedTxn(account.ID, "2024-01-03", "PAYROLL", "1500.00", "v1-b"),
	}
	run := &model.ImportRun{ID: "run-1", AccountID: account.ID, File: "jan.csv", Format: "Custom", Total: 2}

	inserted, err := store.CommitImport(ctx, run, batch)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	assert.Equal(t, 2, run.Inserted)
	assert.Equal(t, 0, run.Duplicates)

	hashes, err := store.ExistingHashes(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"v1-a": {}, "v1-b": {}}, hashes)

	t.Run("stored hashes are skipped", func(t *testing.T) {
		again := &model.ImportRun{ID: "run-2", AccountID: account.ID, File: "jan.csv", Format: "Custom", Total: 2}
		inserted, err := store.CommitImport(ctx, again, batch)
		require.NoError(t, err)
		assert.Zero(t, inserted)
		assert.Equal(t, 2, again.Duplicates)
	})

	t.Run("hashes are scoped to the account", func(t *testing.T) {
		savings := createTestAccount(t, store, "Savings", model.AccountSavings)
		other := []model.Transaction{importedTxn(savings.ID, "2024-01-02", "COFFEE", "-4.50", "v1-a")}
		inserted, err := store.CommitImport(ctx, nil, other)
		require.NoError(t, err)
		assert.Equal(t, 1, inserted)
	})

	t.Run("history", func(t *testing.T) {
		runs, err := store.GetImportRuns(ctx, 0)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		ids := []string{runs[0].ID, runs[1].ID}
		assert.ElementsMatch(t, []string{"run-1", "run-2"}, ids)

		limited, err := store.GetImportRuns(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})
}

func TestCommitImportIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	account := createTestAccount(t, store, "Checking", model.AccountChecking)

	batch := []model.Transaction{
		importedTxn(account.ID, "2024-01-02", "COFFEE", "-4.50", "v1-a"),
		importedTxn(9999, "2024-01-03", "ORPHAN", "-1.00", "v1-b"),
	}
	run := &model.ImportRun{ID: "run-1", AccountID: account.ID, File: "bad.csv", Format: "Custom", Total: 2}

	inserted, err := store.CommitImport(ctx, run, batch)
	require.Error(t, err)
	assert.Zero(t, inserted)

	txns, err := store.GetTransactions(ctx, service.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, txns)

	runs, err := store.GetImportRuns(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestCommitImportValidates(t *testing.T) {
	store := createTestStorage(t)
	account := createTestAccount(t, store, "Checking", model.AccountChecking)

	batch := []model.Transaction{importedTxn(account.ID, "2024-01-02", "COFFEE", "-4.50", "")}
	_, err := store.CommitImport(context.Background(), nil, batch)
	assert.ErrorIs(t, err, ErrInvalidTransaction)
}

func TestGetTransactionsFilters(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	checking := createTestAccount(t, store, "Checking", model.AccountChecking)
	card := createTestAccount(t, store, "Card", model.AccountCreditCard)
	groceries := mustCategory(t, store, "Groceries")

	categorized := importedTxn(checking.ID, "2024-02-10", "MARKET", "-20.00", "v1-c")
	categorized.CategoryID = &groceries.ID
	_, err := store.CommitImport(ctx, nil, []model.Transaction{
		importedTxn(checking.ID, "2024-01-31", "JAN", "-1.00", "v1-a"),
		importedTxn(checking.ID, "2024-02-01", "FEB", "-2.00", "v1-b"),
		categorized,
		importedTxn(card.ID, "2024-02-15", "CARD", "-3.00", "v1-d"),
	})
	require.NoError(t, err)

	feb, err := service.ParseMonth("2024-02")
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter service.TransactionFilter
		want   []string
	}{
		{name: "all, newest first", filter: service.TransactionFilter{}, want: []string{"CARD", "MARKET", "FEB", "JAN"}},
		{name: "month", filter: feb.Filter(service.TransactionFilter{}), want: []string{"CARD", "MARKET", "FEB"}},
		{name: "account", filter: service.TransactionFilter{AccountID: checking.ID}, want: []string{"MARKET", "FEB", "JAN"}},
		{name: "uncategorized", filter: service.TransactionFilter{AccountID: checking.ID, UncategorizedOnly: true}, want: []string{"FEB", "JAN"}},
		{name: "limit and offset", filter: service.TransactionFilter{Limit: 2, Offset: 1}, want: []string{"MARKET", "FEB"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txns, err := store.GetTransactions(ctx, tt.filter)
			require.NoError(t, err)
			got := make([]string, 0, len(txns))
			for _, txn := range txns {
				got = append(got, txn.Description)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenameAndRecategorize(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	account := createTestAccount(t, store, "Checking", model.AccountChecking)
	dining := mustCategory(t, store, "Restaurants")

	_, err := store.CommitImport(ctx, nil, []model.Transaction{
		importedTxn(account.ID, "2024-01-02", "SQ *BLUE BOTTLE", "-6.00", "v1-a"),
	})
	require.NoError(t, err)

	txns, err := store.GetTransactions(ctx, service.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, txns, 1)
	id := txns[0].ID

	require.NoError(t, store.RenameTransaction(ctx, id, "Blue Bottle Coffee"))
	require.NoError(t, store.UpdateTransactionCategory(ctx, id, &dining.ID))

	got, err := store.GetTransactionByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Blue Bottle Coffee", got.Description)
	assert.Equal(t, "v1-a", got.ImportHash)
	require.NotNil(t, got.CategoryID)
	assert.Equal(t, dining.ID, *got.CategoryID)

	require.NoError(t, store.UpdateTransactionCategory(ctx, id, nil))
	got, err = store.GetTransactionByID(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)

	assert.ErrorIs(t, store.RenameTransaction(ctx, 404, "x"), ErrNotFound)
	assert.ErrorIs(t, store.RenameTransaction(ctx, id, " "), ErrEmptyString)
	assert.ErrorIs(t, store.UpdateTransactionCategory(ctx, 404, nil), ErrNotFound)
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)
	account := createTestAccount(t, store, "Checking", model.AccountChecking)

	_, err := store.CommitImport(ctx, nil, []model.Transaction{
		importedTxn(account.ID, "2024-01-02", "COFFEE", "-4.50", "v1-a"),
		importedTxn(account.ID, "2024-01-03", "PAYROLL", "1500.00", "v1-b"),
	})
	require.NoError(t, err)

	txns, err := store.GetTransactions(ctx, service.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, txns, 2)

	require.NoError(t, store.DeleteTransaction(ctx, txns[1].ID))
	assert.ErrorIs(t, store.DeleteTransaction(ctx, txns[1].ID), ErrNotFound)

	hashes, err := store.ExistingHashes(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"v1-b": {}}, hashes)
}

func TestNetWorth(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	total, count, err := store.NetWorth(ctx)
	require.NoError(t, err)
	assert.True(t, total.IsZero())
	assert.Zero(t, count)

	checking := createTestAccount(t, store, "Checking", model.AccountChecking)
	card := createTestAccount(t, store, "Card", model.AccountCreditCard)
	_, err = store.CommitImport(ctx, nil, []model.Transaction{
		importedTxn(checking.ID, "2024-01-02", "PAYROLL", "1500.10", "v1-a"),
		importedTxn(checking.ID, "2024-01-05", "RENT", "-900.20", "v1-b"),
		importedTxn(card.ID, "2024-02-01", "BOOKS", "-0.10", "v1-c"),
	})
	require.NoError(t, err)

	total, count, err = store.NetWorth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "599.80", total.StringFixed(2))
	assert.Equal(t, 3, count)
}
