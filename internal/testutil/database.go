// Package testutil provides shared fixtures for budgetui tests.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/budgetui/internal/model"
	"github.com/Veraticus/budgetui/internal/storage"
)

// TestDB wraps a migrated in-memory database.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new in-memory test database. Migrations run
// automatically, which seeds the default categories, and the database is
// closed when the test ends.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	checking := db.MustCreateAccount("Checking", model.AccountChecking)
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{Storage: store, t: t}
}

// MustCreateAccount creates an account or fails the test.
func (db *TestDB) MustCreateAccount(name string, accountType model.AccountType) *model.Account {
	db.t.Helper()
	account := &model.Account{Name: name, Type: accountType}
	if err := db.Storage.CreateAccount(context.Background(), account); err != nil {
		db.t.Fatalf("failed to create account %q: %v", name, err)
	}
	return account
}

// MustGetCategory returns the category with the given name or fails the test.
func (db *TestDB) MustGetCategory(name string) *model.Category {
	db.t.Helper()
	cat, err := db.Storage.GetCategoryByName(context.Background(), name)
	if err != nil {
		db.t.Fatalf("category %q: %v", name, err)
	}
	return cat
}

// MustCreateRule stores a rule pointing at the named category or fails the test.
func (db *TestDB) MustCreateRule(patternText string, kind model.RuleKind, category string) *model.ImportRule {
	db.t.Helper()
	rule := &model.ImportRule{Pattern: patternText, Kind: kind, Category: category}
	if err := db.Storage.CreateImportRule(context.Background(), rule); err != nil {
		db.t.Fatalf("failed to create rule %q: %v", patternText, err)
	}
	return rule
}
