// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/budgetui/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
// Zero values leave a dimension unfiltered.
type TransactionFilter struct {
	StartDate         *time.Time // inclusive
	EndDate           *time.Time // exclusive
	AccountID         int64
	Limit             int
	Offset            int
	UncategorizedOnly bool
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Account operations
	CreateAccount(ctx context.Context, account *model.Account) error
	GetAccounts(ctx context.Context) ([]model.Account, error)
	GetAccountByName(ctx context.Context, name string) (*model.Account, error)
	GetAccountByID(ctx context.Context, id int64) (*model.Account, error)

	// Category operations
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*model.Category, error)
	CreateCategory(ctx context.Context, name string, parentID *int64) (*model.Category, error)

	// Import rule operations
	CreateImportRule(ctx context.Context, rule *model.ImportRule) error
	ReplaceImportRules(ctx context.Context, rules []model.ImportRule) error
	AppendImportRules(ctx context.Context, rules []model.ImportRule) error
	GetImportRules(ctx context.Context) ([]model.ImportRule, error)
	DeleteImportRule(ctx context.Context, id int64) error
	MoveImportRule(ctx context.Context, id int64, priority int) error

	// Transaction operations
	ExistingHashes(ctx context.Context, accountID int64) (map[string]struct{}, error)
	CommitImport(ctx context.Context, run *model.ImportRun, transactions []model.Transaction) (int, error)
	InsertTransaction(ctx context.Context, txn *model.Transaction) error
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	GetTransactionByID(ctx context.Context, id int64) (*model.Transaction, error)
	UpdateTransactionCategory(ctx context.Context, id int64, categoryID *int64) error
	RenameTransaction(ctx context.Context, id int64, description string) error
	DeleteTransaction(ctx context.Context, id int64) error
	NetWorth(ctx context.Context) (decimal.Decimal, int, error)

	// Budget operations
	SetBudget(ctx context.Context, budget *model.Budget) error
	GetBudgets(ctx context.Context, month string) ([]model.Budget, error)
	DeleteBudget(ctx context.Context, id int64) error

	// Import history
	GetImportRuns(ctx context.Context, limit int) ([]model.ImportRun, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// DateRange represents a time period with an inclusive start and exclusive end.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Filter narrows f to the range.
func (r DateRange) Filter(f TransactionFilter) TransactionFilter {
	start, end := r.Start, r.End
	f.StartDate = &start
	f.EndDate = &end
	return f
}

// ParseMonth parses a YYYY-MM month into the range covering it.
func ParseMonth(s string) (DateRange, error) {
	start, err := time.Parse(model.MonthLayout, s)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	return DateRange{Start: start, End: start.AddDate(0, 1, 0)}, nil
}
