// Package report builds the monthly income, spending and budget summary.
package report

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/budgetui/internal/model"
	"github.com/Veraticus/budgetui/internal/service"
)

// UncategorizedName labels spending that has no category.
const UncategorizedName = "Uncategorized"

// Store is the storage a summary is built from.
type Store interface {
	GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error)
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetBudgets(ctx context.Context, month string) ([]model.Budget, error)
	NetWorth(ctx context.Context) (decimal.Decimal, int, error)
}

// CategorySpend is the money spent in one category during the month.
type CategorySpend struct {
	// Limit is set when the category has a budget for the month.
	Limit *decimal.Decimal
	Name  string
	Spent decimal.Decimal
}

// Remaining is the budget left, negative once overspent. It is zero when the
// category has no budget.
func (c CategorySpend) Remaining() decimal.Decimal {
	if c.Limit == nil {
		return decimal.Zero
	}
	return c.Limit.Sub(c.Spent)
}

// Over reports whether spending exceeded the budget.
func (c CategorySpend) Over() bool {
	return c.Limit != nil && c.Spent.GreaterThan(*c.Limit)
}

// Summary is one month of activity. Expenses and Spent values are positive.
type Summary struct {
	Income       decimal.Decimal
	Expenses     decimal.Decimal
	NetWorth     decimal.Decimal
	Month        string
	Spending     []CategorySpend
	Transactions int
}

// Net is income less expenses.
func (s Summary) Net() decimal.Decimal {
	return s.Income.Sub(s.Expenses)
}

// Build summarizes month (YYYY-MM) from the store. The net worth and
// transaction count cover every account and every month.
func Build(ctx context.Context, store Store, month string) (*Summary, error) {
	r, err := service.ParseMonth(month)
	if err != nil {
		return nil, err
	}

	txns, err := store.GetTransactions(ctx, r.Filter(service.TransactionFilter{}))
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	categories, err := store.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	budgets, err := store.GetBudgets(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	netWorth, count, err := store.NetWorth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute net worth: %w", err)
	}

	s := Summarize(month, txns, categories, budgets)
	s.NetWorth = netWorth
	s.Transactions = count
	return &s, nil
}

// Summarize totals the month's transactions. Positive amounts are income and
// negative amounts are expenses, grouped by category. Budgeted categories are
// listed even when nothing was spent in them. Spending is ordered largest
// first, then by name.
func Summarize(month string, txns []model.Transaction, categories []model.Category, budgets []model.Budget) Summary {
	s := Summary{Month: month}
	spent := make(map[string]decimal.Decimal)

	for _, t := range txns {
		if t.Amount.IsPositive() {
			s.Income = s.Income.Add(t.Amount)
			continue
		}
		if !t.Amount.IsNegative() {
			continue
		}
		amount := t.Amount.Neg()
		s.Expenses = s.Expenses.Add(amount)

		name := UncategorizedName
		if t.CategoryID != nil {
			if c := model.FindCategoryByID(categories, *t.CategoryID); c != nil {
				name = c.Name
			}
		}
		spent[name] = spent[name].Add(amount)
	}

	limits := make(map[string]decimal.Decimal, len(budgets))
	for _, b := range budgets {
		name := b.Category
		if c := model.FindCategoryByID(categories, b.CategoryID); c != nil {
			name = c.Name
		}
		limits[name] = b.Limit
		if _, ok := spent[name]; !ok {
			spent[name] = decimal.Zero
		}
	}

	for name, amount := range spent {
		cs := CategorySpend{Name: name, Spent: amount}
		if limit, ok := limits[name]; ok {
			cs.Limit = &limit
		}
		s.Spending = append(s.Spending, cs)
	}
	sort.Slice(s.Spending, func(i, j int) bool {
		a, b := s.Spending[i], s.Spending[j]
		if !a.Spent.Equal(b.Spent) {
			return a.Spent.GreaterThan(b.Spent)
		}
		return a.Name < b.Name
	})
	return s
}
