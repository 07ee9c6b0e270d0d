package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/budgetui/internal/model"
	"github.com/Veraticus/budgetui/internal/testutil"
)

func txn(date, amount string, categoryID *int64) model.Transaction {
	d, _ := time.Parse(model.DateLayout, date)
	return model.Transaction{Date: d, Description: "x", Amount: decimal.RequireFromString(amount), CategoryID: categoryID}
}

func id(v int64) *int64 {
	return &v
}

func TestSummarize(t *testing.T) {
	categories := []model.Category{
		{ID: 1, Name: "Groceries"},
		{ID: 2, Name: "Restaurants"},
		{ID: 3, Name: "Travel"},
		{ID: 4, Name: "Income"},
	}
	txns := []model.Transaction{
		txn("2024-01-02", "2500.00", id(4)),
		txn("2024-01-03", "-82.17", id(1)),
		txn("2024-01-04", "-17.83", id(1)),
		txn("2024-01-05", "-45.10", id(2)),
		txn("2024-01-06", "-12.00", nil),
		txn("2024-01-07", "0", nil),
	}
	budgets := []model.Budget{
		{CategoryID: 1, Category: "Groceries", Month: "2024-01", Limit: decimal.RequireFromString("90")},
		{CategoryID: 3, Category: "Travel", Month: "2024-01", Limit: decimal.RequireFromString("200")},
	}

	s := Summarize("2024-01", txns, categories, budgets)

	assert.Equal(t, "2024-01", s.Month)
	assert.Equal(t, "2500.00", s.Income.StringFixed(2))
	assert.Equal(t, "157.10", s.Expenses.StringFixed(2))
	assert.Equal(t, "2342.90", s.Net().StringFixed(2))

	var names []string
	for _, c := range s.Spending {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Groceries", "Restaurants", UncategorizedName, "Travel"}, names)

	groceries := s.Spending[0]
	assert.Equal(t, "100.00", groceries.Spent.StringFixed(2))
	require.NotNil(t, groceries.Limit)
	assert.True(t, groceries.Over())
	assert.Equal(t, "-10.00", groceries.Remaining().StringFixed(2))

	restaurants := s.Spending[1]
	assert.Nil(t, restaurants.Limit)
	assert.False(t, restaurants.Over())
	assert.True(t, restaurants.Remaining().IsZero())

	travel := s.Spending[3]
	assert.True(t, travel.Spent.IsZero())
	assert.False(t, travel.Over())
	assert.Equal(t, "200.00", travel.Remaining().StringFixed(2))
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize("2024-03", nil, nil, nil)
	assert.True(t, s.Income.IsZero())
	assert.True(t, s.Expenses.IsZero())
	assert.True(t, s.Net().IsZero())
	assert.Empty(t, s.Spending)
}

func TestBuild(t *testing.T) {
	ctx := context.Background()
	db := testutil.SetupTestDB(t)
	account := db.MustCreateAccount("Checking", model.AccountChecking)
	groceries := db.MustGetCategory("Groceries")

	batch := []model.Transaction{
		txn("2024-01-03", "-82.17", &groceries.ID),
		txn("2024-01-20", "1200.00", nil),
		txn("2024-02-01", "-40.00", &groceries.ID),
	}
	for i := range batch {
		batch[i].AccountID = account.ID
		batch[i].ImportHash = "v1-" + batch[i].Date.Format(model.DateLayout)
	}
	_, err := db.Storage.CommitImport(ctx, nil, batch)
	require.NoError(t, err)
	require.NoError(t, db.Storage.SetBudget(ctx, &model.Budget{
		Category: "Groceries", Month: "2024-01", Limit: decimal.RequireFromString("100"),
	}))

	s, err := Build(ctx, db.Storage, "2024-01")
	require.NoError(t, err)
	assert.Equal(t, "1200.00", s.Income.StringFixed(2))
	assert.Equal(t, "82.17", s.Expenses.StringFixed(2))
	assert.Equal(t, "1077.83", s.NetWorth.StringFixed(2))
	assert.Equal(t, 3, s.Transactions)
	require.Len(t, s.Spending, 1)
	assert.Equal(t, "Groceries", s.Spending[0].Name)
	assert.Equal(t, "17.83", s.Spending[0].Remaining().StringFixed(2))

	_, err = Build(ctx, db.Storage, "01/2024")
	assert.Error(t, err)
}
