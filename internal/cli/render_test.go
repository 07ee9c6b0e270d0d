package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/budgetui/internal/importer"
	"github.com/Veraticus/budgetui/internal/model"
	"github.com/Veraticus/budgetui/internal/report"
)

func TestRenderImportResult(t *testing.T) {
	result := &importer.Result{
		File:              "activity.csv",
		Format:            "American Express",
		Account:           model.Account{Name: "Amex", Type: model.AccountCreditCard},
		TotalParsed:       4,
		DuplicatesSkipped: 1,
		AutoCategorized:   2,
		Inserted:          3,
		SuggestedRules:    []string{"mystery vendor"},
		RowErrors: []error{
			errors.New("row 5: date: bad"),
		},
	}

	out := RenderImportResult(result)
	assert.Contains(t, out, "activity.csv")
	assert.Contains(t, out, "American Express")
	assert.Contains(t, out, "Amex (Credit Card)")
	assert.Contains(t, out, "Inserted")
	assert.Contains(t, out, "row 5: date: bad")
	assert.Contains(t, out, `budgetui rules add "mystery vendor"`)
	assert.NotContains(t, out, "dry run")

	result.DryRun = true
	out = RenderImportResult(result)
	assert.Contains(t, out, "dry run")
	assert.Contains(t, out, "Would insert")
}

func TestRenderImportResult_TruncatesRowErrors(t *testing.T) {
	result := &importer.Result{File: "big.csv"}
	for i := 0; i < 8; i++ {
		result.RowErrors = append(result.RowErrors, errors.New("bad row"))
	}
	assert.Contains(t, RenderImportResult(result), "... and 3 more")
}

func TestRenderRules(t *testing.T) {
	out := RenderRules([]model.ImportRule{
		{ID: 4, Priority: 1, Kind: model.RuleContains, Pattern: "amazon", Category: "Shopping"},
		{ID: 9, Priority: 2, Kind: model.RuleRegex, Pattern: `^SQ \*`, Category: "Coffee Shops"},
	})
	assert.Contains(t, out, "Priority")
	assert.Contains(t, out, "amazon")
	assert.Contains(t, out, `^SQ \*`)
	assert.Contains(t, out, "Coffee Shops")
}

func TestFormatAmount(t *testing.T) {
	assert.Contains(t, FormatAmount(decimal.RequireFromString("-4.5")), "-4.50")
	assert.Contains(t, FormatAmount(decimal.RequireFromString("12")), "12.00")
}

func TestNewImportProgress(t *testing.T) {
	var buf bytes.Buffer
	bar := NewImportProgress(&buf, 2)
	require.NoError(t, bar.Add(1))
	require.NoError(t, bar.Add(1))
	assert.True(t, bar.IsFinished())
}

func TestRenderSummary(t *testing.T) {
	limit := decimal.RequireFromString("90")
	s := &report.Summary{
		Month:        "2024-01",
		Income:       decimal.RequireFromString("2500"),
		Expenses:     decimal.RequireFromString("157.1"),
		NetWorth:     decimal.RequireFromString("10400.25"),
		Transactions: 42,
		Spending: []report.CategorySpend{
			{Name: "Groceries", Spent: decimal.RequireFromString("100"), Limit: &limit},
			{Name: "Restaurants", Spent: decimal.RequireFromString("57.1")},
		},
	}

	out := RenderSummary(s)
	assert.Contains(t, out, "2024-01")
	assert.Contains(t, out, "2500.00")
	assert.Contains(t, out, "157.10")
	assert.Contains(t, out, "2342.90")
	assert.Contains(t, out, "10400.25")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "Budget")
	assert.Contains(t, out, "-10.00")
	assert.Contains(t, out, "Restaurants")

	s.Spending[0].Limit = nil
	assert.NotContains(t, RenderSummary(s), "Budget")
}

func TestRenderBudgets(t *testing.T) {
	out := RenderBudgets([]model.Budget{
		{ID: 3, Month: "2024-01", Category: "Groceries", Limit: decimal.RequireFromString("400")},
	})
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "400.00")
	assert.Contains(t, out, "2024-01")
}

func TestFormatError(t *testing.T) {
	out := FormatError("activity.csv: no known layout")
	assert.Contains(t, out, ErrorIcon)
	assert.Contains(t, out, "activity.csv: no known layout")
}
