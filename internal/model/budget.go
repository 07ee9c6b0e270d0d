package model

import "github.com/shopspring/decimal"

// MonthLayout is the YYYY-MM layout budgets are keyed by.
const MonthLayout = "2006-01"

// Budget caps spending in one category for one month. Category is filled in
// from the category table on reads.
type Budget struct {
	Limit      decimal.Decimal
	Month      string
	Category   string
	ID         int64
	CategoryID int64
}
