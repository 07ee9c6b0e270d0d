package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO 8601 calendar date layout used for storage and export.
const DateLayout = "2006-01-02"

// Transaction is a committed (or about to be committed) ledger entry.
type Transaction struct {
	Date                time.Time
	CreatedAt           time.Time
	CategoryID          *int64
	Description         string
	OriginalDescription string // untruncated text as it appeared in the export
	Notes               string
	ImportHash          string
	Amount              decimal.Decimal // negative is money out
	ID                  int64
	AccountID           int64
	IsTransfer          bool
}

// Candidate is a parsed transaction that has not been committed yet.
type Candidate struct {
	Date                time.Time
	CategoryID          *int64
	Description         string
	OriginalDescription string
	Amount              decimal.Decimal
	AccountID           int64
	Row                 int // source row index, for diagnostics
}

// MatchText returns the text regex rules are evaluated against.
func (c Candidate) MatchText() string {
	if c.OriginalDescription != "" {
		return c.OriginalDescription
	}
	return c.Description
}

// ToTransaction converts a candidate into a transaction carrying the given hash.
func (c Candidate) ToTransaction(hash string) Transaction {
	return Transaction{
		Date:                c.Date,
		AccountID:           c.AccountID,
		Description:         c.Description,
		OriginalDescription: c.MatchText(),
		Amount:              c.Amount,
		CategoryID:          c.CategoryID,
		ImportHash:          hash,
	}
}
