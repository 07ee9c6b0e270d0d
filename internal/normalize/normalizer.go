// Package normalize turns raw table rows into transaction candidates.
package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/budgetui/internal/fieldparse"
	"github.com/Veraticus/budgetui/internal/model"
	"github.com/Veraticus/budgetui/internal/table"
	"github.com/shopspring/decimal"
)

// Row shape failures.
var (
	ErrColumnMissing = errors.New("row is missing a mapped column")
	ErrNoAmount      = errors.New("debit and credit are both empty")
	ErrBothAmounts   = errors.New("debit and credit are both populated")
)

// RowError is a per-row failure. Row is the 1-based row number in the source
// table, counting the header.
type RowError struct {
	Err error
	Row int
}

func (e *RowError) Error() string {
	var fe *fieldparse.FieldError
	if errors.As(e.Err, &fe) && fe.Row != fieldparse.NoRow {
		return fe.Error()
	}
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Normalizer applies one mapping to the rows of one table for one account.
type Normalizer struct {
	columns []string
	account model.Account
	mapping model.ColumnMapping
}

// New creates a Normalizer. columns names the table columns for error messages.
func New(mapping model.ColumnMapping, account model.Account, columns []string) (*Normalizer, error) {
	if err := mapping.Validate(); err != nil {
		return nil, err
	}
	return &Normalizer{mapping: mapping, account: account, columns: columns}, nil
}

// Table normalizes every data row. Rows that fail are returned as *RowError
// values and do not stop the remaining rows.
func (n *Normalizer) Table(t *table.Table) ([]model.Candidate, []error) {
	start := 0
	if n.mapping.HasHeader {
		start = 1
	}

	var candidates []model.Candidate
	var rowErrs []error
	for i := start; i < len(t.Rows); i++ {
		candidate, err := n.Row(i+1, t.Rows[i])
		if err != nil {
			rowErrs = append(rowErrs, err)
			continue
		}
		candidates = append(candidates, candidate)
	}
	return candidates, rowErrs
}

// Row normalizes a single row. rowNum is reported in errors.
func (n *Normalizer) Row(rowNum int, row []string) (model.Candidate, error) {
	m := n.mapping

	dateCell, ok := cell(row, m.Date)
	if !ok {
		return model.Candidate{}, n.missing(rowNum, m.Date)
	}
	date, err := fieldparse.ParseDate(dateCell, m.DateFormat)
	if err != nil {
		return model.Candidate{}, n.fieldError(rowNum, m.Date, err)
	}

	rawDesc, ok := cell(row, m.Description)
	if !ok {
		return model.Candidate{}, n.missing(rowNum, m.Description)
	}
	description := strings.Join(strings.Fields(rawDesc), " ")
	if description == "" {
		return model.Candidate{}, &RowError{
			Row: rowNum,
			Err: &fieldparse.FieldError{Field: n.columnName(m.Description), Value: rawDesc, Err: fieldparse.ErrBlank, Row: rowNum},
		}
	}

	amount, err := n.amount(rowNum, row)
	if err != nil {
		return model.Candidate{}, err
	}

	original := strings.TrimSpace(rawDesc)
	if text, ok := cell(row, m.OriginalDescription); ok && strings.TrimSpace(text) != "" {
		original = strings.TrimSpace(text)
	}

	return model.Candidate{
		Date:                date,
		Description:         description,
		OriginalDescription: original,
		Amount:              amount,
		AccountID:           n.account.ID,
		Row:                 rowNum,
	}, nil
}

// amount resolves the signed amount. Debits are negative and credits positive.
// Single-column amounts on liability accounts are negated so charges read
// as expenses.
func (n *Normalizer) amount(rowNum int, row []string) (decimal.Decimal, error) {
	m := n.mapping

	if !m.IsSplit() {
		text, ok := cell(row, m.Amount)
		if !ok {
			return decimal.Zero, n.missing(rowNum, m.Amount)
		}
		amount, err := fieldparse.ParseAmount(text)
		if err != nil {
			return decimal.Zero, n.fieldError(rowNum, m.Amount, err)
		}
		if n.account.Type.IsLiability() && !m.KeepSign {
			amount = amount.Neg()
		}
		return amount, nil
	}

	debit, _ := cell(row, m.Debit)
	credit, _ := cell(row, m.Credit)
	debit, credit = strings.TrimSpace(debit), strings.TrimSpace(credit)

	switch {
	case debit == "" && credit == "":
		return decimal.Zero, &RowError{Row: rowNum, Err: ErrNoAmount}
	case debit != "" && credit != "":
		return decimal.Zero, &RowError{Row: rowNum, Err: ErrBothAmounts}
	case debit != "":
		amount, err := fieldparse.ParseAmount(debit)
		if err != nil {
			return decimal.Zero, n.fieldError(rowNum, m.Debit, err)
		}
		return amount.Abs().Neg(), nil
	default:
		amount, err := fieldparse.ParseAmount(credit)
		if err != nil {
			return decimal.Zero, n.fieldError(rowNum, m.Credit, err)
		}
		return amount.Abs(), nil
	}
}

func (n *Normalizer) missing(rowNum, col int) error {
	return &RowError{Row: rowNum, Err: fmt.Errorf("%w: %s", ErrColumnMissing, n.columnName(col))}
}

func (n *Normalizer) fieldError(rowNum, col int, err error) error {
	var fe *fieldparse.FieldError
	if errors.As(err, &fe) {
		err = fe.At(rowNum, n.columnName(col))
	}
	return &RowError{Row: rowNum, Err: err}
}

func (n *Normalizer) columnName(col int) string {
	if col >= 0 && col < len(n.columns) && n.columns[col] != "" {
		return n.columns[col]
	}
	return fmt.Sprintf("Column %d", col+1)
}

func cell(row []string, col int) (string, bool) {
	if col < 0 || col >= len(row) {
		return "", false
	}
	return row[col], true
}
