package model

import (
	"errors"
	"fmt"

	"github.com/Veraticus/budgetui/internal/fieldparse"
)

// NoColumn marks an unmapped column slot.
const NoColumn = -1

// ErrInvalidMapping is returned for mappings that cannot be applied.
var ErrInvalidMapping = errors.New("invalid column mapping")

// ColumnMapping assigns table columns to transaction fields. Amounts come
// either from one signed Amount column or from a Debit/Credit pair.
type ColumnMapping struct {
	DateFormat          fieldparse.DateFormat
	Date                int
	Description         int
	Amount              int
	Debit               int
	Credit              int
	OriginalDescription int
	HasHeader           bool
	// KeepSign marks sources whose amounts already read negative for money
	// out regardless of account type, such as OFX statements.
	KeepSign bool
}

// SingleAmountMapping maps a signed amount column.
func SingleAmountMapping(date, description, amount int, format fieldparse.DateFormat) ColumnMapping {
	return ColumnMapping{
		Date:                date,
		Description:         description,
		Amount:              amount,
		Debit:               NoColumn,
		Credit:              NoColumn,
		OriginalDescription: NoColumn,
		DateFormat:          format,
	}
}

// SplitAmountMapping maps separate debit and credit columns.
func SplitAmountMapping(date, description, debit, credit int, format fieldparse.DateFormat) ColumnMapping {
	return ColumnMapping{
		Date:                date,
		Description:         description,
		Amount:              NoColumn,
		Debit:               debit,
		Credit:              credit,
		OriginalDescription: NoColumn,
		DateFormat:          format,
	}
}

// IsSplit reports whether amounts come from debit/credit columns.
func (m ColumnMapping) IsSplit() bool {
	return m.Amount == NoColumn
}

// Validate checks that every required slot is mapped.
func (m ColumnMapping) Validate() error {
	if m.Date < 0 {
		return fmt.Errorf("%w: date column not set", ErrInvalidMapping)
	}
	if m.Description < 0 {
		return fmt.Errorf("%w: description column not set", ErrInvalidMapping)
	}
	if m.IsSplit() {
		if m.Debit < 0 || m.Credit < 0 {
			return fmt.Errorf("%w: need an amount column or both debit and credit columns", ErrInvalidMapping)
		}
		if m.Debit == m.Credit {
			return fmt.Errorf("%w: debit and credit share column %d", ErrInvalidMapping, m.Debit)
		}
	} else if m.Debit >= 0 || m.Credit >= 0 {
		return fmt.Errorf("%w: amount column cannot be combined with debit/credit columns", ErrInvalidMapping)
	}
	return nil
}

// MaxColumn returns the highest column index the mapping reads.
func (m ColumnMapping) MaxColumn() int {
	highest := NoColumn
	for _, c := range []int{m.Date, m.Description, m.Amount, m.Debit, m.Credit, m.OriginalDescription} {
		if c > highest {
			highest = c
		}
	}
	return highest
}
