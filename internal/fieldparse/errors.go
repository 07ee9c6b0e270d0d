// Package fieldparse converts raw cell text from bank exports into typed values.
package fieldparse

import (
	"errors"
	"fmt"
)

// Parse failure causes.
var (
	ErrBlank     = errors.New("value is blank")
	ErrBadDate   = errors.New("unrecognized date")
	ErrBadAmount = errors.New("malformed amount")
)

// NoRow marks a FieldError that has not been attributed to a row yet.
const NoRow = -1

// FieldError describes a cell that could not be parsed.
type FieldError struct {
	Err   error
	Field string
	Value string
	Row   int
}

func (e *FieldError) Error() string {
	if e.Row == NoRow {
		return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("row %d: %s %q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// At returns a copy of the error attributed to the given row and field.
func (e *FieldError) At(row int, field string) *FieldError {
	out := *e
	out.Row = row
	if field != "" {
		out.Field = field
	}
	return &out
}

func newFieldError(field, value string, err error) *FieldError {
	return &FieldError{Field: field, Value: value, Err: err, Row: NoRow}
}
