// Package table reads bank export files into raw rows of text cells.
package table

import (
	"fmt"
	"strings"

	"github.com/Veraticus/budgetui/internal/fieldparse"
)

// Table is a raw tabular export. When HasHeader is set, Rows[0] holds the
// column names and the remaining rows are data.
type Table struct {
	Source    string
	Rows      [][]string
	HasHeader bool
}

// New builds a table from rows, deciding whether the first row is a header.
func New(source string, rows [][]string) *Table {
	return &Table{
		Source:    source,
		Rows:      rows,
		HasHeader: len(rows) > 0 && LooksLikeHeader(rows[0]),
	}
}

// Header returns the header row, or nil for headerless tables.
func (t *Table) Header() []string {
	if !t.HasHeader || len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[0]
}

// DataRows returns the rows after the header.
func (t *Table) DataRows() [][]string {
	if t.HasHeader && len(t.Rows) > 0 {
		return t.Rows[1:]
	}
	return t.Rows
}

// DataOffset is the index in Rows of the first data row.
func (t *Table) DataOffset() int {
	if t.HasHeader {
		return 1
	}
	return 0
}

// Width is the widest row's column count.
func (t *Table) Width() int {
	width := 0
	for _, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// ColumnNames returns the header cells, or "Column N" names for a headerless table.
func (t *Table) ColumnNames() []string {
	if header := t.Header(); header != nil {
		return header
	}
	names := make([]string, t.Width())
	for i := range names {
		names[i] = fmt.Sprintf("Column %d", i+1)
	}
	return names
}

// Column returns the index of the header cell equal to name, ignoring case
// and surrounding whitespace, or -1.
func (t *Table) Column(name string) int {
	for i, cell := range t.Header() {
		if strings.EqualFold(strings.TrimSpace(cell), name) {
			return i
		}
	}
	return -1
}

// LooksLikeHeader reports whether no cell in row parses as an amount or date.
func LooksLikeHeader(row []string) bool {
	nonEmpty := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) == "" {
			continue
		}
		nonEmpty++
		if fieldparse.LooksLikeAmount(cell) || fieldparse.LooksLikeDate(cell) {
			return false
		}
	}
	return nonEmpty > 0
}
