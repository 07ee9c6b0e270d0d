package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLooksLikeHeader(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		want bool
	}{
		{name: "named columns", row: []string{"Date", "Description", "Amount"}, want: true},
		{name: "date cell", row: []string{"01/15/2024", "Coffee", "-4.50"}, want: false},
		{name: "amount cell only", row: []string{"Balance", "100.00"}, want: false},
		{name: "iso date", row: []string{"2024-01-15", "Rent"}, want: false},
		{name: "empty cells ignored", row: []string{"Date", "", "Amount"}, want: true},
		{name: "all blank", row: []string{"", " "}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikeHeader(tt.row))
		})
	}
}

func TestTable_ColumnNames(t *testing.T) {
	headed := New("csv", [][]string{
		{"Date", "Description", "Amount"},
		{"01/02/2024", "Coffee", "-3.00"},
	})
	assert.True(t, headed.HasHeader)
	assert.Equal(t, []string{"Date", "Description", "Amount"}, headed.ColumnNames())
	assert.Len(t, headed.DataRows(), 1)
	assert.Equal(t, 1, headed.DataOffset())
	assert.Equal(t, 1, headed.Column(" description "))
	assert.Equal(t, -1, headed.Column("Memo"))

	headless := New("csv", [][]string{
		{"01/02/2024", "-3.00", "*", "", "COFFEE"},
		{"01/03/2024", "-9.00", "*", "", "LUNCH", "extra"},
	})
	assert.False(t, headless.HasHeader)
	assert.Nil(t, headless.Header())
	assert.Equal(t, 6, headless.Width())
	assert.Equal(t, "Column 6", headless.ColumnNames()[5])
	assert.Len(t, headless.DataRows(), 2)
	assert.Equal(t, -1, headless.Column("Column 1"))
}
