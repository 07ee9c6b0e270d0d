package detect

import (
	"testing"

	"github.com/Veraticus/budgetui/internal/fieldparse"
	"github.com/Veraticus/budgetui/internal/model"
	"github.com/Veraticus/budgetui/internal/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headed(header, first []string) *table.Table {
	return table.New("csv", [][]string{header, first})
}

func TestDetector_Detect(t *testing.T) {
	tests := []struct {
		tbl       *table.Table
		name      string
		wantLabel string
		wantHint  model.AccountType
		check     func(t *testing.T, m model.ColumnMapping)
	}{
		{
			name:      "wells fargo headerless",
			tbl:       table.New("csv", [][]string{{"01/15/2024", "-4.50", "*", "123", "COFFEE SHOP"}}),
			wantLabel: "Wells Fargo",
			wantHint:  model.AccountChecking,
			check: func(t *testing.T, m model.ColumnMapping) {
				assert.Equal(t, 0, m.Date)
				assert.Equal(t, 4, m.Description)
				assert.Equal(t, 1, m.Amount)
				assert.False(t, m.HasHeader)
			},
		},
		{
			name:      "american express",
			tbl:       headed([]string{"Date", "Description", "Card Member", "Amount"}, []string{"01/15/2024", "Coffee Shop", "JOHN DOE", "4.50"}),
			wantLabel: "American Express",
			wantHint:  model.AccountCreditCard,
			check: func(t *testing.T, m model.ColumnMapping) {
				assert.Equal(t, 3, m.Amount)
				assert.False(t, m.KeepSign)
				assert.True(t, m.HasHeader)
			},
		},
		{
			name:      "bank of america credit card",
			tbl:       headed([]string{"Posted Date", "Reference Number", "Payee", "Address", "Amount"}, []string{"01/15/2024", "12345", "Coffee Shop", "123 Main St", "-4.50"}),
			wantLabel: "Bank of America Credit Card",
			wantHint:  model.AccountCreditCard,
			check: func(t *testing.T, m model.ColumnMapping) {
				assert.Equal(t, 0, m.Date)
				assert.Equal(t, 2, m.Description)
				assert.Equal(t, 4, m.Amount)
				assert.True(t, m.KeepSign)
			},
		},
		{
			name:      "bank of america checking",
			tbl:       headed([]string{"Date", "Description", "Amount", "Running Bal."}, []string{"01/15/2024", "Coffee Shop", "-4.50", "995.50"}),
			wantLabel: "Bank of America Checking",
			wantHint:  model.AccountChecking,
		},
		{
			name:      "usaa",
			tbl:       headed([]string{"Date", "Description", "Original Description", "Category", "Amount"}, []string{"01/15/2024", "Coffee", "COFFEE SHOP #123", "Food", "-4.50"}),
			wantLabel: "USAA",
			wantHint:  model.AccountChecking,
			check: func(t *testing.T, m model.ColumnMapping) {
				assert.Equal(t, 1, m.Description)
				assert.Equal(t, 2, m.OriginalDescription)
				assert.Equal(t, 4, m.Amount)
			},
		},
		{
			name:      "citi",
			tbl:       headed([]string{"Status", "Date", "Description", "Debit", "Credit"}, []string{"Cleared", "01/15/2024", "Coffee", "4.50", ""}),
			wantLabel: "Citi",
			wantHint:  model.AccountCreditCard,
			check: func(t *testing.T, m model.ColumnMapping) {
				assert.True(t, m.IsSplit())
				assert.Equal(t, 3, m.Debit)
				assert.Equal(t, 4, m.Credit)
			},
		},
		{
			name:      "capital one credit card",
			tbl:       headed([]string{"Transaction Date", "Posted Date", "Card No.", "Description", "Category", "Debit", "Credit"}, []string{"2024-01-15", "2024-01-16", "1234", "Coffee", "Food", "4.50", ""}),
			wantLabel: "Capital One Credit Card",
			wantHint:  model.AccountCreditCard,
			check: func(t *testing.T, m model.ColumnMapping) {
				assert.Equal(t, fieldparse.DateISO, m.DateFormat)
				assert.Equal(t, 5, m.Debit)
				assert.Equal(t, 6, m.Credit)
			},
		},
		{
			name:      "capital one checking",
			tbl:       headed([]string{"Account Number", "Transaction Date", "Transaction Amount", "Transaction Type", "Transaction Description", "Balance"}, []string{"1234", "01/15/2024", "-4.50", "Debit", "Coffee", "995.50"}),
			wantLabel: "Capital One Checking",
			wantHint:  model.AccountChecking,
			check: func(t *testing.T, m model.ColumnMapping) {
				assert.Equal(t, 1, m.Date)
				assert.Equal(t, 2, m.Amount)
				assert.Equal(t, 4, m.Description)
			},
		},
		{
			name:      "discover",
			tbl:       headed([]string{"Trans. Date", "Post Date", "Description", "Amount", "Category"}, []string{"01/15/2024", "01/16/2024", "Coffee", "-4.50", "Food"}),
			wantLabel: "Discover",
			wantHint:  model.AccountCreditCard,
		},
		{
			name:      "chase checking",
			tbl:       headed([]string{"Details", "Posting Date", "Description", "Amount", "Type", "Balance", "Check or Slip #"}, []string{"DEBIT", "01/15/2024", "Coffee", "-4.50", "ACH", "995.50", ""}),
			wantLabel: "Chase Checking",
			wantHint:  model.AccountChecking,
			check: func(t *testing.T, m model.ColumnMapping) {
				assert.Equal(t, 1, m.Date)
				assert.Equal(t, 3, m.Amount)
			},
		},
		{
			name:      "chase credit card",
			tbl:       headed([]string{"Transaction Date", "Post Date", "Description", "Category", "Type", "Amount", "Memo"}, []string{"01/15/2024", "01/16/2024", "Coffee", "Food", "Sale", "-4.50", ""}),
			wantLabel: "Chase Credit Card",
			wantHint:  model.AccountCreditCard,
			check: func(t *testing.T, m model.ColumnMapping) {
				assert.Equal(t, 5, m.Amount)
				assert.True(t, m.KeepSign)
			},
		},
		{
			name:      "ofx statement",
			tbl:       headed(table.OFXHeader, []string{"2024-01-15", "STARBUCKS", "POS STARBUCKS", "", "-4.5", "DEBIT", "1"}),
			wantLabel: "OFX/QFX Statement",
			check: func(t *testing.T, m model.ColumnMapping) {
				assert.Equal(t, 1, m.Description)
				assert.Equal(t, 2, m.OriginalDescription)
				assert.Equal(t, 4, m.Amount)
				assert.True(t, m.KeepSign)
			},
		},
		{
			name:      "generic debit and credit",
			tbl:       headed([]string{"Date", "Description", "Debit", "Credit", "Balance"}, []string{"01/15/2024", "Coffee", "4.50", "", "10.00"}),
			wantLabel: "Debit/Credit Columns",
			check: func(t *testing.T, m model.ColumnMapping) {
				assert.True(t, m.IsSplit())
				assert.Equal(t, 2, m.Debit)
			},
		},
	}

	d := NewDetector(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.tbl)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantLabel, got.Label)
			assert.Equal(t, tt.wantHint, got.Hint)
			assert.NotEmpty(t, got.Test)
			require.NoError(t, got.Mapping.Validate())
			if tt.check != nil {
				tt.check(t, got.Mapping)
			}
		})
	}
}

func TestDetector_WellsFargoIgnoresOtherCells(t *testing.T) {
	d := NewDetector(nil)
	tbl := &table.Table{Rows: [][]string{{"x", "y", "*", "z", "w"}}, HasHeader: false}

	got := d.Detect(tbl)
	require.NotNil(t, got)
	assert.Equal(t, "Wells Fargo", got.Label)

	sixColumns := &table.Table{Rows: [][]string{{"x", "y", "*", "z", "w", "v"}}}
	assert.Nil(t, d.Detect(sixColumns))

	withHeader := table.New("csv", [][]string{{"a", "b", "*", "c", "d"}, {"01/15/2024", "-1", "*", "", "x"}})
	assert.Nil(t, d.Detect(withHeader), "headed tables are never the headerless layout")
}

func TestDetector_NoMatch(t *testing.T) {
	d := NewDetector(nil)
	assert.Nil(t, d.Detect(headed([]string{"Foo", "Bar", "Baz"}, []string{"a", "b", "c"})))
	assert.Nil(t, d.Detect(&table.Table{}))
}

func TestDetector_Deterministic(t *testing.T) {
	d := NewDetector(nil)
	tbl := headed([]string{"Transaction Date", "Post Date", "Description", "Category", "Type", "Amount", "Memo"}, []string{"01/15/2024", "01/16/2024", "Coffee", "Food", "Sale", "-4.50", ""})

	first := d.Detect(tbl)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, d.Detect(tbl))
	}
}

func TestDetector_FirstMatchWins(t *testing.T) {
	d := NewDetector(nil)
	tbl := headed([]string{"Date", "Description", "Card Member", "Amount", "Running Bal."}, []string{"01/15/2024", "Coffee", "J", "4.50", "1.00"})

	got := d.Detect(tbl)
	require.NotNil(t, got)
	assert.Equal(t, "American Express", got.Label)
}

func TestDetector_SkipsMappingOutsideTable(t *testing.T) {
	d := NewDetector(nil)
	// "Card Member" without an Amount column cannot be mapped.
	tbl := headed([]string{"Date", "Description", "Card Member"}, []string{"01/15/2024", "Coffee", "J"})
	assert.Nil(t, d.Detect(tbl))
}

func TestDetector_CustomFormats(t *testing.T) {
	custom := Format{
		Label: "Custom Bank",
		Test:  `header "Booking Date"`,
		Match: func(s Signature) bool { return s.Has("booking date") },
		Mapping: func(s Signature) model.ColumnMapping {
			return model.SingleAmountMapping(s.Index("booking date"), s.Index("text"), s.Index("value"), fieldparse.DateDMY)
		},
	}
	d := NewDetector(nil, custom)
	assert.Equal(t, []string{"Custom Bank"}, d.Labels())

	got := d.Detect(headed([]string{"Booking Date", "Text", "Value"}, []string{"15/01/2024", "Coffee", "-4.50"}))
	require.NotNil(t, got)
	assert.Equal(t, fieldparse.DateDMY, got.Mapping.DateFormat)
}

func TestFormats_Order(t *testing.T) {
	labels := NewDetector(nil).Labels()
	require.Len(t, labels, 13)
	assert.Equal(t, "Wells Fargo", labels[0])
	assert.Equal(t, "Chase Credit Card", labels[10])
	assert.Equal(t, "Debit/Credit Columns", labels[12])
}
