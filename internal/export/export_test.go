package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/budgetui/internal/model"
)

func sampleRows() []Row {
	groceries := int64(3)
	return Rows(
		[]model.Transaction{
			{
				Date:        time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
				Description: "Corner Market, Inc",
				Amount:      decimal.RequireFromString("-12.3"),
				AccountID:   1,
				CategoryID:  &groceries,
				Notes:       "weekly",
			},
			{
				Date:        time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
				Description: "PAYROLL",
				Amount:      decimal.RequireFromString("1500"),
				AccountID:   1,
			},
		},
		[]model.Account{{ID: 1, Name: "Checking"}},
		[]model.Category{{ID: 3, Name: "Groceries"}},
	)
}

func TestRows(t *testing.T) {
	rows := sampleRows()
	require.Len(t, rows, 2)
	assert.Equal(t, Row{
		Date:        "2024-03-05",
		Description: "Corner Market, Inc",
		Amount:      "-12.30",
		Category:    "Groceries",
		Account:     "Checking",
		Notes:       "weekly",
	}, rows[0])
	assert.Equal(t, "1500.00", rows[1].Amount)
	assert.Empty(t, rows[1].Category)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleRows()))

	want := "Date,Description,Amount,Category,Account,Notes\n" +
		"2024-03-05,\"Corner Market, Inc\",-12.30,Groceries,Checking,weekly\n" +
		"2024-03-06,PAYROLL,1500.00,,Checking,\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", FileName("2024-03"))
	require.NoError(t, WriteFile(path, sampleRows()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Date,Description,Amount,Category,Account,Notes\n")
	assert.Equal(t, "budgetui-export-2024-03.csv", filepath.Base(path))
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "budgetui-export.csv", FileName(""))
	assert.Equal(t, "budgetui-export-2024-01.csv", FileName("2024-01"))
}
