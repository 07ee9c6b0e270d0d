// Package export writes committed transactions in the canonical CSV layout:
// Date, Description, Amount, Category, Account, Notes.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/Veraticus/budgetui/internal/model"
)

// Row is one exported transaction. Field order is the column order.
type Row struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Category    string `csv:"Category"`
	Account     string `csv:"Account"`
	Notes       string `csv:"Notes"`
}

// Rows converts transactions, resolving account and category names.
// Uncategorized transactions export an empty category.
func Rows(transactions []model.Transaction, accounts []model.Account, categories []model.Category) []Row {
	accountNames := make(map[int64]string, len(accounts))
	for _, a := range accounts {
		accountNames[a.ID] = a.Name
	}
	categoryNames := make(map[int64]string, len(categories))
	for _, c := range categories {
		categoryNames[c.ID] = c.Name
	}

	rows := make([]Row, 0, len(transactions))
	for _, txn := range transactions {
		row := Row{
			Date:        txn.Date.Format(model.DateLayout),
			Description: txn.Description,
			Amount:      txn.Amount.StringFixed(2),
			Account:     accountNames[txn.AccountID],
			Notes:       txn.Notes,
		}
		if txn.CategoryID != nil {
			row.Category = categoryNames[*txn.CategoryID]
		}
		rows = append(rows, row)
	}
	return rows
}

// Write writes a header and rows to w.
func Write(w io.Writer, rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csv.NewWriter(w))); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteFile writes rows to path, creating parent directories.
func WriteFile(path string, rows []Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	file, err := os.Create(filepath.Clean(path)) // #nosec G304 -- path comes from the user
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := Write(file, rows); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}

	slog.Info("Exported transactions", "file", path, "count", len(rows))
	return nil
}

// FileName returns the default export file name for a YYYY-MM month, or for
// everything when month is empty.
func FileName(month string) string {
	if month == "" {
		return "budgetui-export.csv"
	}
	return "budgetui-export-" + month + ".csv"
}
