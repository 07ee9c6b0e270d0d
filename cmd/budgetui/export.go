package main

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Veraticus/budgetui/internal/cli"
	"github.com/Veraticus/budgetui/internal/common"
	"github.com/Veraticus/budgetui/internal/export"
	"github.com/Veraticus/budgetui/internal/service"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export transactions to CSV",
		Long: `Export transactions oldest first with the columns
Date, Description, Amount, Category, Account, Notes.

The file is written to export.directory unless --output names a path.
Use --output - to write to stdout.`,
		RunE: runExport,
	}

	cmd.Flags().StringP("month", "m", "", "only this month (YYYY-MM)")
	cmd.Flags().StringP("account", "a", "", "only this account")
	cmd.Flags().StringP("output", "o", "", "output file (default: <export.directory>/budgetui-export[-YYYY-MM].csv)")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	month, _ := cmd.Flags().GetString("month")
	accountName, _ := cmd.Flags().GetString("account")
	output, _ := cmd.Flags().GetString("output")

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	filter, err := accountFilter(ctx, store, accountName)
	if err != nil {
		return err
	}
	if month != "" {
		r, err := service.ParseMonth(month)
		if err != nil {
			return common.NewUserError("invalid --month", err)
		}
		filter = r.Filter(filter)
	}

	txns, err := store.GetTransactions(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to get transactions: %w", err)
	}
	slices.Reverse(txns)

	accounts, err := store.GetAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to get accounts: %w", err)
	}
	categories, err := store.GetCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to get categories: %w", err)
	}
	rows := export.Rows(txns, accounts, categories)

	if output == "-" {
		return export.Write(cmd.OutOrStdout(), rows)
	}
	if output == "" {
		output = filepath.Join(cfg.Export.Directory, export.FileName(month))
	}
	if err := export.WriteFile(output, rows); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to %s", len(rows), output)))
	return nil
}
