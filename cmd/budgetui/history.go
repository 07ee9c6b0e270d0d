package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/budgetui/internal/cli"
	"github.com/Veraticus/budgetui/internal/model"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent imports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			runs, err := store.GetImportRuns(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to get import history: %w", err)
			}
			accounts, err := store.GetAccounts(ctx)
			if err != nil {
				return fmt.Errorf("failed to get accounts: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				_, _ = fmt.Fprintln(out, cli.InfoStyle.Render("No imports yet."))
				return nil
			}
			_, _ = fmt.Fprintln(out, renderRuns(runs, accounts))
			return nil
		},
	}

	cmd.Flags().IntP("limit", "n", 20, "number of runs to show (0 for all)")

	return cmd
}

func renderRuns(runs []model.ImportRun, accounts []model.Account) string {
	names := make(map[int64]string, len(accounts))
	for _, a := range accounts {
		names[a.ID] = a.Name
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			names[r.AccountID],
			r.File,
			r.Format,
			strconv.Itoa(r.Total),
			strconv.Itoa(r.Duplicates),
			strconv.Itoa(r.Categorized),
			strconv.Itoa(r.Inserted),
			shortID(r.ID),
		})
	}
	return cli.RenderTable(
		[]string{"When", "Account", "File", "Format", "Parsed", "Dupes", "Categorized", "Inserted", "Run"},
		rows)
}

// shortID abbreviates a run UUID to its first block.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
