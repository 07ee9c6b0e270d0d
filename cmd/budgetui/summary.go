package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/budgetui/internal/cli"
	"github.com/Veraticus/budgetui/internal/common"
	"github.com/Veraticus/budgetui/internal/model"
	"github.com/Veraticus/budgetui/internal/report"
)

func summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "summary [YYYY-MM]",
		Aliases: []string{"s"},
		Short:   "Show a month's income, expenses and spending by category",
		Long: `Show income, expenses and net for a month (the current month by default),
spending by category against any budgets set for it, and the net worth across
every account.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month := time.Now().Format(model.MonthLayout)
			if len(args) == 1 {
				month = args[0]
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			summary, err := report.Build(ctx, store, month)
			if err != nil {
				return common.NewUserError("failed to build summary", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderSummary(summary))
			return nil
		},
	}
}
