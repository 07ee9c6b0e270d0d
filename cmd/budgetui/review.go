package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/budgetui/internal/cli"
	"github.com/Veraticus/budgetui/internal/importer"
	"github.com/Veraticus/budgetui/internal/tui"
	"github.com/Veraticus/budgetui/internal/tui/themes"
)

func reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Categorize uncategorized transactions interactively",
		Long: `Step through transactions that have no category. The category your rules
suggest is pre-selected: press a to accept it, or pick another and press enter.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			accountName, _ := cmd.Flags().GetString("account")
			theme, _ := cmd.Flags().GetString("theme")

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
			rules, err := importer.New(store).Rules(ctx)
			if err != nil {
				return err
			}

			summary, err := tui.Run(ctx, store,
				tui.WithRules(rules),
				tui.WithFilter(filter),
				tui.WithTheme(themes.ByName(theme)),
			)
			out := cmd.OutOrStdout()
			if errors.Is(err, tui.ErrNothingToReview) {
				_, _ = fmt.Fprintln(out, cli.FormatSuccess("Nothing to review: every transaction has a category"))
				return nil
			}
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf(
				"Categorized %d of %d transactions, %d left", summary.Assigned, summary.Total, summary.Remaining())))
			return nil
		},
	}

	cmd.Flags().StringP("account", "a", "", "only this account")
	cmd.Flags().String("theme", "default", "color theme: default or plain")

	return cmd
}
