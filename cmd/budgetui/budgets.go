package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Veraticus/budgetui/internal/cli"
	"github.com/Veraticus/budgetui/internal/common"
	"github.com/Veraticus/budgetui/internal/model"
)

func budgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budgets",
		Short: "Set monthly spending limits per category",
	}

	cmd.AddCommand(listBudgetsCmd())
	cmd.AddCommand(setBudgetCmd())
	cmd.AddCommand(deleteBudgetCmd())

	return cmd
}

func listBudgetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List budgets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			month, _ := cmd.Flags().GetString("month")

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			budgets, err := store.GetBudgets(ctx, month)
			if err != nil {
				return fmt.Errorf("failed to get budgets: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(budgets) == 0 {
				_, _ = fmt.Fprintln(out, cli.InfoStyle.Render("No budgets yet. Set one with 'budgetui budgets set'."))
				return nil
			}
			_, _ = fmt.Fprintln(out, cli.RenderBudgets(budgets))
			return nil
		},
	}

	cmd.Flags().String("month", "", "only budgets for this month (YYYY-MM)")

	return cmd
}

func setBudgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <category> <limit>",
		Short: "Set the spending limit for a category and month",
		Long: `Set the spending limit for a category in a month, the current month by
default. Setting a limit again replaces it.

Examples:
  budgetui budgets set Groceries 400
  budgetui budgets set "Food & Dining" 250 --month 2024-03`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, _ := cmd.Flags().GetString("month")
			if month == "" {
				month = time.Now().Format(model.MonthLayout)
			}
			limit, err := decimal.NewFromString(args[1])
			if err != nil {
				return common.NewUserError(fmt.Sprintf("invalid limit %q", args[1]), err)
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			budget := &model.Budget{Category: args[0], Month: month, Limit: limit}
			if err := store.SetBudget(ctx, budget); err != nil {
				return fmt.Errorf("failed to set budget: %w", err)
			}
			common.LogInfo("Budget set", common.Fields{"category": budget.Category, "month": budget.Month, "limit": budget.Limit.String()})
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"%s budget for %s is %s", budget.Category, budget.Month, budget.Limit.StringFixed(2))))
			return nil
		},
	}

	cmd.Flags().String("month", "", "month the limit applies to (YYYY-MM, default current month)")

	return cmd
}

func deleteBudgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a budget",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteBudget(ctx, id); err != nil {
				return fmt.Errorf("failed to delete budget: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted budget %d", id)))
			return nil
		},
	}
}
