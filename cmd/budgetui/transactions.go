package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Veraticus/budgetui/internal/cli"
	"github.com/Veraticus/budgetui/internal/common"
	"github.com/Veraticus/budgetui/internal/dedupe"
	"github.com/Veraticus/budgetui/internal/fieldparse"
	"github.com/Veraticus/budgetui/internal/importer"
	"github.com/Veraticus/budgetui/internal/model"
	"github.com/Veraticus/budgetui/internal/service"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "List, add, edit and delete transactions",
	}

	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(addTransactionCmd())
	cmd.AddCommand(renameTransactionCmd())
	cmd.AddCommand(categorizeTransactionCmd())
	cmd.AddCommand(deleteTransactionCmd())

	return cmd
}

// accountFilter resolves an optional --account flag into a filter.
func accountFilter(ctx context.Context, store service.Storage, name string) (service.TransactionFilter, error) {
	var filter service.TransactionFilter
	if name == "" {
		return filter, nil
	}
	account, err := store.GetAccountByName(ctx, name)
	if err != nil {
		return filter, fmt.Errorf("failed to find account: %w", err)
	}
	filter.AccountID = account.ID
	return filter, nil
}

func listTransactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accountName, _ := cmd.Flags().GetString("account")
			month, _ := cmd.Flags().GetString("month")
			uncategorized, _ := cmd.Flags().GetBool("uncategorized")
			limit, _ := cmd.Flags().GetInt("limit")

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
			filter.UncategorizedOnly = uncategorized
			filter.Limit = limit

			txns, err := store.GetTransactions(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to get transactions: %w", err)
			}
			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(txns) == 0 {
				_, _ = fmt.Fprintln(out, cli.InfoStyle.Render("No transactions found."))
				return nil
			}
			_, _ = fmt.Fprintln(out, cli.RenderTransactions(txns, categories))
			return nil
		},
	}

	cmd.Flags().StringP("account", "a", "", "only this account")
	cmd.Flags().StringP("month", "m", "", "only this month (YYYY-MM)")
	cmd.Flags().BoolP("uncategorized", "u", false, "only transactions without a category")
	cmd.Flags().IntP("limit", "n", 50, "maximum rows to show (0 for all)")

	return cmd
}

func addTransactionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <date> <description> <amount>",
		Short: "Record a transaction by hand",
		Long: `Record a transaction by hand, such as a cash purchase. Use a negative
amount for money out. Hand-entered transactions never collide with imported
ones, so importing the same purchase later adds a second row.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			date, err := fieldparse.ParseDate(args[0], cfg.DateFormat())
			if err != nil {
				return common.NewUserError("invalid date", err)
			}
			amount, err := fieldparse.ParseAmount(args[2])
			if err != nil {
				return common.NewUserError("invalid amount", err)
			}
			description := strings.TrimSpace(args[1])
			if description == "" {
				return common.NewUserError("description is required", nil)
			}

			accountName, _ := cmd.Flags().GetString("account")
			if accountName == "" {
				accountName = cfg.Import.DefaultAccount
			}
			categoryName, _ := cmd.Flags().GetString("category")
			notes, _ := cmd.Flags().GetString("notes")

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			accounts, err := store.GetAccounts(ctx)
			if err != nil {
				return fmt.Errorf("failed to get accounts: %w", err)
			}
			account, err := importer.ResolveAccount(accounts, accountName)
			if err != nil {
				return common.NewUserError("pick an account with --account", err)
			}

			c := model.Candidate{
				Date:        date,
				Description: description,
				Amount:      amount,
				AccountID:   account.ID,
			}
			if categoryName != "" {
				category, err := store.GetCategoryByName(ctx, categoryName)
				if err != nil {
					return fmt.Errorf("failed to find category: %w", err)
				}
				c.CategoryID = &category.ID
			}

			txn := c.ToTransaction(dedupe.ManualHash(c, uuid.NewString()))
			txn.Notes = notes
			if err := store.InsertTransaction(ctx, &txn); err != nil {
				return fmt.Errorf("failed to add transaction: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Added transaction %d to %s: %s %s", txn.ID, account.Name, txn.Description, txn.Amount.StringFixed(2))))
			return nil
		},
	}

	cmd.Flags().StringP("account", "a", "", "account (default: import.default_account, or the only account)")
	cmd.Flags().StringP("category", "c", "", "category name")
	cmd.Flags().String("notes", "", "free-form notes")

	return cmd
}

func renameTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <description>",
		Short: "Change a transaction's description",
		Long: `Change a transaction's description. Re-importing the file it came from
still recognizes it as already imported.`,
		Args: cobra.ExactArgs(2),
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

			if err := store.RenameTransaction(ctx, id, args[1]); err != nil {
				return fmt.Errorf("failed to rename transaction: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Renamed transaction %d", id)))
			return nil
		},
	}
}

func deleteTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Long: `Delete a transaction. Re-importing the file it came from brings it back,
since the record of it having been imported is deleted with it.`,
		Args: cobra.ExactArgs(1),
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

			if err := store.DeleteTransaction(ctx, id); err != nil {
				return fmt.Errorf("failed to delete transaction: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted transaction %d", id)))
			return nil
		},
	}
}

func categorizeTransactionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categorize <id> [category]",
		Short: "Set or clear a transaction's category",
		Long: `Set a transaction's category. Without a category name the stored rules
pick one; with --clear the category is removed.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			clearCategory, _ := cmd.Flags().GetBool("clear")

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			out := cmd.OutOrStdout()
			if clearCategory {
				if err := store.UpdateTransactionCategory(ctx, id, nil); err != nil {
					return fmt.Errorf("failed to clear category: %w", err)
				}
				_, _ = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Cleared category of transaction %d", id)))
				return nil
			}

			var category *model.Category
			if len(args) == 2 {
				category, err = store.GetCategoryByName(ctx, args[1])
				if err != nil {
					return fmt.Errorf("failed to find category: %w", err)
				}
			} else {
				category, err = suggestCategory(ctx, store, id)
				if err != nil {
					return err
				}
				if category == nil {
					_, _ = fmt.Fprintln(out, cli.FormatWarning("No rule matches; name a category"))
					return nil
				}
			}

			if err := store.UpdateTransactionCategory(ctx, id, &category.ID); err != nil {
				return fmt.Errorf("failed to categorize transaction: %w", err)
			}
			_, _ = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Transaction %d → %s", id, category.Name)))
			return nil
		},
	}

	cmd.Flags().Bool("clear", false, "remove the category")

	return cmd
}

// suggestCategory returns the category the stored rules pick for a
// transaction, or nil when no rule matches.
func suggestCategory(ctx context.Context, store service.Storage, id int64) (*model.Category, error) {
	txn, err := store.GetTransactionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	rules, err := importer.New(store).Rules(ctx)
	if err != nil {
		return nil, err
	}
	c := model.Candidate{Description: txn.Description, OriginalDescription: txn.OriginalDescription}
	categoryID, ok := importer.CategorizeOne(c, rules)
	if !ok {
		return nil, nil
	}
	return store.GetCategoryByID(ctx, categoryID)
}
