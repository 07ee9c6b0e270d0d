package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/budgetui/internal/cli"
	"github.com/Veraticus/budgetui/internal/common"
	"github.com/Veraticus/budgetui/internal/model"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
		Long:  `List and add the accounts transactions are imported into.`,
	}

	cmd.AddCommand(listAccountsCmd())
	cmd.AddCommand(addAccountCmd())

	return cmd
}

func listAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
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

			out := cmd.OutOrStdout()
			if len(accounts) == 0 {
				_, _ = fmt.Fprintln(out, cli.InfoStyle.Render("No accounts yet. Use 'budgetui accounts add' to create one."))
				return nil
			}
			_, _ = fmt.Fprintln(out, cli.RenderAccounts(accounts))
			return nil
		},
	}
}

func addAccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an account",
		Long: `Add an account. The type decides how exported amounts are signed:
Credit Card and Loan exports list charges as positive numbers, so their
single-column amounts are flipped on import.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typeName, _ := cmd.Flags().GetString("type")
			accountType, err := model.ParseAccountType(typeName)
			if err != nil {
				return common.NewUserError("invalid --type, expected one of: "+accountTypeNames(), err)
			}

			account := &model.Account{Name: args[0], Type: accountType}
			account.Institution, _ = cmd.Flags().GetString("institution")
			account.Currency, _ = cmd.Flags().GetString("currency")
			account.Notes, _ = cmd.Flags().GetString("notes")

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.CreateAccount(ctx, account); err != nil {
				return fmt.Errorf("failed to add account: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
				fmt.Sprintf("Added %s account %q (id %d)", account.Type, account.Name, account.ID)))
			return nil
		},
	}

	cmd.Flags().StringP("type", "t", string(model.AccountChecking), "account type: "+accountTypeNames())
	cmd.Flags().String("institution", "", "bank or card issuer")
	cmd.Flags().String("currency", "USD", "currency code")
	cmd.Flags().String("notes", "", "free-form notes")

	return cmd
}

func accountTypeNames() string {
	names := make([]string, len(model.AccountTypes))
	for i, t := range model.AccountTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
