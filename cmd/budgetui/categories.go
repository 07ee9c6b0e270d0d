package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/budgetui/internal/cli"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage categories",
		Long:  `List and add the categories transactions are filed under.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			names := make(map[int64]string, len(categories))
			for _, c := range categories {
				names[c.ID] = c.Name
			}
			rows := make([][]string, 0, len(categories))
			for _, c := range categories {
				parent := ""
				if c.ParentID != nil {
					parent = names[*c.ParentID]
				}
				rows = append(rows, []string{strconv.FormatInt(c.ID, 10), c.Name, parent})
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderTable([]string{"ID", "Name", "Parent"}, rows))
			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var parentID *int64
			if parentName, _ := cmd.Flags().GetString("parent"); parentName != "" {
				parent, err := store.GetCategoryByName(ctx, parentName)
				if err != nil {
					return fmt.Errorf("failed to find parent category: %w", err)
				}
				parentID = &parent.ID
			}

			category, err := store.CreateCategory(ctx, args[0], parentID)
			if err != nil {
				return fmt.Errorf("failed to add category: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(
				fmt.Sprintf("Category %q ready (id %d)", category.Name, category.ID)))
			return nil
		},
	}

	cmd.Flags().String("parent", "", "parent category name")

	return cmd
}
