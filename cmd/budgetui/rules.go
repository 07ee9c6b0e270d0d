package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Veraticus/budgetui/internal/cli"
	"github.com/Veraticus/budgetui/internal/common"
	"github.com/Veraticus/budgetui/internal/importer"
	"github.com/Veraticus/budgetui/internal/model"
	"github.com/Veraticus/budgetui/internal/pattern"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage categorization rules",
		Long: `Rules assign a category to imported transactions whose description
matches a pattern. Rules are tried in priority order, lowest first, and the
first match wins.

A contains rule matches case-insensitively anywhere in the description.
A regex rule is matched case-sensitively against the original, untruncated
description the bank exported.`,
	}

	cmd.AddCommand(listRulesCmd())
	cmd.AddCommand(addRuleCmd())
	cmd.AddCommand(deleteRuleCmd())
	cmd.AddCommand(moveRuleCmd())
	cmd.AddCommand(testRuleCmd())
	cmd.AddCommand(importRulesCmd())
	cmd.AddCommand(exportRulesCmd())

	return cmd
}

func listRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rules in evaluation order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rules, err := store.GetImportRules(ctx)
			if err != nil {
				return fmt.Errorf("failed to get rules: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(rules) == 0 {
				_, _ = fmt.Fprintln(out, cli.InfoStyle.Render("No rules yet. Use 'budgetui rules add' to create one."))
				return nil
			}
			_, _ = fmt.Fprintln(out, cli.RenderRules(rules))
			return nil
		},
	}
}

func addRuleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <pattern>",
		Short: "Add a rule",
		Long: `Add a rule. Without --priority the rule is evaluated after every existing rule.

Examples:
  budgetui rules add "whole foods" --category Groceries
  budgetui rules add '^SQ \*BLUE BOTTLE' --kind regex --category "Coffee Shops" --priority 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kindName, _ := cmd.Flags().GetString("kind")
			kind, err := model.ParseRuleKind(kindName)
			if err != nil {
				return common.NewUserError("invalid --kind, expected contains or regex", err)
			}
			category, _ := cmd.Flags().GetString("category")
			priority, _ := cmd.Flags().GetInt("priority")

			rule := &model.ImportRule{
				Pattern:  args[0],
				Kind:     kind,
				Category: category,
				Priority: priority,
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.CreateImportRule(ctx, rule); err != nil {
				return fmt.Errorf("failed to add rule: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf(
				"Rule %d: %s %q → %s (priority %d)", rule.ID, rule.Kind, rule.Pattern, rule.Category, rule.Priority)))
			return nil
		},
	}

	cmd.Flags().StringP("category", "c", "", "category assigned by the rule")
	cmd.Flags().StringP("kind", "k", string(model.RuleContains), "pattern kind: contains or regex")
	cmd.Flags().IntP("priority", "p", 0, "evaluation order, lowest first (default: after all rules)")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func deleteRuleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a rule",
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

			if err := store.DeleteImportRule(ctx, id); err != nil {
				return fmt.Errorf("failed to delete rule: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted rule %d", id)))
			return nil
		},
	}
}

func moveRuleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <priority>",
		Short: "Give a rule a new, unused priority",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			priority, err := strconv.Atoi(args[1])
			if err != nil || priority <= 0 {
				return common.NewUserError(fmt.Sprintf("invalid priority %q, expected a positive number", args[1]), err)
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.MoveImportRule(ctx, id, priority); err != nil {
				return fmt.Errorf("failed to move rule: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Rule %d now has priority %d", id, priority)))
			return nil
		},
	}
}

func testRuleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test <description>",
		Short: "Show which rule would categorize a description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			original, _ := cmd.Flags().GetString("original")

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rules, err := importer.New(store).Rules(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rule, ok := rules.Match(args[0], original)
			if !ok {
				_, _ = fmt.Fprintln(out, cli.FormatWarning("No rule matches"))
				return nil
			}
			_, _ = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf(
				"%s: rule %d (%s %q, priority %d)", rule.Category, rule.ID, rule.Kind, rule.Pattern, rule.Priority)))
			return nil
		},
	}

	cmd.Flags().String("original", "", "original description regex rules are matched against (default: the description)")

	return cmd
}

func importRulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Load rules from a YAML rule file",
		Long: `Load rules from a YAML rule file written by 'budgetui rules export'.

By default the rules are appended after the existing ones in file order.
With --replace the file becomes the complete rule list, keeping its
priorities. Nothing changes if any rule is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			replace, _ := cmd.Flags().GetBool("replace")

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open rule file: %w", err)
			}
			defer func() { _ = f.Close() }()

			rules, err := pattern.ReadRuleFile(f)
			if err != nil {
				return common.NewUserError("invalid rule file", err)
			}

			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if replace {
				err = store.ReplaceImportRules(ctx, rules)
			} else {
				err = store.AppendImportRules(ctx, rules)
			}
			if err != nil {
				return fmt.Errorf("failed to import rules: %w", err)
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Imported %d rules", len(rules))))
			return nil
		},
	}

	cmd.Flags().Bool("replace", false, "replace every existing rule")

	return cmd
}

func exportRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file.yaml]",
		Short: "Write rules to a YAML rule file (default: stdout)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rules, err := store.GetImportRules(ctx)
			if err != nil {
				return fmt.Errorf("failed to get rules: %w", err)
			}

			var w io.Writer = cmd.OutOrStdout()
			if len(args) == 1 {
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("failed to create rule file: %w", err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}
			return pattern.WriteRuleFile(w, rules)
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.NewUserError(fmt.Sprintf("invalid id %q", s), err)
	}
	return id, nil
}
