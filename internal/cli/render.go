package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/budgetui/internal/importer"
	"github.com/Veraticus/budgetui/internal/model"
	"github.com/Veraticus/budgetui/internal/report"
)

// maxRowErrors caps the row errors listed under an import summary.
const maxRowErrors = 5

// FormatAmount renders an amount with two decimals, colored by sign.
func FormatAmount(d decimal.Decimal) string {
	text := d.StringFixed(2)
	if d.IsNegative() {
		return ExpenseStyle.Render(text)
	}
	return IncomeStyle.Render(text)
}

// RenderImportResult summarizes an import for the terminal.
func RenderImportResult(r *importer.Result) string {
	var b strings.Builder
	line := func(label string, value any) {
		fmt.Fprintf(&b, "%s %v\n", SubtleStyle.Render(fmt.Sprintf("%-18s", label+":")), value)
	}

	line("Format", r.Format)
	line("Account", fmt.Sprintf("%s (%s)", r.Account.Name, r.Account.Type))
	line("Parsed", r.TotalParsed)
	if r.Failed() > 0 {
		line("Failed rows", WarningStyle.Render(strconv.Itoa(r.Failed())))
	}
	line("Duplicates skipped", r.DuplicatesSkipped)
	line("Auto-categorized", r.AutoCategorized)
	if r.DryRun {
		line("Would insert", r.TotalParsed-r.DuplicatesSkipped)
	} else {
		line("Inserted", SuccessStyle.Render(strconv.Itoa(r.Inserted)))
	}

	for i, err := range r.RowErrors {
		if i == maxRowErrors {
			fmt.Fprintf(&b, "  %s\n", SubtleStyle.Render(fmt.Sprintf("... and %d more", len(r.RowErrors)-maxRowErrors)))
			break
		}
		fmt.Fprintf(&b, "  %s\n", WarningStyle.Render(err.Error()))
	}

	if len(r.SuggestedRules) > 0 {
		b.WriteString("\n" + BoldStyle.Render("Suggested rules:") + "\n")
		for _, p := range r.SuggestedRules {
			fmt.Fprintf(&b, "  budgetui rules add %q --category <name>\n", p)
		}
	}

	title := FileIcon + " " + r.File
	if r.DryRun {
		title += " (dry run)"
	}
	return RenderBox(title, strings.TrimRight(b.String(), "\n"))
}

// RenderTable renders rows under headers with a rounded border.
func RenderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})
	return t.Render()
}

// RenderRules lists rules in evaluation order.
func RenderRules(rules []model.ImportRule) string {
	rows := make([][]string, 0, len(rules))
	for _, r := range rules {
		rows = append(rows, []string{
			strconv.Itoa(r.Priority),
			strconv.FormatInt(r.ID, 10),
			string(r.Kind),
			r.Pattern,
			r.Category,
		})
	}
	return RenderTable([]string{"Priority", "ID", "Kind", "Pattern", "Category"}, rows)
}

// RenderAccounts lists accounts.
func RenderAccounts(accounts []model.Account) string {
	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, []string{strconv.FormatInt(a.ID, 10), a.Name, string(a.Type), a.Institution, a.Currency})
	}
	return RenderTable([]string{"ID", "Name", "Type", "Institution", "Currency"}, rows)
}

// RenderTransactions lists transactions with resolved category names.
func RenderTransactions(txns []model.Transaction, categories []model.Category) string {
	rows := make([][]string, 0, len(txns))
	for _, t := range txns {
		category := SubtleStyle.Render("-")
		if t.CategoryID != nil {
			if c := model.FindCategoryByID(categories, *t.CategoryID); c != nil {
				category = c.Name
			}
		}
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			t.Date.Format(model.DateLayout),
			t.Description,
			FormatAmount(t.Amount),
			category,
		})
	}
	return RenderTable([]string{"ID", "Date", "Description", "Amount", "Category"}, rows)
}

// RenderSummary shows a month's totals and spending by category, with budget
// columns when any category has a budget.
func RenderSummary(s *report.Summary) string {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", SubtleStyle.Render(fmt.Sprintf("%-13s", label+":")), value)
	}
	line("Income", IncomeStyle.Render(s.Income.StringFixed(2)))
	line("Expenses", ExpenseStyle.Render(s.Expenses.StringFixed(2)))
	line("Net", FormatAmount(s.Net()))
	line("Net worth", FormatAmount(s.NetWorth))
	line("Transactions", strconv.Itoa(s.Transactions))

	if len(s.Spending) > 0 {
		budgeted := false
		for _, c := range s.Spending {
			if c.Limit != nil {
				budgeted = true
				break
			}
		}

		headers := []string{"Category", "Spent"}
		if budgeted {
			headers = append(headers, "Budget", "Left")
		}
		rows := make([][]string, 0, len(s.Spending))
		for _, c := range s.Spending {
			row := []string{c.Name, c.Spent.StringFixed(2)}
			if budgeted {
				row = append(row, budgetCells(c)...)
			}
			rows = append(rows, row)
		}
		b.WriteString("\n" + BoldStyle.Render("Spending by category:") + "\n")
		b.WriteString(RenderTable(headers, rows))
	}

	return RenderBox(ReportIcon+" "+s.Month, strings.TrimRight(b.String(), "\n"))
}

func budgetCells(c report.CategorySpend) []string {
	if c.Limit == nil {
		return []string{SubtleStyle.Render("-"), SubtleStyle.Render("-")}
	}
	left := c.Remaining().StringFixed(2)
	if c.Over() {
		left = WarningStyle.Render(left)
	}
	return []string{c.Limit.StringFixed(2), left}
}

// RenderBudgets lists budgets.
func RenderBudgets(budgets []model.Budget) string {
	rows := make([][]string, 0, len(budgets))
	for _, b := range budgets {
		rows = append(rows, []string{strconv.FormatInt(b.ID, 10), b.Month, b.Category, b.Limit.StringFixed(2)})
	}
	return RenderTable([]string{"ID", "Month", "Category", "Limit"}, rows)
}

// NewImportProgress creates a progress bar over files being imported.
func NewImportProgress(w io.Writer, files int) *progressbar.ProgressBar {
	return progressbar.NewOptions(files,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Importing files...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
	)
}
