package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/budgetui/internal/model"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render(m.header()))
	b.WriteString("\n")

	txn, ok := m.Current()
	if !ok {
		s := m.Summary()
		b.WriteString(m.theme.Success.Render(
			fmt.Sprintf("Review complete: %d of %d transactions categorized.", s.Assigned, s.Total)))
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	b.WriteString(m.card(txn))
	b.WriteString("\n")
	if id, ok := m.Suggestion(); ok {
		if c := model.FindCategoryByID(m.categories, id); c != nil {
			b.WriteString(m.theme.Suggestion.Render("Suggested: " + c.Name))
			b.WriteString("\n")
		}
	}
	b.WriteString(m.list.View())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(m.theme.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) header() string {
	total := len(m.transactions)
	if m.Done() {
		return fmt.Sprintf("Review  %d/%d", total, total)
	}
	return fmt.Sprintf("Review  %d/%d", m.index+1, total)
}

func (m Model) card(txn model.Transaction) string {
	amount := txn.Amount.StringFixed(2)
	style := m.theme.Income
	if txn.Amount.IsNegative() {
		style = m.theme.Expense
	}

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			m.theme.Muted.Render(txn.Date.Format(model.DateLayout)),
			"  ",
			m.theme.Bold.Render(txn.Description),
			"  ",
			style.Render(amount),
		),
	}
	if txn.OriginalDescription != "" && txn.OriginalDescription != txn.Description {
		lines = append(lines, m.theme.Muted.Render(txn.OriginalDescription))
	}
	if id, ok := m.assigned[txn.ID]; ok {
		if c := model.FindCategoryByID(m.categories, id); c != nil {
			lines = append(lines, m.theme.Subtitle.Render("Assigned: "+c.Name))
		}
	}
	return m.theme.Card.Render(strings.Join(lines, "\n"))
}
