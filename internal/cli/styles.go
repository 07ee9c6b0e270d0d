// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#7AA2F7")
	// SuccessColor marks saved changes and money in.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor marks skipped rows and overspent budgets.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor marks failures and money out.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// InfoColor marks neutral notices.
	InfoColor = lipgloss.Color("#95E1D3")
	// SubtleColor marks labels and borders.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for box titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)
	BoldStyle    = lipgloss.NewStyle().Bold(true)

	// BoxStyle frames import results and summaries.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)

	// IncomeStyle formats positive amounts.
	IncomeStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	// ExpenseStyle formats negative amounts.
	ExpenseStyle = lipgloss.NewStyle().Foreground(ErrorColor)

	// TableHeaderStyle formats the header row of listings.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(PrimaryColor).
				Padding(0, 1)

	// TableCellStyle formats listing cells.
	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 2, 0, 1)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	FileIcon    = "📄"
	ReportIcon  = "📊"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// RenderBox renders content under a title in a bordered box.
func RenderBox(title, content string) string {
	return BoxStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Render(title),
		content,
	))
}
