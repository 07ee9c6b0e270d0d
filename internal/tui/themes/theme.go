// Package themes holds the color schemes of the review screen.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Bold       lipgloss.Style
	Muted      lipgloss.Style
	Income     lipgloss.Style
	Expense    lipgloss.Style
	Suggestion lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Card       lipgloss.Style
	Primary    lipgloss.Color
	Border     lipgloss.Color
}

// Default is the default theme.
var Default = Theme{
	Primary: lipgloss.Color("#7AA2F7"),
	Border:  lipgloss.Color("#414868"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7AA2F7")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#A9B1D6")),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#C0CAF5")),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#C0CAF5")),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#565F89")),
	Income: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#9ECE6A")),
	Expense: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F7768E")),
	Suggestion: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#E0AF68")).
		Italic(true),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F7768E")).
		Bold(true),
	Success: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#9ECE6A")).
		Bold(true),
	Card: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#414868")).
		Padding(0, 1),
}

// Plain renders without colors, for terminals that cannot show them.
var Plain = Theme{
	Title:      lipgloss.NewStyle().Bold(true).MarginBottom(1),
	Subtitle:   lipgloss.NewStyle(),
	Normal:     lipgloss.NewStyle(),
	Bold:       lipgloss.NewStyle().Bold(true),
	Muted:      lipgloss.NewStyle(),
	Income:     lipgloss.NewStyle(),
	Expense:    lipgloss.NewStyle(),
	Suggestion: lipgloss.NewStyle().Italic(true),
	Error:      lipgloss.NewStyle().Bold(true),
	Success:    lipgloss.NewStyle().Bold(true),
	Card:       lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
}

// ByName returns the named theme, or Default when the name is unknown.
func ByName(name string) Theme {
	if name == "plain" {
		return Plain
	}
	return Default
}
