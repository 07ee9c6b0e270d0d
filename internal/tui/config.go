package tui

import (
	"github.com/Veraticus/budgetui/internal/pattern"
	"github.com/Veraticus/budgetui/internal/service"
	"github.com/Veraticus/budgetui/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Rules  pattern.Categorizer
	Theme  themes.Theme
	Filter service.TransactionFilter
	Width  int
	Height int
	// AltScreen runs the program full screen. Tests leave it off.
	AltScreen bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

func defaultConfig() Config {
	return Config{
		Theme:     themes.Default,
		Width:     80,
		Height:    24,
		AltScreen: true,
	}
}

// WithRules sets the rules used to pre-select a category.
func WithRules(rules pattern.Categorizer) Option {
	return func(c *Config) {
		c.Rules = rules
	}
}

// WithTheme sets the color theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithFilter narrows the transactions offered for review. Only
// uncategorized transactions are ever shown.
func WithFilter(filter service.TransactionFilter) Option {
	return func(c *Config) {
		c.Filter = filter
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithAltScreen toggles full screen mode.
func WithAltScreen(enabled bool) Option {
	return func(c *Config) {
		c.AltScreen = enabled
	}
}
