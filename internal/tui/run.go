package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrNothingToReview is returned when no uncategorized transactions match.
var ErrNothingToReview = errors.New("no uncategorized transactions to review")

// Run loads the uncategorized transactions and runs the review screen until
// the user quits or ctx is canceled.
func Run(ctx context.Context, store Store, opts ...Option) (Summary, error) {
	if store == nil {
		return Summary{}, errors.New("storage is required")
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	filter := cfg.Filter
	filter.UncategorizedOnly = true
	transactions, err := store.GetTransactions(ctx, filter)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load transactions: %w", err)
	}
	if len(transactions) == 0 {
		return Summary{}, ErrNothingToReview
	}

	categories, err := store.GetCategories(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to load categories: %w", err)
	}
	if len(categories) == 0 {
		return Summary{}, fmt.Errorf("no categories found - add one with 'budgetui categories add'")
	}

	m := New(ctx, store, transactions, categories, opts...)
	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	final, err := tea.NewProgram(m, programOpts...).Run()
	if final != nil {
		if fm, ok := final.(Model); ok {
			m = fm
		}
	}
	if err != nil {
		return m.Summary(), fmt.Errorf("review screen failed: %w", err)
	}
	return m.Summary(), nil
}
