// Package tui implements the interactive review screen: it walks uncategorized
// transactions and lets the user pick a category for each one.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/budgetui/internal/importer"
	"github.com/Veraticus/budgetui/internal/model"
	"github.com/Veraticus/budgetui/internal/pattern"
	"github.com/Veraticus/budgetui/internal/service"
	"github.com/Veraticus/budgetui/internal/tui/themes"
)

// Store is the storage the review screen reads from and writes to.
type Store interface {
	GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error)
	GetCategories(ctx context.Context) ([]model.Category, error)
	UpdateTransactionCategory(ctx context.Context, id int64, categoryID *int64) error
}

// Summary reports what a review session changed.
type Summary struct {
	Total    int
	Assigned int
}

// Remaining is the number of reviewed transactions still uncategorized.
func (s Summary) Remaining() int {
	return s.Total - s.Assigned
}

type categoryItem struct {
	category model.Category
}

func (i categoryItem) Title() string       { return i.category.Name }
func (i categoryItem) Description() string { return "" }
func (i categoryItem) FilterValue() string { return i.category.Name }

// Model is the bubbletea model of the review screen.
type Model struct {
	ctx          context.Context
	store        Store
	rules        pattern.Categorizer
	err          error
	assigned     map[int64]int64
	theme        themes.Theme
	keys         KeyMap
	help         help.Model
	transactions []model.Transaction
	categories   []model.Category
	list         list.Model
	index        int
	width        int
	height       int
	pending      bool
	quitting     bool
}

// New creates a review model over the given transactions.
func New(ctx context.Context, store Store, transactions []model.Transaction, categories []model.Category, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	items := make([]list.Item, len(categories))
	for i, c := range categories {
		items[i] = categoryItem{category: c}
	}
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(items, delegate, cfg.Width, listHeight(cfg.Height))
	l.Title = "Categories"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.DisableQuitKeybindings()

	m := Model{
		ctx:          ctx,
		store:        store,
		rules:        cfg.Rules,
		theme:        cfg.Theme,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		transactions: transactions,
		categories:   categories,
		assigned:     make(map[int64]int64),
		list:         l,
		width:        cfg.Width,
		height:       cfg.Height,
	}
	m.syncSelection()
	return m
}

// listHeight leaves room for the transaction card and help line.
func listHeight(total int) int {
	h := total - 10
	if h < 5 {
		return 5
	}
	return h
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, listHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case assignedMsg:
		m.pending = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.assigned[msg.transactionID] = msg.categoryID
		m.move(1)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.list.SettingFilter() {
			break
		}
		if m.list.IsFiltered() && msg.String() == "esc" {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case m.pending:
			return m, nil
		case key.Matches(msg, m.keys.Back):
			m.move(-1)
			return m, nil
		case m.Done():
			return m, nil
		case key.Matches(msg, m.keys.Assign):
			item, ok := m.list.SelectedItem().(categoryItem)
			if !ok {
				return m, nil
			}
			return m.assign(item.category.ID)
		case key.Matches(msg, m.keys.Accept):
			id, ok := m.Suggestion()
			if !ok {
				return m, nil
			}
			return m.assign(id)
		case key.Matches(msg, m.keys.Skip):
			m.move(1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) assign(categoryID int64) (tea.Model, tea.Cmd) {
	txn := m.transactions[m.index]
	m.pending = true
	ctx, store := m.ctx, m.store
	return m, func() tea.Msg {
		id := categoryID
		err := store.UpdateTransactionCategory(ctx, txn.ID, &id)
		return assignedMsg{transactionID: txn.ID, categoryID: categoryID, err: err}
	}
}

// move steps through the queue. Index len(transactions) is the done screen.
func (m *Model) move(delta int) {
	m.index += delta
	if m.index < 0 {
		m.index = 0
	}
	if m.index > len(m.transactions) {
		m.index = len(m.transactions)
	}
	m.syncSelection()
}

// syncSelection points the category list at the current choice for the
// transaction on screen: the category already assigned this session, else
// the rule suggestion, else the top of the list.
func (m *Model) syncSelection() {
	if m.Done() {
		return
	}
	m.list.ResetFilter()
	id, ok := m.assigned[m.transactions[m.index].ID]
	if !ok {
		id, ok = m.Suggestion()
	}
	if !ok {
		m.list.Select(0)
		return
	}
	for i, c := range m.categories {
		if c.ID == id {
			m.list.Select(i)
			return
		}
	}
}

// Current returns the transaction on screen.
func (m Model) Current() (model.Transaction, bool) {
	if m.Done() {
		return model.Transaction{}, false
	}
	return m.transactions[m.index], true
}

// Suggestion returns the category the stored rules pick for the current
// transaction.
func (m Model) Suggestion() (int64, bool) {
	txn, ok := m.Current()
	if !ok {
		return 0, false
	}
	c := model.Candidate{
		Description:         txn.Description,
		OriginalDescription: txn.OriginalDescription,
	}
	return importer.CategorizeOne(c, m.rules)
}

// Done reports whether every transaction has been visited.
func (m Model) Done() bool {
	return m.index >= len(m.transactions)
}

// Summary reports the session's progress.
func (m Model) Summary() Summary {
	return Summary{Total: len(m.transactions), Assigned: len(m.assigned)}
}
