package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the review screen shortcuts. Category navigation and
// filtering are handled by the list's own bindings.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding

	Assign key.Binding
	Accept key.Binding
	Skip   key.Binding
	Back   key.Binding

	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Assign: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "assign category"),
		),
		Accept: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "accept suggestion"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s", "tab"),
			key.WithHelp("s/tab", "skip"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "shift+tab"),
			key.WithHelp("b", "previous"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q/esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Assign, k.Accept, k.Skip, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Assign, k.Accept, k.Skip, k.Back},
		{k.Help, k.Quit, k.ForceQuit},
	}
}
