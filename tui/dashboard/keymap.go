package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings for the dashboard.
type KeyMap struct {
	// Navigation
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	// Data
	Reload    key.Binding
	CycleDate key.Binding
	LoadMore  key.Binding
	Search    key.Binding
	// Alerts
	MarkRead key.Binding
	Dismiss  key.Binding
	Unread   key.Binding
	Severity key.Binding
	// Screens
	Portfolio key.Binding
	Compare   key.Binding
	Rescan    key.Binding
	Back      key.Binding
	// Help and quit
	Help key.Binding
	Quit key.Binding
}

var defaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab", "l", "right"),
		key.WithHelp("tab", "next tab"),
	),
	PrevTab: key.NewBinding(
		key.WithKeys("shift+tab", "h", "left"),
		key.WithHelp("shift+tab", "previous tab"),
	),
	Reload: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "reload data"),
	),
	CycleDate: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "cycle date range"),
	),
	LoadMore: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "load more"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	MarkRead: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "mark alert read"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "dismiss alert"),
	),
	Unread: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "toggle unread filter"),
	),
	Severity: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "cycle severity filter"),
	),
	Portfolio: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "portfolio"),
	),
	Compare: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "compare selected scans"),
	),
	Rescan: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rescan subject"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp returns the hint-line bindings.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.CycleDate, k.Reload, k.Help, k.Quit}
}

// FullHelp returns the full help layout.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Reload, k.CycleDate, k.LoadMore, k.Search},
		{k.MarkRead, k.Dismiss, k.Unread, k.Severity},
		{k.Portfolio, k.Compare, k.Rescan, k.Back, k.Quit},
	}
}
