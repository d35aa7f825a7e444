package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// Keymap defines the global key bindings for the TUI. View-specific keys
// are handled by the views themselves.
type Keymap struct {
	// Navigation
	NextView  key.Binding
	PrevView  key.Binding
	Dashboard key.Binding
	Files     key.Binding
	System    key.Binding
	Chat      key.Binding
	Settings  key.Binding
	Sidebar   key.Binding

	// Actions
	Refresh key.Binding
	Theme   key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeymap returns the default key bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous view"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "dashboard"),
		),
		Files: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "files"),
		),
		System: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "system"),
		),
		Chat: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "AI chat"),
		),
		Settings: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "settings"),
		),
		Sidebar: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "toggle sidebar"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Theme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "cycle theme"),
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
}

// Bindings returns every global binding in display order.
func (k Keymap) Bindings() []key.Binding {
	return []key.Binding{
		k.NextView, k.PrevView, k.Dashboard, k.Files, k.System, k.Chat,
		k.Settings, k.Sidebar, k.Refresh, k.Theme, k.Help, k.Quit,
	}
}

// HelpText returns formatted help text for all key bindings.
func (k Keymap) HelpText() string {
	return "[ tab switch view • 1-5 jump • r refresh • T theme • ctrl+b sidebar • ? help • q quit ]"
}

// QuickHelpText returns condensed help text for the footer.
func (k Keymap) QuickHelpText() string {
	return "tab views • r refresh • ? help • q quit"
}
