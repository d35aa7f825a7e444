package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/cleanos-ai/cleanos/internal/tui/theme"
)

// Styles contains all reusable Lipgloss styles for the TUI.
type Styles struct {
	// Header styles
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style

	// Sidebar
	Sidebar     lipgloss.Style
	SidebarItem lipgloss.Style

	// Footer styles
	Footer      lipgloss.Style
	FooterLeft  lipgloss.Style
	FooterRight lipgloss.Style

	// Text styles
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Bold      lipgloss.Style
	Highlight lipgloss.Style

	// Status indicators
	StatusOK      lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style

	Help lipgloss.Style
}

// DefaultStyles returns the default Lipgloss styles using the current theme.
// Call it again after the palette changes.
func DefaultStyles() Styles {
	t := theme.Current()

	return Styles{
		Header: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Overlay),

		HeaderTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			PaddingRight(2),

		Tab: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			Padding(0, 1),

		TabActive: lipgloss.NewStyle().
			Foreground(t.TextHighlight).
			Background(t.Primary).
			Bold(true).
			Padding(0, 1),

		Sidebar: lipgloss.NewStyle().
			Width(18).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(t.Overlay),

		SidebarItem: lipgloss.NewStyle().
			Foreground(t.Text),

		Footer: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			Padding(0, 1),

		FooterLeft: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			Align(lipgloss.Left),

		FooterRight: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			Align(lipgloss.Right),

		Normal: lipgloss.NewStyle().
			Foreground(t.Text),

		Muted: lipgloss.NewStyle().
			Foreground(t.TextMuted),

		Bold: lipgloss.NewStyle().
			Foreground(t.Text).
			Bold(true),

		Highlight: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),

		StatusOK: lipgloss.NewStyle().
			Foreground(t.Success).
			Bold(true),

		StatusWarning: lipgloss.NewStyle().
			Foreground(t.Warning).
			Bold(true),

		StatusError: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		StatusInfo: lipgloss.NewStyle().
			Foreground(t.Info).
			Bold(true),

		Help: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(1, 2),
	}
}
