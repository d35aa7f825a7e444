package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/cleanos-ai/cleanos/internal/tui/theme"
)

// ConfirmDialog is a simple yes/no confirmation dialog.
type ConfirmDialog struct {
	title    string
	message  string
	footer   string
	selected bool // false = no, true = yes
}

// NewConfirmDialog creates a new confirmation dialog.
func NewConfirmDialog(title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		title:    title,
		message:  message,
		selected: false, // Default to "No"
	}
}

// SetFooter sets a muted line shown under the buttons.
func (c *ConfirmDialog) SetFooter(footer string) {
	c.footer = footer
}

// SetMessage replaces the dialog body.
func (c *ConfirmDialog) SetMessage(message string) {
	c.message = message
}

// SelectYes selects the "Yes" option.
func (c *ConfirmDialog) SelectYes() {
	c.selected = true
}

// SelectNo selects the "No" option.
func (c *ConfirmDialog) SelectNo() {
	c.selected = false
}

// IsYesSelected returns whether "Yes" is selected.
func (c *ConfirmDialog) IsYesSelected() bool {
	return c.selected
}

// Toggle switches between Yes and No.
func (c *ConfirmDialog) Toggle() {
	c.selected = !c.selected
}

// View renders the confirmation dialog.
func (c *ConfirmDialog) View() string {
	t := theme.Current()

	yesStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Padding(0, 2)

	noStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Padding(0, 2)

	active := func(s lipgloss.Style) lipgloss.Style {
		return s.Background(t.Primary).Foreground(t.TextHighlight).Bold(true)
	}
	if c.selected {
		yesStyle = active(yesStyle)
	} else {
		noStyle = active(noStyle)
	}

	buttons := lipgloss.JoinHorizontal(
		lipgloss.Left,
		"[ ",
		yesStyle.Render("Yes"),
		" ] [ ",
		noStyle.Render("No"),
		" ]",
	)

	parts := []string{
		lipgloss.NewStyle().Bold(true).Foreground(t.Text).Render(c.title),
		"",
		c.message,
		"",
		buttons,
	}
	if c.footer != "" {
		parts = append(parts, "", lipgloss.NewStyle().Foreground(t.TextMuted).Italic(true).Render(c.footer))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Center, parts...))
}

// CenteredView renders the dialog centered on the screen.
func (c *ConfirmDialog) CenteredView(width, height int) string {
	dialog := c.View()
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, dialog)
}
