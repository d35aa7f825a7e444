package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cleanos-ai/cleanos/internal/tui/theme"
)

// HelpView renders the key reference for the global keymap and the
// current view.
type HelpView struct {
	width        int
	height       int
	global       []Command
	viewCommands ViewCommands
}

// Command represents a single keyboard command.
type Command struct {
	Key         string
	Description string
}

// ViewCommands represents commands for a specific view.
type ViewCommands struct {
	ViewName string
	Commands []Command
}

// NewHelpView creates a help view with the given global commands.
func NewHelpView(global []Command) *HelpView {
	return &HelpView{global: global, width: 80, height: 24}
}

// SetSize sets the width and height of the view.
func (hv *HelpView) SetSize(width, height int) {
	hv.width = width
	hv.height = height
}

// SetViewCommands sets the commands from the calling view.
func (hv *HelpView) SetViewCommands(commands ViewCommands) {
	hv.viewCommands = commands
}

// Update handles key input and reports whether the help should close.
func (hv *HelpView) Update(key string) bool {
	switch key {
	case "esc", "?", "q":
		return true
	default:
		return false
	}
}

// View renders the help view.
func (hv *HelpView) View() string {
	// Title
	titleStyle := lipgloss.NewStyle().
		Foreground(theme.Current().Accent).
		Bold(true).
		MarginLeft(1).
		MarginTop(1).
		MarginBottom(1)

	title := titleStyle.Render("Help - Available Commands")

	// Get commands
	globalCommands, viewCommands, viewTitle := hv.getCommands()

	// Section header style
	sectionHeaderStyle := lipgloss.NewStyle().
		Foreground(theme.Current().Primary).
		Bold(true).
		MarginLeft(1).
		MarginTop(1)

	// Render global commands section
	globalHeader := sectionHeaderStyle.Render("Global Commands")
	globalTable := hv.renderCommandTable(globalCommands)

	// Render view-specific commands section
	viewHeader := sectionHeaderStyle.Render(viewTitle + " Commands")
	viewTable := hv.renderCommandTable(viewCommands)

	// Footer
	footerStyle := lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted).
		Italic(true).
		MarginTop(1).
		MarginLeft(1)

	footer := footerStyle.Render("Press Esc, ?, or q to close")

	// Combine all sections
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		globalHeader,
		globalTable,
		"",
		viewHeader,
		viewTable,
		"",
		footer,
	)

	// Add padding
	paddedContent := lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)

	return paddedContent
}

// getCommands returns global and view-specific commands.
func (hv *HelpView) getCommands() (globalCommands []Command, viewCommands []Command, viewTitle string) {
	globalCommands = hv.global

	// Use commands passed from the view
	viewCommands = hv.viewCommands.Commands
	viewTitle = hv.viewCommands.ViewName

	return globalCommands, viewCommands, viewTitle
}

// renderCommandTable renders the commands as a formatted table.
func (hv *HelpView) renderCommandTable(commands []Command) string {
	if len(commands) == 0 {
		return ""
	}

	// Calculate column widths
	maxKeyLen := 0
	for _, cmd := range commands {
		if len(cmd.Key) > maxKeyLen {
			maxKeyLen = len(cmd.Key)
		}
	}

	// Add some padding
	keyColWidth := maxKeyLen + 2
	descColWidth := hv.width - keyColWidth - 6 // Account for borders and padding

	if descColWidth < 20 {
		descColWidth = 20
	}

	// Header
	headerStyle := lipgloss.NewStyle().
		Foreground(theme.Current().Primary).
		Bold(true).
		Padding(0, 1)

	keyHeader := headerStyle.Render("Key")
	descHeader := headerStyle.Render("Description")

	headerLine := lipgloss.JoinHorizontal(
		lipgloss.Left,
		keyHeader,
		"  ",
		descHeader,
	)

	// Separator
	separatorStyle := lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted)

	separator := separatorStyle.Render(strings.Repeat("─", max(hv.width-4, 10)))

	// Rows
	var rows []string
	rows = append(rows, headerLine)
	rows = append(rows, separator)

	keyStyle := lipgloss.NewStyle().
		Foreground(theme.Current().Accent).
		Bold(true).
		Padding(0, 1).
		Width(keyColWidth)

	descStyle := lipgloss.NewStyle().
		Foreground(theme.Current().Text).
		Padding(0, 1).
		Width(descColWidth)

	for _, cmd := range commands {
		keyCell := keyStyle.Render(cmd.Key)
		descCell := descStyle.Render(cmd.Description)

		row := lipgloss.JoinHorizontal(
			lipgloss.Left,
			keyCell,
			descCell,
		)

		rows = append(rows, row)
	}

	return strings.Join(rows, "\n")
}
