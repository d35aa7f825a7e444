package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cleanos-ai/cleanos/internal/tui/theme"
)

// ProgressBar renders a fixed-width bar filled to percent (0-100).
func ProgressBar(percent, width int, color lipgloss.Color) string {
	if width <= 0 {
		return ""
	}
	percent = max(0, min(percent, 100))
	filled := percent * width / 100

	fill := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(theme.Current().Overlay).Render(strings.Repeat("░", width-filled))
	return fill + rest
}

// Truncate shortens s to at most n runes, marking the cut with "…".
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// Checkbox renders a selection marker.
func Checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}

// visibleWindow returns the [start, end) range of a list of n rows that
// keeps cursor visible within height rows.
func visibleWindow(n, cursor, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	start = max(0, min(start, n-height))
	return start, start + height
}

// sectionTitle renders a section heading in the accent color.
func sectionTitle(s string) string {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Primary).
		Bold(true).
		Render(s)
}

func muted(s string) string {
	return lipgloss.NewStyle().Foreground(theme.Current().TextMuted).Render(s)
}

func colored(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(c).Render(s)
}
