package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders markdown content using Glamour for terminal display.
// Returns a slice of lines ready for display.
func RenderMarkdown(content string, width int, dark bool) []string {
	if content == "" {
		return []string{}
	}
	if width <= 0 {
		width = 80
	}

	style := "dark"
	if !dark {
		style = "light"
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return strings.Split(content, "\n")
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return strings.Split(content, "\n")
	}

	lines := strings.Split(rendered, "\n")

	// Remove trailing empty lines
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

// StripMarkdown removes markdown formatting from content for plain text display.
func StripMarkdown(content string) string {
	lines := RenderMarkdown(content, 80, true)
	return stripANSI(strings.Join(lines, "\n"))
}

// stripANSI removes ANSI escape codes from a string.
func stripANSI(s string) string {
	var result strings.Builder
	inEscape := false

	for _, ch := range s {
		if ch == '\x1b' {
			inEscape = true
		} else if inEscape && ch == 'm' {
			inEscape = false
		} else if !inEscape {
			result.WriteRune(ch)
		}
	}

	return result.String()
}
