package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/cleanos-ai/cleanos/internal/gateway"
	"github.com/cleanos-ai/cleanos/internal/tui/theme"
)

// Styles for CLI output
var (
	headingStyle = lipgloss.NewStyle().Foreground(theme.Current().Primary).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(theme.Current().TextMuted)
	okStyle      = lipgloss.NewStyle().Foreground(theme.Current().Success)
	warnStyle    = lipgloss.NewStyle().Foreground(theme.Current().Warning)
	errorStyle   = lipgloss.NewStyle().Foreground(theme.Current().Error)
)

const rule = "──────────────────────────────────────────────────"

func heading(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf(format, args...)))
	_, _ = fmt.Fprintln(w, mutedStyle.Render(rule))
}

// unsupported prints a notice for operations the local backend does not
// perform and reports whether err was one.
func unsupported(w io.Writer, err error) bool {
	if !errors.Is(err, gateway.ErrUnsupported) {
		return false
	}
	_, _ = fmt.Fprintln(w, warnStyle.Render("⚠ "+gateway.Message(err)+": CleanOS only reports what could be freed; remove it yourself."))
	return true
}
