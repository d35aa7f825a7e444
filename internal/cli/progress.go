package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cleanos-ai/cleanos/internal/aggregate"
	"github.com/cleanos-ai/cleanos/internal/tui/theme"
)

// ProgressBar renders a CLI progress bar similar to the TUI dashboard.
type ProgressBar struct {
	completed int
	total     int
	label     string
	width     int
}

// NewProgressBar creates a new progress bar with the specified total and width.
func NewProgressBar(total int, width int) *ProgressBar {
	if width <= 0 {
		width = 15
	}
	return &ProgressBar{
		total: total,
		width: width,
	}
}

// Update sets the current progress and label.
func (p *ProgressBar) Update(completed int, label string) {
	p.completed = completed
	p.label = label
}

func (p *ProgressBar) bar() string {
	percent := float64(min(p.completed, p.total)) / float64(p.total)
	filled := int(float64(p.width) * percent)
	return strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)
}

// Render returns the bar with a completed/total count.
func (p *ProgressBar) Render() string {
	if p.total == 0 {
		return ""
	}
	t := theme.Current()
	style := lipgloss.NewStyle().Foreground(t.Success).Bold(true)
	count := lipgloss.NewStyle().Foreground(t.TextMuted)

	return style.Render("["+p.bar()+"]") +
		count.Render(fmt.Sprintf(" %d/%d ", p.completed, p.total)) +
		style.Render(p.label)
}

// RenderUsage renders the bar as a percentage, coloured by usage level.
func (p *ProgressBar) RenderUsage() string {
	if p.total == 0 {
		return ""
	}
	pct := aggregate.Percent(uint64(p.completed), uint64(p.total))
	style := lipgloss.NewStyle().Foreground(theme.LevelColor(aggregate.UsageLevel(pct)))

	return style.Render("["+p.bar()+"]") + style.Bold(true).Render(fmt.Sprintf(" %3d%% ", pct)) + p.label
}

// ClearLine clears the current line for in-place progress updates.
func ClearLine(w io.Writer) {
	_, _ = fmt.Fprint(w, "\r\033[K")
}
