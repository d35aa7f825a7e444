// Package theme provides color theming for the TUI.
package theme

import (
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"

	"github.com/cleanos-ai/cleanos/internal/aggregate"
	"github.com/cleanos-ai/cleanos/internal/models"
)

// Theme defines the color palette for the TUI.
type Theme struct {
	Name string
	Dark bool

	// Primary colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	// Background colors
	Background lipgloss.Color
	Surface    lipgloss.Color
	Overlay    lipgloss.Color

	// Text colors
	Text          lipgloss.Color
	TextMuted     lipgloss.Color
	TextHighlight lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// File category colors
	CategoryDocument lipgloss.Color
	CategoryMedia    lipgloss.Color
	CategoryCode     lipgloss.Color
	CategoryArchive  lipgloss.Color
	CategorySystem   lipgloss.Color
}

// DarkTheme is the default palette.
var DarkTheme = Theme{
	Name: "dark",
	Dark: true,

	Primary:   lipgloss.Color("#3B82F6"), // Blue
	Secondary: lipgloss.Color("#8B5CF6"), // Violet
	Accent:    lipgloss.Color("#22D3EE"), // Cyan

	Background: lipgloss.Color("#0F172A"),
	Surface:    lipgloss.Color("#1E293B"),
	Overlay:    lipgloss.Color("#334155"),

	Text:          lipgloss.Color("#E2E8F0"),
	TextMuted:     lipgloss.Color("#64748B"),
	TextHighlight: lipgloss.Color("#FFFFFF"),

	Success: lipgloss.Color("#10B981"),
	Warning: lipgloss.Color("#F59E0B"),
	Error:   lipgloss.Color("#EF4444"),
	Info:    lipgloss.Color("#38BDF8"),

	CategoryDocument: lipgloss.Color("#3B82F6"),
	CategoryMedia:    lipgloss.Color("#EC4899"),
	CategoryCode:     lipgloss.Color("#10B981"),
	CategoryArchive:  lipgloss.Color("#F59E0B"),
	CategorySystem:   lipgloss.Color("#94A3B8"),
}

// LightTheme is used when the store reports a light palette.
var LightTheme = Theme{
	Name: "light",

	Primary:   lipgloss.Color("#1D4ED8"),
	Secondary: lipgloss.Color("#6D28D9"),
	Accent:    lipgloss.Color("#0E7490"),

	Background: lipgloss.Color("#FFFFFF"),
	Surface:    lipgloss.Color("#F1F5F9"),
	Overlay:    lipgloss.Color("#E2E8F0"),

	Text:          lipgloss.Color("#0F172A"),
	TextMuted:     lipgloss.Color("#64748B"),
	TextHighlight: lipgloss.Color("#000000"),

	Success: lipgloss.Color("#047857"),
	Warning: lipgloss.Color("#B45309"),
	Error:   lipgloss.Color("#B91C1C"),
	Info:    lipgloss.Color("#0369A1"),

	CategoryDocument: lipgloss.Color("#1D4ED8"),
	CategoryMedia:    lipgloss.Color("#BE185D"),
	CategoryCode:     lipgloss.Color("#047857"),
	CategoryArchive:  lipgloss.Color("#B45309"),
	CategorySystem:   lipgloss.Color("#475569"),
}

var current atomic.Pointer[Theme]

func init() {
	current.Store(&DarkTheme)
}

// Current returns the active palette.
func Current() Theme {
	return *current.Load()
}

// SetDark switches between the dark and light palettes.
func SetDark(dark bool) {
	if dark {
		current.Store(&DarkTheme)
		return
	}
	current.Store(&LightTheme)
}

// CategoryColor returns the color for a file category.
func CategoryColor(c models.FileCategory) lipgloss.Color {
	t := Current()
	switch c {
	case models.CategoryDocument:
		return t.CategoryDocument
	case models.CategoryMedia:
		return t.CategoryMedia
	case models.CategoryCode:
		return t.CategoryCode
	case models.CategoryArchive:
		return t.CategoryArchive
	case models.CategorySystem:
		return t.CategorySystem
	default:
		return t.TextMuted
	}
}

// LevelColor returns the color for a usage level.
func LevelColor(l aggregate.Level) lipgloss.Color {
	t := Current()
	switch l {
	case aggregate.LevelCritical:
		return t.Error
	case aggregate.LevelWarning:
		return t.Warning
	default:
		return t.Success
	}
}

// SeverityColor returns the color for a recommendation severity.
func SeverityColor(s aggregate.Severity) lipgloss.Color {
	t := Current()
	switch s {
	case aggregate.SeverityFavorable:
		return t.Success
	case aggregate.SeverityBlocking:
		return t.Error
	default:
		return t.Warning
	}
}
