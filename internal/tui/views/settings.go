package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cleanos-ai/cleanos/internal/aggregate"
	"github.com/cleanos-ai/cleanos/internal/models"
	"github.com/cleanos-ai/cleanos/internal/store"
	"github.com/cleanos-ai/cleanos/internal/tui/theme"
)

// SettingsAction is what the settings view asks the model to do after a key.
type SettingsAction int

const (
	SettingsActionNone SettingsAction = iota
	SettingsActionActivate
	SettingsActionTest
	SettingsActionNextModel
	SettingsActionStoreKey
	SettingsActionDeleteKey
	SettingsActionRefreshCatalog
	SettingsActionCheckUpdates
)

// SettingsView manages AI providers, their keys and models.
type SettingsView struct {
	width  int
	height int
	cursor int

	defs []models.ProviderDefinition

	editingKey bool
	keyInput   textinput.Model

	catalogInfo string
	notice      string
}

// NewSettingsView creates a settings view.
func NewSettingsView() *SettingsView {
	ti := textinput.New()
	ti.Placeholder = "paste API key"
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	ti.CharLimit = 256
	return &SettingsView{width: 80, height: 24, keyInput: ti}
}

// SetSize sets the width and height of the view.
func (sv *SettingsView) SetSize(width, height int) {
	sv.width = width
	sv.height = height
	sv.keyInput.Width = max(width-30, 20)
}

// SetDefinitions replaces the provider definitions, models included.
func (sv *SettingsView) SetDefinitions(defs []models.ProviderDefinition) {
	sv.defs = defs
	if sv.cursor >= len(defs) {
		sv.cursor = max(len(defs)-1, 0)
	}
}

// SetCatalogInfo sets the catalog status line.
func (sv *SettingsView) SetCatalogInfo(s string) {
	sv.catalogInfo = s
}

// SetNotice sets a one-line message shown under the provider list.
func (sv *SettingsView) SetNotice(s string) {
	sv.notice = s
}

// Capturing reports whether the view is consuming raw key input.
func (sv *SettingsView) Capturing() bool {
	return sv.editingKey
}

// SelectedProvider returns the provider under the cursor.
func (sv *SettingsView) SelectedProvider() (models.ProviderDefinition, bool) {
	if sv.cursor < 0 || sv.cursor >= len(sv.defs) {
		return models.ProviderDefinition{}, false
	}
	return sv.defs[sv.cursor], true
}

// KeyValue returns the key typed while editing.
func (sv *SettingsView) KeyValue() string {
	return strings.TrimSpace(sv.keyInput.Value())
}

// NextModel returns the model after current in def's model list,
// wrapping around. An unknown current yields the first model.
func NextModel(def models.ProviderDefinition, current string) string {
	if len(def.Models) == 0 {
		return current
	}
	for i, m := range def.Models {
		if m.ID == current {
			return def.Models[(i+1)%len(def.Models)].ID
		}
	}
	return def.Models[0].ID
}

// Update handles keyboard input.
func (sv *SettingsView) Update(msg tea.KeyMsg) (SettingsAction, tea.Cmd) {
	key := msg.String()

	if sv.editingKey {
		switch key {
		case "esc":
			sv.editingKey = false
			sv.keyInput.Blur()
			sv.keyInput.SetValue("")
			return SettingsActionNone, nil
		case "enter":
			sv.editingKey = false
			sv.keyInput.Blur()
			if sv.KeyValue() == "" {
				return SettingsActionNone, nil
			}
			return SettingsActionStoreKey, nil
		}
		var cmd tea.Cmd
		sv.keyInput, cmd = sv.keyInput.Update(msg)
		return SettingsActionNone, cmd
	}

	switch key {
	case "up", "k":
		if sv.cursor > 0 {
			sv.cursor--
		}
	case "down", "j":
		if sv.cursor < len(sv.defs)-1 {
			sv.cursor++
		}
	case "enter":
		return SettingsActionActivate, nil
	case "t":
		return SettingsActionTest, nil
	case "m":
		return SettingsActionNextModel, nil
	case "e":
		sv.editingKey = true
		sv.keyInput.SetValue("")
		return SettingsActionNone, sv.keyInput.Focus()
	case "x":
		return SettingsActionDeleteKey, nil
	case "R":
		return SettingsActionRefreshCatalog, nil
	case "u":
		return SettingsActionCheckUpdates, nil
	}
	return SettingsActionNone, nil
}

// GetKeyboardCommands returns the settings view's key reference.
func (sv *SettingsView) GetKeyboardCommands() ViewCommands {
	return ViewCommands{
		ViewName: "Settings",
		Commands: []Command{
			{Key: "↑↓, j/k", Description: "Choose provider"},
			{Key: "enter", Description: "Make provider active"},
			{Key: "e / x", Description: "Enter / delete API key"},
			{Key: "t", Description: "Test connection"},
			{Key: "m", Description: "Next model"},
			{Key: "R", Description: "Refresh model catalog"},
			{Key: "u", Description: "Check for updates"},
			{Key: "T", Description: "Cycle theme"},
		},
	}
}

// View renders the settings view for st.
func (sv *SettingsView) View(st *store.State) string {
	t := theme.Current()
	var b strings.Builder

	b.WriteString(sectionTitle("AI providers"))
	b.WriteString("\n")
	active := st.ActiveProviderID()

	for i, def := range sv.defs {
		status, _ := st.Provider(def.ID)
		marker := "  "
		name := lipgloss.NewStyle().Foreground(t.Text)
		if i == sv.cursor {
			marker = "▸ "
			name = name.Foreground(t.TextHighlight).Bold(true)
		}
		activeMark := " "
		if def.ID == active {
			activeMark = colored("★", t.Accent)
		}

		state := colored("no key", t.TextMuted)
		switch {
		case status.Error != "":
			state = colored("error", t.Error)
		case status.Connected:
			state = colored("connected", t.Success)
		}

		model := status.Model
		if model == "" {
			model = def.DefaultModel
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s  %s\n",
			marker, activeMark,
			name.Render(fmt.Sprintf("%-16s", def.Name)),
			fmt.Sprintf("%-10s", state),
			muted(model+sv.modelInfo(def, model))))
		if status.Error != "" && i == sv.cursor {
			b.WriteString("      " + colored(Truncate(status.Error, max(sv.width-8, 20)), t.Error) + "\n")
		}
	}

	if sv.editingKey {
		if def, ok := sv.SelectedProvider(); ok {
			b.WriteString("\n" + def.Name + " key: " + sv.keyInput.View() + "\n")
		}
	}

	if sv.notice != "" {
		b.WriteString("\n" + colored(sv.notice, t.Info) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionTitle("Appearance"))
	b.WriteString(fmt.Sprintf("\n  theme: %s (T to cycle)\n", st.Theme))

	b.WriteString("\n")
	b.WriteString(sectionTitle("Model catalog"))
	b.WriteString("\n  ")
	if sv.catalogInfo == "" {
		b.WriteString(muted("not loaded"))
	} else {
		b.WriteString(sv.catalogInfo)
	}
	return b.String()
}

func (sv *SettingsView) modelInfo(def models.ProviderDefinition, id string) string {
	for _, m := range def.Models {
		if m.ID == id {
			if m.MaxTokens > 0 {
				return fmt.Sprintf(" (%s ctx)", aggregate.FormatContextLength(m.MaxTokens))
			}
			return ""
		}
	}
	return ""
}
