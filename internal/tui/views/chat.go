package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cleanos-ai/cleanos/internal/gateway"
	"github.com/cleanos-ai/cleanos/internal/tui/theme"
)

// ChatAction is what the chat view asks the model to do after a key.
type ChatAction int

const (
	ChatActionNone ChatAction = iota
	ChatActionSend
	ChatActionCopy
)

// ChatView is a conversation with the active AI provider.
type ChatView struct {
	width  int
	height int

	input    textinput.Model
	viewport viewport.Model

	turns   []gateway.ChatTurn
	pending bool
	err     error
	dark    bool
}

// NewChatView creates a chat view.
func NewChatView() *ChatView {
	ti := textinput.New()
	ti.Placeholder = "Ask about your disk usage…"
	ti.CharLimit = 4000
	ti.Prompt = "› "
	return &ChatView{
		width:    80,
		height:   24,
		input:    ti,
		viewport: viewport.New(80, 18),
		dark:     true,
	}
}

// Focus focuses the message input.
func (cv *ChatView) Focus() tea.Cmd {
	return cv.input.Focus()
}

// Blur removes focus from the message input.
func (cv *ChatView) Blur() {
	cv.input.Blur()
}

// SetSize sets the width and height of the view.
func (cv *ChatView) SetSize(width, height int) {
	cv.width = width
	cv.height = height
	cv.input.Width = max(width-6, 10)
	cv.viewport.Width = width
	cv.viewport.Height = max(height-4, 3)
	cv.refresh()
}

// SetDark picks the markdown palette for assistant replies.
func (cv *ChatView) SetDark(dark bool) {
	if cv.dark == dark {
		return
	}
	cv.dark = dark
	cv.refresh()
}

// Draft returns the message typed so far.
func (cv *ChatView) Draft() string {
	return strings.TrimSpace(cv.input.Value())
}

// Pending reports whether a reply is outstanding.
func (cv *ChatView) Pending() bool {
	return cv.pending
}

// Begin records the outgoing message and returns the earlier turns to
// send along with it.
func (cv *ChatView) Begin(message string) []gateway.ChatTurn {
	history := append([]gateway.ChatTurn(nil), cv.turns...)
	cv.turns = append(cv.turns, gateway.ChatTurn{Role: "user", Content: message})
	cv.pending = true
	cv.err = nil
	cv.input.SetValue("")
	cv.refresh()
	return history
}

// Finish records the reply to the outstanding message.
func (cv *ChatView) Finish(reply string, err error) {
	cv.pending = false
	cv.err = err
	if err == nil {
		cv.turns = append(cv.turns, gateway.ChatTurn{Role: "assistant", Content: reply})
	}
	cv.refresh()
}

// LastReply returns the newest assistant turn.
func (cv *ChatView) LastReply() (string, bool) {
	for i := len(cv.turns) - 1; i >= 0; i-- {
		if cv.turns[i].Role == "assistant" {
			return cv.turns[i].Content, true
		}
	}
	return "", false
}

// Turns returns the conversation so far.
func (cv *ChatView) Turns() []gateway.ChatTurn {
	return cv.turns
}

// Update handles keyboard input.
func (cv *ChatView) Update(msg tea.KeyMsg) (ChatAction, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if cv.pending || cv.Draft() == "" {
			return ChatActionNone, nil
		}
		return ChatActionSend, nil
	case "ctrl+y":
		return ChatActionCopy, nil
	case "ctrl+l":
		if !cv.pending {
			cv.turns = nil
			cv.err = nil
			cv.refresh()
		}
		return ChatActionNone, nil
	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		cv.viewport, cmd = cv.viewport.Update(msg)
		return ChatActionNone, cmd
	}

	var cmd tea.Cmd
	cv.input, cmd = cv.input.Update(msg)
	return ChatActionNone, cmd
}

// GetKeyboardCommands returns the chat view's key reference.
func (cv *ChatView) GetKeyboardCommands() ViewCommands {
	return ViewCommands{
		ViewName: "AI Chat",
		Commands: []Command{
			{Key: "enter", Description: "Send message"},
			{Key: "↑↓, pgup/pgdn", Description: "Scroll conversation"},
			{Key: "ctrl+y", Description: "Copy last reply"},
			{Key: "ctrl+l", Description: "Clear conversation"},
		},
	}
}

func (cv *ChatView) refresh() {
	t := theme.Current()
	you := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	ai := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)

	var parts []string
	for _, turn := range cv.turns {
		if turn.Role == "user" {
			parts = append(parts, you.Render("You")+"\n"+turn.Content)
			continue
		}
		rendered := strings.Join(RenderMarkdown(turn.Content, max(cv.width-4, 20), cv.dark), "\n")
		parts = append(parts, ai.Render("Assistant")+"\n"+rendered)
	}
	if cv.pending {
		parts = append(parts, muted("Thinking…"))
	}
	if cv.err != nil {
		parts = append(parts, colored("Error: "+gateway.Message(cv.err), t.Error))
	}
	if len(parts) == 0 {
		parts = append(parts, muted("Ask the active provider about what is filling your disk."))
	}
	cv.viewport.SetContent(strings.Join(parts, "\n\n"))
	cv.viewport.GotoBottom()
}

// View renders the chat view. provider labels the input line.
func (cv *ChatView) View(provider string) string {
	label := muted("provider: none (choose one in Settings)")
	if provider != "" {
		label = muted("provider: " + provider)
	}
	return cv.viewport.View() + "\n" + label + "\n" + cv.input.View()
}
