package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/storybook/internal/api"
	"github.com/gerunddev/storybook/internal/styles"
)

// ErrorReply is shown in place of an assistant reply when a request fails
const ErrorReply = "Sorry, something went wrong with the magic. Please try again later."

// Backend is the part of the API client the chat screen uses
type Backend interface {
	SendMessage(ctx context.Context, req *api.ChatRequest) (*api.ChatResponse, error)
	ClearMemory(ctx context.Context) (*api.StatusResponse, error)
}

// replyMsg carries the outcome of a chat request
type replyMsg struct {
	resp *api.ChatResponse
	err  error
}

// clearedMsg carries the outcome of a clear-memory request
type clearedMsg struct {
	err error
}

// ChatModel is the interactive chat screen
type ChatModel struct {
	ctx      context.Context
	backend  Backend
	messages []api.Message
	mode     api.ResponseMode

	input    textinput.Model
	viewport viewport.Model
	loading  Loading
	renderer *Renderer
	theme    styles.Theme

	waiting bool
	notice  string
	width   int
	height  int
}

// NewChatModel creates the chat screen, optionally seeded with history
func NewChatModel(ctx context.Context, backend Backend, mode api.ResponseMode, theme styles.Theme, history []api.Message) ChatModel {
	ti := textinput.New()
	ti.Placeholder = "Cast your spell..."
	ti.Prompt = "✦ "
	ti.CharLimit = 2000
	ti.Focus()

	vp := viewport.New(80, 20)

	m := ChatModel{
		ctx:      ctx,
		backend:  backend,
		messages: append([]api.Message(nil), history...),
		mode:     mode,
		input:    ti,
		viewport: vp,
		loading:  NewLoading(LoadingChat, theme.Spinner),
		renderer: NewRenderer(theme.GlamourStyle, 76),
		theme:    theme,
	}
	m.refresh()
	return m
}

// Messages returns the conversation so far
func (m ChatModel) Messages() []api.Message {
	return m.messages
}

// Mode returns the current response mode
func (m ChatModel) Mode() api.ResponseMode {
	return m.mode
}

func (m ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = max(msg.Width-4, 20)
		m.viewport.Height = max(msg.Height-9, 5)
		m.input.Width = max(msg.Width-8, 10)
		m.renderer = NewRenderer(m.theme.GlamourStyle, m.viewport.Width-2)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab":
			m.mode = m.mode.Toggle()
			m.refresh()
			return m, nil

		case "ctrl+l":
			if m.waiting {
				return m, nil
			}
			m.messages = nil
			m.notice = ""
			m.refresh()
			return m, m.clear()

		case "enter":
			text := m.input.Value()
			if m.waiting || strings.TrimSpace(text) == "" {
				return m, nil
			}
			m.messages = append(m.messages, api.NewMessage(api.RoleUser, text))
			m.input.Reset()
			m.waiting = true
			m.notice = ""
			m.loading = m.loading.Restart()
			m.refresh()
			return m, tea.Batch(m.send(), m.loading.Tick)
		}

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.messages = append(m.messages, api.NewMessage(api.RoleAssistant, ErrorReply))
			m.notice = msg.err.Error()
		} else {
			m.messages = append(m.messages, api.NewMessage(api.RoleAssistant, msg.resp.Message.Content))
		}
		m.refresh()
		return m, nil

	case clearedMsg:
		if msg.err != nil {
			m.notice = "Could not clear the backend's memory: " + msg.err.Error()
		}
		return m, nil

	default:
		if m.waiting {
			var cmd tea.Cmd
			m.loading, cmd = m.loading.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.waiting {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// send posts the whole conversation, as it stands now, to the backend
func (m ChatModel) send() tea.Cmd {
	req := api.NewChatRequest(m.messages, m.mode)
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		resp, err := backend.SendMessage(ctx, req)
		return replyMsg{resp: resp, err: err}
	}
}

func (m ChatModel) clear() tea.Cmd {
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		_, err := backend.ClearMemory(ctx)
		return clearedMsg{err: err}
	}
}

// refresh re-renders the conversation into the viewport
func (m *ChatModel) refresh() {
	m.viewport.SetContent(m.transcript())
	m.viewport.GotoBottom()
}

func (m ChatModel) transcript() string {
	if len(m.messages) == 0 {
		return helpStyle.Render("Ask anything about the wizarding world.")
	}

	var b strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if msg.Role == api.RoleUser {
			b.WriteString(m.theme.Label.Render("You") + "\n")
			b.WriteString(m.theme.User.Render(msg.Content))
		} else {
			b.WriteString(m.theme.Label.Render("Storybook") + "\n")
			b.WriteString(m.renderer.Reply(msg.Content, m.mode))
		}
	}
	return b.String()
}

func (m ChatModel) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("Magical Chat"))
	b.WriteString("  ")
	b.WriteString(m.theme.Accent.Render("[" + string(m.mode) + "]"))
	b.WriteString("\n")

	b.WriteString(m.theme.Frame.Render(m.viewport.View()))
	b.WriteString("\n")

	if m.waiting {
		b.WriteString(m.loading.View())
	}
	b.WriteString("\n")

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(errorStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("enter send • tab freeform/structured • ctrl+l clear • esc quit"))

	return b.String()
}
