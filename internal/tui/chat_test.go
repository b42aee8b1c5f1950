package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerunddev/storybook/internal/api"
	"github.com/gerunddev/storybook/internal/state"
	"github.com/gerunddev/storybook/internal/styles"
)

type fakeBackend struct {
	reply    string
	err      error
	requests []*api.ChatRequest
	cleared  int
}

func (f *fakeBackend) SendMessage(_ context.Context, req *api.ChatRequest) (*api.ChatResponse, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &api.ChatResponse{Message: api.NewMessage(api.RoleAssistant, f.reply)}, nil
}

func (f *fakeBackend) ClearMemory(_ context.Context) (*api.StatusResponse, error) {
	f.cleared++
	if f.err != nil {
		return nil, f.err
	}
	return &api.StatusResponse{Status: "ok"}, nil
}

func newTestChat(t *testing.T, backend Backend, history ...api.Message) ChatModel {
	t.Helper()
	theme := styles.ForPreferences(state.NewPreferences())
	return NewChatModel(context.Background(), backend, api.ModeStructured, theme, history)
}

func update(t *testing.T, m ChatModel, msg tea.Msg) (ChatModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	chat, ok := next.(ChatModel)
	require.True(t, ok, "Update returned %T", next)
	return chat, cmd
}

func typeText(t *testing.T, m ChatModel, text string) ChatModel {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return m
}

func TestChatSendAndReply(t *testing.T) {
	backend := &fakeBackend{reply: "**Dobby**\nA free elf."}
	m := newTestChat(t, backend)

	m = typeText(t, m, "Who is Dobby?")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	assert.True(t, m.waiting)
	assert.Empty(t, m.input.Value())
	require.Len(t, m.Messages(), 1)
	assert.Equal(t, api.RoleUser, m.Messages()[0].Role)
	assert.Equal(t, "Who is Dobby?", m.Messages()[0].Content)

	msg := m.send()()
	reply, ok := msg.(replyMsg)
	require.True(t, ok)
	require.NoError(t, reply.err)

	require.Len(t, backend.requests, 1)
	req := backend.requests[0]
	assert.Equal(t, api.ModeStructured, req.ResponseMode)
	assert.False(t, req.Stream)
	assert.Equal(t, []api.ChatMessage{{Role: api.RoleUser, Content: "Who is Dobby?"}}, req.Messages)

	m, _ = update(t, m, reply)
	assert.False(t, m.waiting)
	require.Len(t, m.Messages(), 2)
	assert.Equal(t, api.RoleAssistant, m.Messages()[1].Role)
	assert.Equal(t, "**Dobby**\nA free elf.", m.Messages()[1].Content)
	assert.NotEmpty(t, m.Messages()[1].ID)
}

func TestChatSendsWholeHistory(t *testing.T) {
	backend := &fakeBackend{reply: "ok"}
	history := []api.Message{
		api.NewMessage(api.RoleUser, "Hi"),
		api.NewMessage(api.RoleAssistant, "Hello"),
	}
	m := newTestChat(t, backend, history...)

	m = typeText(t, m, "Tell me about Hedwig")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m.send()()

	require.Len(t, backend.requests, 1)
	got := backend.requests[0].Messages
	require.Len(t, got, 3)
	assert.Equal(t, "Hi", got[0].Content)
	assert.Equal(t, api.RoleAssistant, got[1].Role)
	assert.Equal(t, "Tell me about Hedwig", got[2].Content)
}

func TestChatIgnoresBlankInput(t *testing.T) {
	m := newTestChat(t, &fakeBackend{})

	m = typeText(t, m, "   ")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.False(t, m.waiting)
	assert.Empty(t, m.Messages())
}

func TestChatIgnoresEnterWhileWaiting(t *testing.T) {
	m := newTestChat(t, &fakeBackend{})
	m = typeText(t, m, "first")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.waiting)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Len(t, m.Messages(), 1)
}

func TestChatErrorReply(t *testing.T) {
	m := newTestChat(t, &fakeBackend{})
	m = typeText(t, m, "Hello?")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = update(t, m, replyMsg{err: errors.New("backend down")})

	assert.False(t, m.waiting)
	require.Len(t, m.Messages(), 2)
	assert.Equal(t, ErrorReply, m.Messages()[1].Content)
	assert.Equal(t, api.RoleAssistant, m.Messages()[1].Role)
	assert.Equal(t, "backend down", m.notice)
}

func TestChatToggleMode(t *testing.T) {
	m := newTestChat(t, &fakeBackend{})
	require.Equal(t, api.ModeStructured, m.Mode())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, api.ModeFreeform, m.Mode())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, api.ModeStructured, m.Mode())
}

func TestChatClear(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestChat(t, backend, api.NewMessage(api.RoleUser, "Hi"))

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	require.NotNil(t, cmd)
	assert.Empty(t, m.Messages())

	msg := cmd()
	cleared, ok := msg.(clearedMsg)
	require.True(t, ok)
	assert.NoError(t, cleared.err)
	assert.Equal(t, 1, backend.cleared)
}

func TestChatClearFailureShowsNotice(t *testing.T) {
	m := newTestChat(t, &fakeBackend{})
	m, _ = update(t, m, clearedMsg{err: errors.New("nope")})
	assert.Contains(t, m.notice, "nope")
}

func TestChatQuit(t *testing.T) {
	m := newTestChat(t, &fakeBackend{})
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestChatResize(t *testing.T) {
	m := newTestChat(t, &fakeBackend{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Equal(t, 96, m.viewport.Width)
	assert.Equal(t, 31, m.viewport.Height)
	assert.Equal(t, 94, m.renderer.width)
	assert.Contains(t, m.View(), "Magical Chat")
}
