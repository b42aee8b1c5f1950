package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/storybook/internal/api"
	"github.com/gerunddev/storybook/internal/styles"
	"github.com/gerunddev/storybook/internal/transcript"
)

// BrowseMsg is sent when the transcript library has been read
type BrowseMsg struct {
	Entries []transcript.Entry
	Err     error
}

type browseModel struct {
	table    table.Model
	viewport viewport.Model
	renderer *Renderer
	theme    styles.Theme
	entries  []transcript.Entry
	selected *transcript.Entry
	err      error
	ready    bool
	preview  bool
	width    int
	height   int
}

// InitBrowseModel creates the transcript library browser
func InitBrowseModel(theme styles.Theme, renderer *Renderer) browseModel {
	columns := []table.Column{
		{Title: "Title", Width: 40},
		{Title: "Messages", Width: 10},
		{Title: "Mode", Width: 12},
		{Title: "Exported", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Frame.GetBorderTopForeground()).
		BorderBottom(true).
		Bold(false)
	ts.Selected = ts.Selected.
		Foreground(theme.User.GetForeground()).
		Background(theme.User.GetBackground()).
		Bold(false)
	t.SetStyles(ts)

	vp := viewport.New(100, 20)
	vp.Style = theme.Frame

	return browseModel{
		table:    t,
		viewport: vp,
		renderer: renderer,
		theme:    theme,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-8, 3))
		m.viewport.Width = max(msg.Width-4, 20)
		m.viewport.Height = max(msg.Height-6, 5)

	case tea.KeyMsg:
		if m.preview {
			switch msg.String() {
			case "q", "esc":
				m.preview = false
				return m, nil
			case "ctrl+c":
				return m, tea.Quit
			}
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "enter":
			if cursor := m.table.Cursor(); cursor >= 0 && cursor < len(m.entries) {
				m.selected = &m.entries[cursor]
				m.preview = true
				m.viewport.SetContent(m.previewContent(*m.selected))
				m.viewport.GotoTop()
			}
			return m, nil
		}
		m.table, cmd = m.table.Update(msg)
		return m, cmd

	case BrowseMsg:
		m.ready = true
		m.entries = msg.Entries
		m.err = msg.Err

		rows := make([]table.Row, 0, len(m.entries))
		for _, e := range m.entries {
			rows = append(rows, table.Row{
				e.Title,
				fmt.Sprintf("%d", len(e.Messages)),
				string(e.Mode),
				e.Exported.Local().Format("2006-01-02 15:04"),
			})
		}
		m.table.SetRows(rows)
		return m, nil
	}

	return m, nil
}

// previewContent renders a transcript the way the chat screen shows it
func (m browseModel) previewContent(e transcript.Entry) string {
	var b strings.Builder
	for i, msg := range e.Messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if msg.Role == api.RoleUser {
			b.WriteString(m.theme.Label.Render("You") + "\n")
			b.WriteString(msg.Content)
			continue
		}
		b.WriteString(m.theme.Label.Render("Storybook") + "\n")
		b.WriteString(m.renderer.Reply(msg.Content, e.Mode))
	}
	return b.String()
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("Storybook Transcripts"))
	b.WriteString("\n\n")

	if m.err != nil {
		return errorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if !m.ready {
		return b.String()
	}

	if len(m.entries) == 0 {
		b.WriteString(helpStyle.Render("No saved transcripts yet. Use 'storybook chat --save FILE'."))
		b.WriteString("\n")
		return b.String()
	}

	if m.preview && m.selected != nil {
		b.WriteString(m.theme.Label.Render(m.selected.Title))
		b.WriteString("\n\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("↑/k up • ↓/j down • esc/q back"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.theme.Label.Render(fmt.Sprintf("Saved: %d", len(m.entries))))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("↑/k up • ↓/j down • enter open • q quit"))
	b.WriteString("\n")

	return b.String()
}
