package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/storybook/internal/styles"
	"github.com/gerunddev/storybook/internal/summary"
)

var (
	helpStyle    = styles.HelpStyle
	successStyle = styles.SuccessStyle
	errorStyle   = styles.ErrorStyle
)

// LookupMsg is sent when a lookup completes
type LookupMsg struct {
	Summary *summary.Summary
	Err     error
}

// lookupModel is the Bubble Tea model for the lookup progress display
type lookupModel struct {
	loading  Loading
	target   string
	started  time.Time
	complete bool
	canceled bool
	summary  *summary.Summary
	duration time.Duration
	err      error
}

// InitLookupModel creates a new lookup progress model
func InitLookupModel(kind summary.Kind, target string, theme styles.Theme) lookupModel {
	return lookupModel{
		loading: NewLoading(LoadingSummary, theme.Spinner),
		target:  fmt.Sprintf("%s: %s", kind, target),
		started: time.Now(),
	}
}

func (m lookupModel) Init() tea.Cmd {
	return m.loading.Tick
}

func (m lookupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.canceled = true
			return m, tea.Quit
		}

	case LookupMsg:
		m.complete = true
		m.summary = msg.Summary
		m.err = msg.Err
		m.duration = time.Since(m.started)
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		m.loading, cmd = m.loading.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m lookupModel) View() string {
	if m.complete {
		if m.err != nil {
			return errorStyle.Render("✗ Lookup failed: "+m.err.Error()) + "\n"
		}
		return successStyle.Render("✓ "+m.target) + " " +
			helpStyle.Render(fmt.Sprintf("(%v)", m.duration.Round(time.Millisecond))) + "\n"
	}
	if m.canceled {
		return ""
	}

	return fmt.Sprintf("\n%s\n\n%s\n", m.loading.View(), helpStyle.Render("q cancel"))
}

// LookupResult extracts the finished lookup from the model returned by the
// program. done is false when the user cancelled.
func LookupResult(model tea.Model) (s *summary.Summary, done bool, err error) {
	m, ok := model.(lookupModel)
	if !ok {
		return nil, false, nil
	}
	return m.summary, m.complete, m.err
}
