package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LoadingKind selects which set of quotes the loading decoration shows
type LoadingKind int

const (
	LoadingChat LoadingKind = iota
	LoadingSummary
)

// bookDuration is how long each book is shown while waiting
const bookDuration = 4 * time.Second

type loadingBook struct {
	title        string
	chatQuote    string
	summaryQuote string
}

var loadingBooks = []loadingBook{
	{
		title:        "Philosopher's Stone",
		chatQuote:    "Searching for the Philosopher's Stone...",
		summaryQuote: "Reading through 'Hogwarts: A History'...",
	},
	{
		title:        "Chamber of Secrets",
		chatQuote:    "Following the spiders into the Forbidden Forest...",
		summaryQuote: "Exploring the Chamber of Secrets...",
	},
	{
		title:        "Prisoner of Azkaban",
		chatQuote:    "Using the Time-Turner to find answers...",
		summaryQuote: "Consulting the Marauder's Map...",
	},
	{
		title:        "Goblet of Fire",
		chatQuote:    "Looking into the Pensieve for memories...",
		summaryQuote: "Searching through the Triwizard Tournament records...",
	},
}

var loadingSuccess = map[LoadingKind]string{
	LoadingChat:    "Eureka! The answer has been revealed by the Mirror of Erised!",
	LoadingSummary: "Found it in the Hogwarts Library! Now serving your magical knowledge...",
}

// LoadingStage returns what to show after waiting for elapsed: the book
// number (0 once every book has been shown) and the line of text
func LoadingStage(kind LoadingKind, elapsed time.Duration) (int, string) {
	if elapsed < 0 {
		elapsed = 0
	}
	stage := int(elapsed / bookDuration)
	if stage >= len(loadingBooks) {
		return 0, loadingSuccess[kind]
	}
	book := loadingBooks[stage]
	if kind == LoadingSummary {
		return stage + 1, book.summaryQuote
	}
	return stage + 1, book.chatQuote
}

// Loading is the animated decoration shown while a request is in flight
type Loading struct {
	spinner spinner.Model
	kind    LoadingKind
	started time.Time
	now     func() time.Time
	style   lipgloss.Style
}

// NewLoading creates a loading decoration started now
func NewLoading(kind LoadingKind, style lipgloss.Style) Loading {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = style

	return Loading{
		spinner: s,
		kind:    kind,
		started: time.Now(),
		now:     time.Now,
		style:   style,
	}
}

// Restart resets the book sequence
func (l Loading) Restart() Loading {
	l.started = l.now()
	return l
}

// Tick starts the spinner animation
func (l Loading) Tick() tea.Msg {
	return l.spinner.Tick()
}

// Update advances the spinner
func (l Loading) Update(msg tea.Msg) (Loading, tea.Cmd) {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

func (l Loading) View() string {
	book, quote := LoadingStage(l.kind, l.now().Sub(l.started))
	if book == 0 {
		return fmt.Sprintf("%s %s", l.spinner.View(), l.style.Render(quote))
	}
	return fmt.Sprintf("%s %s %s",
		l.spinner.View(),
		helpStyle.Render(fmt.Sprintf("Book %d: %s", book, loadingBooks[book-1].title)),
		l.style.Render(quote))
}
