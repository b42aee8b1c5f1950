package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func TestLoadingStage(t *testing.T) {
	tests := []struct {
		name     string
		kind     LoadingKind
		elapsed  time.Duration
		wantBook int
		wantText string
	}{
		{"chat start", LoadingChat, 0, 1, "Searching for the Philosopher's Stone..."},
		{"summary start", LoadingSummary, 0, 1, "Reading through 'Hogwarts: A History'..."},
		{"negative elapsed", LoadingChat, -time.Second, 1, "Searching for the Philosopher's Stone..."},
		{"second book", LoadingChat, 5 * time.Second, 2, "Following the spiders into the Forbidden Forest..."},
		{"last book", LoadingSummary, 15 * time.Second, 4, "Searching through the Triwizard Tournament records..."},
		{"chat done", LoadingChat, 16 * time.Second, 0, "Eureka! The answer has been revealed by the Mirror of Erised!"},
		{"summary done", LoadingSummary, time.Minute, 0, "Found it in the Hogwarts Library! Now serving your magical knowledge..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book, text := LoadingStage(tt.kind, tt.elapsed)
			if book != tt.wantBook {
				t.Errorf("book = %d, want %d", book, tt.wantBook)
			}
			if text != tt.wantText {
				t.Errorf("text = %q, want %q", text, tt.wantText)
			}
		})
	}
}

func TestLoadingView(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start

	l := NewLoading(LoadingChat, lipgloss.NewStyle())
	l.now = func() time.Time { return now }
	l = l.Restart()

	if view := l.View(); !strings.Contains(view, "Book 1: Philosopher's Stone") {
		t.Errorf("View() = %q, want first book", view)
	}

	now = start.Add(9 * time.Second)
	if view := l.View(); !strings.Contains(view, "Book 3: Prisoner of Azkaban") {
		t.Errorf("View() = %q, want third book", view)
	}

	now = start.Add(30 * time.Second)
	view := l.View()
	if strings.Contains(view, "Book") {
		t.Errorf("View() = %q, want no book once finished", view)
	}
	if !strings.Contains(view, "Mirror of Erised") {
		t.Errorf("View() = %q, want success line", view)
	}
}
