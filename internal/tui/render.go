package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/storybook/internal/api"
	"github.com/gerunddev/storybook/internal/format"
)

// Renderer turns reply text into terminal output
type Renderer struct {
	markdown *glamour.TermRenderer
	width    int
}

// NewRenderer creates a renderer using a glamour standard style ("dark" or
// "light"). If glamour cannot be initialised, replies are shown as plain text.
func NewRenderer(glamourStyle string, width int) *Renderer {
	md, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(glamourStyle),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		md = nil
	}
	return &Renderer{markdown: md, width: width}
}

// PlainRenderer creates a renderer that never styles output, for pipes
func PlainRenderer(width int) *Renderer {
	return &Renderer{width: width}
}

// Reply renders a backend reply. Structured formatting applies only in
// structured mode and only when the reply actually has bold spans; everything
// else is shown as-is.
func (r *Renderer) Reply(content string, mode api.ResponseMode) string {
	if mode == api.ModeStructured && format.IsStructured(content) {
		return r.Markdown(format.Markdown(format.Parse(content)))
	}
	return r.Plain(content)
}

// Markdown renders Markdown, falling back to the source text
func (r *Renderer) Markdown(md string) string {
	if r.markdown == nil {
		return md
	}
	rendered, err := r.markdown.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(rendered, "\n")
}

// Plain wraps text to the renderer width without interpreting it
func (r *Renderer) Plain(text string) string {
	if r.width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(r.width).Render(text)
}
