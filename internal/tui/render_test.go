package tui

import (
	"testing"

	"github.com/gerunddev/storybook/internal/api"
)

func TestRendererReply(t *testing.T) {
	r := PlainRenderer(0)

	tests := []struct {
		name    string
		content string
		mode    api.ResponseMode
		want    string
	}{
		{
			name:    "structured reply in structured mode",
			content: "**Spells**\n- Lumos\n- Nox",
			mode:    api.ModeStructured,
			want:    "### Spells\n\n- Lumos\n- Nox",
		},
		{
			name:    "structured reply in freeform mode",
			content: "**Spells**\n- Lumos",
			mode:    api.ModeFreeform,
			want:    "**Spells**\n- Lumos",
		},
		{
			name:    "plain reply in structured mode",
			content: "Hello there",
			mode:    api.ModeStructured,
			want:    "Hello there",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Reply(tt.content, tt.mode); got != tt.want {
				t.Errorf("Reply() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRendererMarkdownFallback(t *testing.T) {
	r := PlainRenderer(40)
	if got := r.Markdown("### Title"); got != "### Title" {
		t.Errorf("Markdown() = %q, want source text", got)
	}
}

func TestNewRenderer(t *testing.T) {
	r := NewRenderer("dark", 60)
	if r.markdown == nil {
		t.Fatal("expected glamour renderer for dark style")
	}
	if r.width != 60 {
		t.Errorf("width = %d, want 60", r.width)
	}
}
