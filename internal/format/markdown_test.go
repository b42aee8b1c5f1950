package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain",
			input:    "Just a **reply**.",
			expected: "Just a **reply**.",
		},
		{
			name:     "titled paragraph",
			input:    "**Dobby**\nA free elf.",
			expected: "### Dobby\n\nA free elf.",
		},
		{
			name:     "title only",
			input:    "**Dobby**",
			expected: "### Dobby",
		},
		{
			name:     "bullets with intro",
			input:    "**Spells**\nCommon ones:\n- Lumos\n- Nox",
			expected: "### Spells\n\nCommon ones:\n\n- Lumos\n- Nox",
		},
		{
			name:     "sections",
			input:    "first\n\n**Second**\n- a",
			expected: "first\n\n### Second\n\n- a",
		},
		{
			name:     "heading marker in plain section",
			input:    "**T**\nx\n\nplain\n# big",
			expected: "### T\n\nx\n\nplain\n\\# big",
		},
		{
			name:     "bullet lookalikes in plain section",
			input:    "- a\n- b",
			expected: "\\- a\n\\- b",
		},
		{
			name:     "bold across a line break stays literal",
			input:    "**a\nb**",
			expected: "\\*\\*a\nb\\*\\*",
		},
		{
			name:     "bold across carriage return stays literal",
			input:    "x **a\rb**",
			expected: "x \\*\\*a\rb\\*\\*",
		},
		{
			name:     "empty bold span is dropped",
			input:    "a****b",
			expected: "ab",
		},
		{
			name:     "inline syntax in text and spans",
			input:    "**Note**\nuse `code`, [links](x) & <b>tags</b> with **snake_case**",
			expected: "### Note\n\nuse \\`code\\`, \\[links\\](x) \\& \\<b\\>tags\\</b\\> with **snake\\_case**",
		},
		{
			name:     "ordered list and indentation in items",
			input:    "**Steps**\n- 1. first\n-    indented",
			expected: "### Steps\n\n- 1\\. first\n- indented",
		},
		{
			name:     "title is escaped",
			input:    "**#1 _seeker_**\nHarry",
			expected: "### \\#1 \\_seeker\\_\n\nHarry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Markdown(Parse(tt.input)))
		})
	}
}
