package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeStripsScripts(t *testing.T) {
	out := Sanitize(Format("Mischief <script>alert('managed')</script>"))

	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "alert")
	assert.Contains(t, out, `<p class="mb-3">`)
	assert.Contains(t, out, "Mischief")
}

func TestSanitizeStripsEventHandlers(t *testing.T) {
	out := Sanitize(Format("**Title**\n- <span onclick=\"steal()\">Lumos</span>"))

	assert.NotContains(t, out, "onclick")
	assert.Contains(t, out, "Lumos")
}

func TestSanitizeKeepsFormatterMarkup(t *testing.T) {
	out := Sanitize(Format("**Spells**\nIntro with **bold**.\n- Lumos\n- Nox"))

	assert.Contains(t, out, `<div class="section-container mb-4">`)
	assert.Contains(t, out, `<h3 class="font-bold underline mb-2">Spells</h3>`)
	assert.Contains(t, out, `<p class="mb-2">Intro with <strong>bold</strong>.</p>`)
	assert.Contains(t, out, `<ul class="list-disc pl-5 space-y-1 mb-2">`)
	assert.Contains(t, out, `<li class="mb-1">Nox</li>`)
}
