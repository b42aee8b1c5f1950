package format

import (
	"strings"
)

const (
	sectionOpen  = `<div class="section-container mb-4">`
	sectionClose = `</div>`
	headingOpen  = `<h3 class="font-bold underline mb-2">`
	listOpen     = `<ul class="list-disc pl-5 space-y-1 mb-2">`
)

// Render emits HTML for blocks, one block per line, in order.
func Render(blocks []Block) string {
	rendered := make([]string, 0, len(blocks))
	for _, block := range blocks {
		rendered = append(rendered, renderBlock(block))
	}
	return strings.Join(rendered, "\n")
}

func renderBlock(block Block) string {
	var b strings.Builder

	switch blk := block.(type) {
	case PlainParagraph:
		b.WriteString(`<p class="mb-3">` + emphasize(blk.Text) + `</p>`)

	case TitledParagraph:
		b.WriteString(sectionOpen)
		writeHeading(&b, blk.Title)
		b.WriteString("<p>" + emphasize(blk.Body) + "</p>")
		b.WriteString(sectionClose)

	case TitledBulletList:
		b.WriteString(sectionOpen)
		writeHeading(&b, blk.Title)
		if blk.Intro != "" {
			b.WriteString(`<p class="mb-2">` + emphasize(blk.Intro) + `</p>`)
		}
		b.WriteString(listOpen)
		for _, item := range blk.Items {
			b.WriteString(`<li class="mb-1">` + emphasize(item) + `</li>`)
		}
		b.WriteString("</ul>")
		b.WriteString(sectionClose)
	}

	return b.String()
}

// writeHeading writes the title verbatim; its markers were consumed by Parse.
func writeHeading(b *strings.Builder, title string) {
	b.WriteString(headingOpen)
	b.WriteString(title)
	b.WriteString("</h3>")
}
