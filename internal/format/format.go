// Package format turns the backend's structured replies into display markup.
//
// The backend writes replies in a narrow convention: blank-line separated
// sections, each optionally opened by a **bold** title and followed either by
// free text or by a "- " bullet list. Anything outside that convention falls
// back to a plain paragraph. This is not a markdown implementation.
//
// Format performs no escaping of the reply text. The emitted markup is meant
// to be inserted verbatim, so callers must either trust the backend or pass
// the result through Sanitize.
package format

import (
	"strings"
)

const (
	sectionDelimiter = "\n\n"
	bulletMarker     = "\n- "
)

// Block is one classified section of a reply.
type Block interface {
	isBlock()
}

// PlainParagraph is a section without a leading bold title.
type PlainParagraph struct {
	Text string
}

// TitledParagraph is a titled section whose body has no bullet markers.
type TitledParagraph struct {
	Title string
	Body  string
}

// TitledBulletList is a titled section whose body contains bullet markers.
// Intro is empty when no text precedes the first bullet.
type TitledBulletList struct {
	Title string
	Intro string
	Items []string
}

func (PlainParagraph) isBlock()   {}
func (TitledParagraph) isBlock()  {}
func (TitledBulletList) isBlock() {}

// IsStructured reports whether raw contains at least one bold span with
// content. Callers render text as-is when it returns false.
func IsStructured(raw string) bool {
	from := 0
	for {
		start, end, ok := findBold(raw, from)
		if !ok {
			return false
		}
		if end-start > 2*len(boldMarker) {
			return true
		}
		// The empty span's closer may open the next one
		from = end - len(boldMarker)
	}
}

// Format converts raw reply text into HTML markup. It never fails: input that
// does not follow the convention degrades to plain paragraphs.
func Format(raw string) string {
	return Render(Parse(raw))
}

// Parse splits raw into sections and classifies each one, preserving order.
// Block text is kept verbatim; inline bold spans are resolved by the renderer.
func Parse(raw string) []Block {
	sections := strings.Split(raw, sectionDelimiter)
	blocks := make([]Block, 0, len(sections))
	for _, section := range sections {
		blocks = append(blocks, classify(section))
	}
	return blocks
}

func classify(section string) Block {
	start, end, ok := findBold(section, 0)
	if !ok || start != 0 {
		return PlainParagraph{Text: section}
	}

	title := section[len(boldMarker) : end-len(boldMarker)]
	body := strings.TrimSpace(section[end:])

	intro, items, hasBullets := splitBullets(body)
	if !hasBullets {
		return TitledParagraph{Title: title, Body: body}
	}
	return TitledBulletList{Title: title, Intro: intro, Items: items}
}

// splitBullets breaks body on bullet markers. The body is read as if it began
// on a fresh line, so a body that opens with "- " has an empty intro.
func splitBullets(body string) (intro string, items []string, ok bool) {
	lined := "\n" + body
	if !strings.Contains(lined, bulletMarker) {
		return "", nil, false
	}

	parts := strings.Split(lined, bulletMarker)
	items = make([]string, 0, len(parts)-1)
	for _, part := range parts[1:] {
		// Empty items are kept; only the intro is dropped when empty.
		items = append(items, strings.TrimSpace(part))
	}
	return strings.TrimSpace(parts[0]), items, true
}
