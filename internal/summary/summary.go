// Package summary turns encyclopedia lookups into displayable entries.
package summary

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gerunddev/storybook/internal/api"
	"github.com/gerunddev/storybook/internal/format"
)

// Kind is the category of thing being looked up
type Kind string

const (
	KindChapter   Kind = "chapter"
	KindCharacter Kind = "character"
	KindEvent     Kind = "event"
	KindLocation  Kind = "location"
	KindSpell     Kind = "spell"
	KindHouse     Kind = "house"
)

// Kinds lists every lookup kind in menu order
var Kinds = []Kind{KindCharacter, KindChapter, KindEvent, KindLocation, KindSpell, KindHouse}

// ParseKind validates a kind name, case-insensitively
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown summary type '%s': must be one of: character, chapter, event, location, spell, house", s)
}

// Source is a book and chapter citation
type Source struct {
	Book    int
	Chapter int
}

func (s Source) String() string {
	return fmt.Sprintf("Book %d, Chapter %d", s.Book, s.Chapter)
}

// Summary is a rendered-ready encyclopedia entry
type Summary struct {
	Title   string
	Content string
	Sources []Source
}

var (
	titlePattern  = regexp.MustCompile(`\*\*(.*?)\*\*`)
	sourcePattern = regexp.MustCompile(`Book (\d+), Chapter (\d+)`)
)

// NewRequest builds the backend request for a lookup
func NewRequest(kind Kind, target string, mode api.ResponseMode) *api.SummaryRequest {
	return &api.SummaryRequest{
		Type:         string(kind),
		Target:       target,
		ResponseMode: mode,
	}
}

// FromResponse builds a Summary from the backend reply. The first line of
// the reply carries the title in bold; when it does not, the title falls back
// to "<kind>: <target>".
func FromResponse(req *api.SummaryRequest, resp *api.ChatResponse) *Summary {
	lines := strings.Split(resp.Message.Content, "\n")

	title := fmt.Sprintf("%s: %s", req.Type, req.Target)
	if m := titlePattern.FindStringSubmatch(lines[0]); m != nil {
		title = m[1]
	}

	sources := make([]Source, 0, len(resp.Sources))
	for _, s := range resp.Sources {
		sources = append(sources, ParseSource(s))
	}

	return &Summary{
		Title:   title,
		Content: strings.TrimSpace(strings.Join(lines[1:], "\n")),
		Sources: sources,
	}
}

// ParseSource reads a "Book N, Chapter M" citation. Citations that do not
// match point at book 1, chapter 1.
func ParseSource(s string) Source {
	m := sourcePattern.FindStringSubmatch(s)
	if m == nil {
		return Source{Book: 1, Chapter: 1}
	}
	book, err := strconv.Atoi(m[1])
	if err != nil {
		book = 1
	}
	chapter, err := strconv.Atoi(m[2])
	if err != nil {
		chapter = 1
	}
	return Source{Book: book, Chapter: chapter}
}

// Paragraphs splits freeform content on blank lines
func Paragraphs(content string) []string {
	return strings.Split(content, "\n\n")
}

// Structured reports whether the entry should be shown with section formatting
func (s *Summary) Structured(mode api.ResponseMode) bool {
	return mode == api.ModeStructured && format.IsStructured(s.Content)
}

// Markdown returns the entry body as Markdown for terminal rendering
func (s *Summary) Markdown(mode api.ResponseMode) string {
	if s.Structured(mode) {
		return format.Markdown(format.Parse(s.Content))
	}
	return strings.Join(Paragraphs(s.Content), "\n\n")
}

// HTML returns the entry body as markup for a web surface. Freeform content
// is wrapped paragraph by paragraph without further interpretation.
func (s *Summary) HTML(mode api.ResponseMode) string {
	if s.Structured(mode) {
		return format.Format(s.Content)
	}
	paragraphs := Paragraphs(s.Content)
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		out = append(out, `<p class="mb-2">`+p+`</p>`)
	}
	return strings.Join(out, "\n")
}
