// Package transcript saves chat sessions as Markdown files with YAML front
// matter, and reads them back.
package transcript

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/gerunddev/storybook/internal/api"
)

const frontMatterDelimiter = "---"

// ErrNoFrontMatter is returned when a file does not open with front matter
var ErrNoFrontMatter = errors.New("transcript has no front matter")

// Transcript is a saved conversation
type Transcript struct {
	ID       string           `yaml:"id"`
	Title    string           `yaml:"title"`
	House    string           `yaml:"house,omitempty"`
	Mode     api.ResponseMode `yaml:"mode"`
	Exported time.Time        `yaml:"exported"`
	Messages []api.Message    `yaml:"-"`
}

// New creates a transcript for messages with a fresh ID
func New(title, house string, mode api.ResponseMode, messages []api.Message) *Transcript {
	return &Transcript{
		ID:       uuid.New().String(),
		Title:    title,
		House:    house,
		Mode:     mode,
		Exported: time.Now().UTC().Truncate(time.Second),
		Messages: messages,
	}
}

var (
	headingPattern = regexp.MustCompile(`^## (User|Assistant)$`)
	metaPattern    = regexp.MustCompile(`^<!-- id: (\S+), timestamp: (\d+) -->$`)
)

var roleHeadings = map[api.Role]string{
	api.RoleUser:      "User",
	api.RoleAssistant: "Assistant",
}

// Render produces the Markdown form of t
func Render(t *Transcript) (string, error) {
	meta, err := yaml.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("failed to marshal front matter: %w", err)
	}

	var b strings.Builder
	b.WriteString(frontMatterDelimiter + "\n")
	b.Write(meta)
	b.WriteString(frontMatterDelimiter + "\n")

	for _, m := range t.Messages {
		heading, ok := roleHeadings[m.Role]
		if !ok {
			return "", fmt.Errorf("message %s has unknown role '%s'", m.ID, m.Role)
		}
		b.WriteString("\n## " + heading + "\n")
		b.WriteString(fmt.Sprintf("<!-- id: %s, timestamp: %d -->\n\n", m.ID, m.Timestamp))
		b.WriteString(m.Content + "\n")
	}

	return b.String(), nil
}

// Parse reads the Markdown form produced by Render
func Parse(content string) (*Transcript, error) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != frontMatterDelimiter {
		return nil, ErrNoFrontMatter
	}

	// Find end of front matter
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontMatterDelimiter {
			end = i
			break
		}
	}
	if end == -1 {
		return nil, ErrNoFrontMatter
	}

	var t Transcript
	if err := yaml.Unmarshal([]byte(strings.Join(lines[1:end], "\n")), &t); err != nil {
		return nil, fmt.Errorf("failed to parse front matter: %w", err)
	}

	var current *api.Message
	var body []string
	flush := func() {
		if current != nil {
			current.Content = messageContent(body)
			t.Messages = append(t.Messages, *current)
		}
		body = nil
	}

	for i := end + 1; i < len(lines); i++ {
		line := lines[i]
		if h := headingPattern.FindStringSubmatch(line); h != nil && i+1 < len(lines) {
			if meta := metaPattern.FindStringSubmatch(lines[i+1]); meta != nil {
				flush()
				ts, err := strconv.ParseInt(meta[2], 10, 64)
				if err != nil {
					return nil, fmt.Errorf("invalid timestamp on line %d: %w", i+2, err)
				}
				role := api.RoleUser
				if h[1] == "Assistant" {
					role = api.RoleAssistant
				}
				current = &api.Message{ID: meta[1], Role: role, Timestamp: ts}
				i++
				continue
			}
		}
		body = append(body, line)
	}
	flush()

	return &t, nil
}

// messageContent recovers a message body from the lines Render wrote: one
// blank line after the marker, the content, and the line break closing it.
func messageContent(lines []string) string {
	if len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// Write saves t to path, creating parent directories
func Write(path string, t *Transcript) error {
	content, err := Render(t)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create transcript directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write transcript: %w", err)
	}
	return nil
}

// Read loads a transcript from path
func Read(path string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	return Parse(string(data))
}

// Entry is a transcript found on disk
type Entry struct {
	Path string
	*Transcript
}

// List reads every Markdown transcript in dir, newest export first. Files
// that are not transcripts are skipped; a missing dir is an empty library.
func List(dir string) ([]Entry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read transcript directory: %w", err)
	}

	var entries []Entry
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != ".md" {
			continue
		}
		path := filepath.Join(dir, f.Name())
		t, err := Read(path)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Path: path, Transcript: t})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Exported.After(entries[j].Exported)
	})
	return entries, nil
}
