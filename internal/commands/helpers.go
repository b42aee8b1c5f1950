package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/gerunddev/storybook/internal/api"
	"github.com/gerunddev/storybook/internal/styles"
	"github.com/gerunddev/storybook/internal/tui"
)

// isTerminal reports whether w is an interactive terminal
func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printer writes to a command's output, styling only on a terminal
type printer struct {
	w      io.Writer
	styled bool
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w, styled: isTerminal(w)}
}

func (p *printer) paint(style lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return style.Render(text)
}

func (p *printer) Line(text string) {
	fmt.Fprintln(p.w, text)
}

func (p *printer) Styled(style lipgloss.Style, text string) {
	fmt.Fprintln(p.w, p.paint(style, text))
}

func (p *printer) Success(text string) {
	p.Styled(styles.SuccessStyle, "✓ "+text)
}

func (p *printer) Dim(text string) {
	p.Styled(styles.DimStyle, text)
}

// renderer picks glamour for terminals and plain Markdown for pipes
func (a *app) renderer(p *printer) *tui.Renderer {
	if p.styled {
		return tui.NewRenderer(styles.ForPreferences(a.prefs).GlamourStyle, a.cfg.WordWrap)
	}
	return tui.PlainRenderer(0)
}

// resolveMode reads a --mode flag value, falling back when it is empty
func resolveMode(value string, fallback api.ResponseMode) (api.ResponseMode, error) {
	if value == "" {
		return fallback, nil
	}
	mode := api.ResponseMode(strings.ToLower(value))
	if !mode.Valid() {
		return "", fmt.Errorf("invalid mode '%s': must be freeform or structured", value)
	}
	return mode, nil
}

// readInput returns the contents of path, or of stdin when path is empty or "-"
func readInput(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
