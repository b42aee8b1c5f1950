package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/storybook/internal/state"
)

// Base palette
const (
	Background = "#2D2A2E"
	Foreground = "#FCFCFA"
	Parchment  = "#F5ECD7"
	Ink        = "#2B2118"

	Red    = "#FF6188" // Errors
	Orange = "#FC9867" // Warnings
	Green  = "#A9DC76" // Success

	Comment = "#727072" // Dim text, help
	Border  = "#5B595C" // Borders, separators
)

// HouseColors are a house's primary and secondary accents
type HouseColors struct {
	Primary   string
	Secondary string
}

// Houses maps each house to its colours
var Houses = map[state.House]HouseColors{
	state.Gryffindor: {Primary: "#AE0001", Secondary: "#EEBA30"},
	state.Slytherin:  {Primary: "#1A472A", Secondary: "#AAAAAA"},
	state.Ravenclaw:  {Primary: "#222F5B", Secondary: "#946B2D"},
	state.Hufflepuff: {Primary: "#FFDB00", Secondary: "#000000"},
}

// Common styles
var (
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
	DimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	HelpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
)

// Theme bundles the styles for one house and light/dark choice
type Theme struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Accent    lipgloss.Style
	Spinner   lipgloss.Style
	User      lipgloss.Style
	Assistant lipgloss.Style
	Frame     lipgloss.Style
	Text      lipgloss.Style

	// GlamourStyle names the glamour standard style matching the theme
	GlamourStyle string
}

// ForPreferences builds the theme for the saved house and theme
func ForPreferences(p *state.Preferences) Theme {
	colors, ok := Houses[p.House]
	if !ok {
		colors = Houses[state.Hufflepuff]
	}

	fg, glamourStyle := Foreground, "dark"
	if p.Theme == state.ThemeLight {
		fg, glamourStyle = Ink, "light"
	}

	// Hufflepuff's black secondary disappears on a dark terminal
	accent := colors.Secondary
	if p.Theme == state.ThemeDark && p.House == state.Hufflepuff {
		accent = colors.Primary
	}

	return Theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(accent)),
		Label: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colors.Secondary)),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color(accent)),
		Spinner: lipgloss.NewStyle().Foreground(lipgloss.Color(accent)),
		User: lipgloss.NewStyle().
			Foreground(lipgloss.Color(Foreground)).
			Background(lipgloss.Color(colors.Primary)).
			Padding(0, 1),
		Assistant: lipgloss.NewStyle().
			Foreground(lipgloss.Color(fg)).
			Padding(0, 1),
		Frame: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colors.Primary)).
			Padding(0, 1),
		Text:         lipgloss.NewStyle().Foreground(lipgloss.Color(fg)),
		GlamourStyle: glamourStyle,
	}
}
