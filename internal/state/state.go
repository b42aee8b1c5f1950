package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gerunddev/storybook/internal/api"
)

// Theme is the light or dark colour scheme
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// House selects the accent palette
type House string

const (
	Gryffindor House = "gryffindor"
	Slytherin  House = "slytherin"
	Ravenclaw  House = "ravenclaw"
	Hufflepuff House = "hufflepuff"
)

// Houses lists every house in display order
var Houses = []House{Gryffindor, Slytherin, Ravenclaw, Hufflepuff}

// Preferences represents the saved presentation choices
type Preferences struct {
	Theme       Theme            `json:"theme"`
	House       House            `json:"house"`
	ChatMode    api.ResponseMode `json:"chat_mode"`
	SummaryMode api.ResponseMode `json:"summary_mode"`
}

// NewPreferences returns the defaults: dark theme, Hufflepuff, freeform chat
// and structured summaries
func NewPreferences() *Preferences {
	return &Preferences{
		Theme:       ThemeDark,
		House:       Hufflepuff,
		ChatMode:    api.ModeFreeform,
		SummaryMode: api.ModeStructured,
	}
}

// Load reads preferences from path. A missing file yields the defaults and
// unknown values are replaced by their defaults.
func Load(path string) (*Preferences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewPreferences(), nil
		}
		return nil, err
	}

	var prefs Preferences
	if err := json.Unmarshal(data, &prefs); err != nil {
		return nil, fmt.Errorf("failed to parse preferences: %w", err)
	}

	defaults := NewPreferences()
	if prefs.Theme != ThemeLight && prefs.Theme != ThemeDark {
		prefs.Theme = defaults.Theme
	}
	if _, err := ParseHouse(string(prefs.House)); err != nil {
		prefs.House = defaults.House
	}
	if !prefs.ChatMode.Valid() {
		prefs.ChatMode = defaults.ChatMode
	}
	if !prefs.SummaryMode.Valid() {
		prefs.SummaryMode = defaults.SummaryMode
	}

	return &prefs, nil
}

// Save writes preferences to path
func (p *Preferences) Save(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write preferences file: %w", err)
	}

	return nil
}

// ParseHouse validates a house name, case-insensitively
func ParseHouse(name string) (House, error) {
	h := House(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Houses {
		if h == known {
			return h, nil
		}
	}
	return "", fmt.Errorf("unknown house '%s': must be one of: gryffindor, slytherin, ravenclaw, hufflepuff", name)
}

// SetHouse changes the house
func (p *Preferences) SetHouse(name string) error {
	h, err := ParseHouse(name)
	if err != nil {
		return err
	}
	p.House = h
	return nil
}

// SetTheme changes the theme
func (p *Preferences) SetTheme(name string) error {
	switch Theme(strings.ToLower(name)) {
	case ThemeLight:
		p.Theme = ThemeLight
	case ThemeDark:
		p.Theme = ThemeDark
	default:
		return fmt.Errorf("unknown theme '%s': must be light or dark", name)
	}
	return nil
}

// ToggleTheme flips between light and dark
func (p *Preferences) ToggleTheme() {
	if p.Theme == ThemeLight {
		p.Theme = ThemeDark
	} else {
		p.Theme = ThemeLight
	}
}

// ThemeSwitchLabel is the label of the control that switches theme: Nox
// turns the lights off, Lumos turns them on
func (p *Preferences) ThemeSwitchLabel() string {
	if p.Theme == ThemeLight {
		return "Nox"
	}
	return "Lumos"
}
