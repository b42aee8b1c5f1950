package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// BackendURLEnv overrides the configured backend URL when set
const BackendURLEnv = "STORYBOOK_BACKEND_URL"

// Config represents the storybook configuration
type Config struct {
	BackendURL string        `json:"backend_url"`
	LogFile    string        `json:"log_file"`
	LogLevel   string        `json:"log_level,omitempty"`
	Timeout    time.Duration `json:"-"` // Custom JSON handling below
	WordWrap   int           `json:"word_wrap,omitempty"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		BackendURL: "https://harrybackend.onrender.com",
		LogFile:    filepath.Join(xdg.StateHome, "storybook", "storybook.log"),
		LogLevel:   "info",
		Timeout:    60 * time.Second,
		WordWrap:   80,
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to XDG if home dir unavailable
		return filepath.Join(xdg.ConfigHome, "storybook", "config.json")
	}
	return filepath.Join(home, ".config", "storybook", "config.json")
}

// PreferencesPath returns the path to the saved theme and mode preferences
// Can be overridden for testing
var PreferencesPath = func() string {
	return filepath.Join(xdg.DataHome, "storybook", "preferences.json")
}

// TranscriptDir returns the directory chat transcripts are saved to by default
// Can be overridden for testing
var TranscriptDir = func() string {
	return filepath.Join(xdg.DataHome, "storybook", "transcripts")
}

// rawConfig mirrors Config with the timeout as a duration string
type rawConfig struct {
	BackendURL string `json:"backend_url"`
	LogFile    string `json:"log_file"`
	LogLevel   string `json:"log_level,omitempty"`
	Timeout    string `json:"timeout"`
	WordWrap   int    `json:"word_wrap,omitempty"`
}

// Load reads configuration from the config file, applying environment
// overrides. A missing file yields the defaults.
func Load() (*Config, error) {
	cfg, err := loadFile(ConfigPath())
	if err != nil {
		return nil, err
	}

	if override := os.Getenv(BackendURLEnv); override != "" {
		cfg.BackendURL = override
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Expand paths
	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return default config if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := DefaultConfig()
	if raw.BackendURL != "" {
		cfg.BackendURL = raw.BackendURL
	}
	if raw.LogFile != "" {
		cfg.LogFile = raw.LogFile
	}
	if raw.LogLevel != "" {
		cfg.LogLevel = raw.LogLevel
	}
	if raw.WordWrap != 0 {
		cfg.WordWrap = raw.WordWrap
	}

	// Parse timeout duration
	if raw.Timeout != "" {
		timeout, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout format '%s': %w", raw.Timeout, err)
		}
		cfg.Timeout = timeout
	}

	return cfg, nil
}

// Save writes configuration to the config file
func (c *Config) Save() error {
	configPath := ConfigPath()
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	raw := rawConfig{
		BackendURL: c.BackendURL,
		LogFile:    c.LogFile,
		LogLevel:   c.LogLevel,
		Timeout:    c.Timeout.String(),
		WordWrap:   c.WordWrap,
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return fmt.Errorf("backend_url cannot be empty")
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("backend_url must be an absolute http(s) URL, got '%s'", c.BackendURL)
	}
	if c.LogFile == "" {
		return fmt.Errorf("log_file cannot be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.WordWrap < 0 {
		return fmt.Errorf("word_wrap cannot be negative")
	}

	validLevels := map[string]bool{
		"":      true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level '%s': must be one of: debug, info, warn, error", c.LogLevel)
	}

	return nil
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	return nil
}

// ExpandPath expands ~ to home directory and converts to absolute path
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	// Expand ~ to home directory
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	// Convert to absolute path
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
