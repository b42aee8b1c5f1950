package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
		Prefix:          "storybook",
	})
	return &Logger{Logger: l}
}

// NewFileLogger creates a logger that appends to a file.
// The returned cleanup closes the file.
func NewFileLogger(path string, level log.Level) (*Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	return NewWithLevel(f, level), cleanup, nil
}

// ParseLevel maps a config level name to a log level, defaulting to info
func ParseLevel(name string) log.Level {
	level, err := log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// RequestStarted logs an outgoing backend request
func (l *Logger) RequestStarted(method, endpoint string) {
	l.Debug("request started",
		"method", method,
		"endpoint", endpoint)
}

// RequestCompleted logs a backend response
func (l *Logger) RequestCompleted(endpoint string, status int, duration time.Duration) {
	l.Info("request completed",
		"endpoint", endpoint,
		"status", status,
		"duration", duration.Round(time.Millisecond))
}

// RequestFailed logs a failed backend request
func (l *Logger) RequestFailed(endpoint string, err error) {
	l.Error("request failed",
		"endpoint", endpoint,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(backendURL string, timeout time.Duration) {
	l.Debug("config loaded",
		"backend_url", backendURL,
		"timeout", timeout)
}

// PreferencesSaved logs a preference change
func (l *Logger) PreferencesSaved(theme, house string) {
	l.Info("preferences saved",
		"theme", theme,
		"house", house)
}

// TranscriptSaved logs a written transcript
func (l *Logger) TranscriptSaved(path string, messages int) {
	l.Info("transcript saved",
		"path", path,
		"messages", messages)
}
