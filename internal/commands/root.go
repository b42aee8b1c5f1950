// Package commands wires the storybook CLI together.
package commands

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gerunddev/storybook/internal/api"
	"github.com/gerunddev/storybook/internal/config"
	"github.com/gerunddev/storybook/internal/logger"
	"github.com/gerunddev/storybook/internal/state"
)

// app holds what every subcommand needs once the root pre-run has loaded it
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	prefs    *state.Preferences
	client   *api.Client
	closeLog func()
}

// Execute builds the command tree and runs it. The log file opened during
// setup is closed whether or not the command succeeds.
func Execute(ctx context.Context, version string) error {
	root, a := newRootCommand(version)
	return execute(ctx, root, a)
}

func execute(ctx context.Context, root *cobra.Command, a *app) error {
	defer a.close()
	return root.ExecuteContext(ctx)
}

// newRootCommand builds the storybook command tree
func newRootCommand(version string) (*cobra.Command, *app) {
	a := &app{log: logger.Discard()}

	root := &cobra.Command{
		Use:   "storybook",
		Short: "Chat with, and look things up in, the wizarding world",
		Long: `storybook is a terminal client for the storybook reference backend.

Ask questions, look up characters, spells and places, and render structured
replies as HTML or Markdown.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.AddCommand(
		newChatCommand(a),
		newAskCommand(a),
		newSummaryCommand(a),
		newFormatCommand(),
		newHealthCommand(a),
		newClearCommand(a),
		newThemeCommand(a),
		newShowCommand(a),
		newTranscriptsCommand(a),
		newVersionCommand(version),
	)

	return root, a
}

// close releases the log file, if one was opened
func (a *app) close() {
	if a.closeLog != nil {
		a.closeLog()
		a.closeLog = nil
	}
	a.log = logger.Discard()
}

// setup loads .env, configuration, logging and preferences
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	// A missing .env is fine
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	if cfg.LogFile != "" {
		l, cleanup, err := logger.NewFileLogger(cfg.LogFile, logger.ParseLevel(cfg.LogLevel))
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "Warning: failed to open log file:", err)
		} else {
			a.log = l
			a.closeLog = cleanup
		}
	}
	a.log.ConfigLoaded(cfg.BackendURL, cfg.Timeout)

	prefs, err := state.Load(config.PreferencesPath())
	if err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}
	a.prefs = prefs

	a.client = api.NewClient(cfg.BackendURL, cfg.Timeout, a.log)
	return nil
}

// savePreferences persists a.prefs and logs the change
func (a *app) savePreferences() error {
	if err := a.prefs.Save(config.PreferencesPath()); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	a.log.PreferencesSaved(string(a.prefs.Theme), string(a.prefs.House))
	return nil
}

func newVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "storybook v%s\n", version)
		},
	}
}
