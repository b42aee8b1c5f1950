package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gerunddev/storybook/internal/api"
	"github.com/gerunddev/storybook/internal/config"
	"github.com/gerunddev/storybook/internal/format"
	"github.com/gerunddev/storybook/internal/styles"
	"github.com/gerunddev/storybook/internal/transcript"
	"github.com/gerunddev/storybook/internal/tui"
)

// errNotInteractive is returned by chat when stdin or stdout is not a terminal
var errNotInteractive = errors.New("chat needs an interactive terminal; use 'storybook ask' instead")

// saveToLibrary is the --save value used when no file is given
const saveToLibrary = "library"

// interactive reports whether the process is attached to a terminal
// Can be overridden for testing
var interactive = func() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func newChatCommand(a *app) *cobra.Command {
	var (
		modeFlag string
		save     string
		resume   string
	)

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat",
		Long: `Chat opens a full-screen conversation with the backend.

Keys: enter sends, tab switches between freeform and structured replies,
ctrl+l clears the conversation and the backend's memory, esc quits.

Use --save=FILE to write the conversation to FILE on exit; a bare --save
writes it into the transcript library instead.`,
		Example: `  storybook chat --mode structured
  storybook chat --save=owls.md
  storybook chat --save --resume owls.md`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !interactive() {
				return errNotInteractive
			}

			mode, err := resolveMode(modeFlag, a.prefs.ChatMode)
			if err != nil {
				return err
			}

			var history []api.Message
			if resume != "" {
				t, err := transcript.Read(resume)
				if err != nil {
					return err
				}
				history = t.Messages
			}

			theme := styles.ForPreferences(a.prefs)
			model := tui.NewChatModel(cmd.Context(), a.client, mode, theme, history)

			a.log.Info("chat started", "mode", mode, "history", len(history))
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("failed to run chat: %w", err)
			}

			chat, ok := final.(tui.ChatModel)
			if !ok {
				return nil
			}
			a.log.Info("chat ended", "messages", len(chat.Messages()))

			if chat.Mode() != a.prefs.ChatMode {
				a.prefs.ChatMode = chat.Mode()
				if err := a.savePreferences(); err != nil {
					return err
				}
			}

			if save != "" && len(chat.Messages()) > 0 {
				if save == saveToLibrary {
					save = filepath.Join(config.TranscriptDir(), time.Now().Format("2006-01-02-150405")+".md")
				}
				title := "Chat " + chat.Messages()[0].Time().Format("2006-01-02 15:04")
				t := transcript.New(title, string(a.prefs.House), chat.Mode(), chat.Messages())
				if err := transcript.Write(save, t); err != nil {
					return err
				}
				a.log.TranscriptSaved(save, len(t.Messages))
				newPrinter(cmd.OutOrStdout()).Success("Transcript saved to " + save)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "response mode: freeform or structured (default from preferences)")
	cmd.Flags().StringVarP(&save, "save", "s", "", "save the conversation on exit; use --save=FILE, or bare --save for the transcript library")
	cmd.Flags().Lookup("save").NoOptDefVal = saveToLibrary
	cmd.Flags().StringVarP(&resume, "resume", "r", "", "continue the conversation in a saved transcript")

	return cmd
}

func newAskCommand(a *app) *cobra.Command {
	var (
		modeFlag string
		html     bool
		sanitize bool
	)

	cmd := &cobra.Command{
		Use:   "ask QUESTION...",
		Short: "Ask a single question",
		Example: `  storybook ask Who is Dobby?
  storybook ask --mode structured --html What does Lumos do?`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := resolveMode(modeFlag, a.prefs.ChatMode)
			if err != nil {
				return err
			}

			question := strings.Join(args, " ")
			req := api.NewChatRequest([]api.Message{api.NewMessage(api.RoleUser, question)}, mode)
			resp, err := a.client.SendMessage(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := newPrinter(cmd.OutOrStdout())
			content := resp.Message.Content
			switch {
			case html:
				markup := `<p class="mb-3">` + content + "</p>"
				if mode == api.ModeStructured && format.IsStructured(content) {
					markup = format.Format(content)
				}
				if sanitize {
					markup = format.Sanitize(markup)
				}
				out.Line(markup)
			default:
				out.Line(a.renderer(out).Reply(content, mode))
			}

			if len(resp.Sources) > 0 {
				out.Dim("Sources: " + strings.Join(resp.Sources, "; "))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "response mode: freeform or structured (default from preferences)")
	cmd.Flags().BoolVar(&html, "html", false, "print the reply as HTML")
	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "sanitize HTML output (requires --html)")
	cmd.MarkFlagsRequiredTogether("sanitize", "html")

	return cmd
}

func newClearCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the backend's conversation memory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := a.client.ClearMemory(cmd.Context()); err != nil {
				return err
			}
			newPrinter(cmd.OutOrStdout()).Success("Backend memory cleared")
			return nil
		},
	}
}

func newHealthCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			health, err := a.client.Health(cmd.Context())
			if err != nil {
				return err
			}
			out := newPrinter(cmd.OutOrStdout())
			out.Success(fmt.Sprintf("Backend %s is up", a.client.BaseURL()))
			if health.Version != "" {
				out.Dim("  version " + health.Version)
			}
			return nil
		},
	}
}
