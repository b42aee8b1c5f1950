package commands

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gerunddev/storybook/internal/api"
	"github.com/gerunddev/storybook/internal/config"
	"github.com/gerunddev/storybook/internal/format"
	"github.com/gerunddev/storybook/internal/styles"
	"github.com/gerunddev/storybook/internal/transcript"
	"github.com/gerunddev/storybook/internal/tui"
)

func newShowCommand(a *app) *cobra.Command {
	var html bool

	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Replay a saved chat transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := transcript.Read(args[0])
			if err != nil {
				return err
			}

			out := newPrinter(cmd.OutOrStdout())
			if html {
				for _, m := range t.Messages {
					out.Line(messageHTML(m, t.Mode))
				}
				return nil
			}

			theme := styles.ForPreferences(a.prefs)
			renderer := a.renderer(out)

			out.Styled(theme.Title, t.Title)
			out.Dim(t.Exported.Local().Format("Mon Jan 2 2006 15:04"))
			for _, m := range t.Messages {
				out.Line("")
				if m.Role == api.RoleUser {
					out.Styled(theme.Label, "You")
					out.Line(m.Content)
					continue
				}
				out.Styled(theme.Label, "Storybook")
				out.Line(renderer.Reply(m.Content, t.Mode))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&html, "html", false, "print the conversation as HTML")

	return cmd
}

// messageHTML renders one message the way the web client lays out a chat
// bubble. User text and freeform replies are not interpreted.
func messageHTML(m api.Message, mode api.ResponseMode) string {
	body := `<p class="mb-3">` + m.Content + "</p>"
	if m.Role == api.RoleAssistant && mode == api.ModeStructured && format.IsStructured(m.Content) {
		body = format.Format(m.Content)
	}
	return `<div class="message ` + string(m.Role) + `">` + body + "</div>"
}

func newTranscriptsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "transcripts [DIR]",
		Short: "Browse saved chat transcripts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := config.TranscriptDir()
			if len(args) == 1 {
				dir = args[0]
			}

			out := newPrinter(cmd.OutOrStdout())
			if !out.styled || !interactive() {
				entries, err := transcript.List(dir)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					out.Dim("No transcripts in " + dir)
					return nil
				}
				for _, e := range entries {
					out.Line(fmt.Sprintf("%s\t%s\t%d messages\t%s",
						e.Exported.Local().Format("2006-01-02 15:04"), e.Title, len(e.Messages), e.Path))
				}
				return nil
			}

			model := tui.InitBrowseModel(styles.ForPreferences(a.prefs), a.renderer(out))
			p := tea.NewProgram(model, tea.WithAltScreen())

			go func() {
				entries, err := transcript.List(dir)
				p.Send(tui.BrowseMsg{Entries: entries, Err: err})
			}()

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("failed to run browser: %w", err)
			}
			return nil
		},
	}
}
