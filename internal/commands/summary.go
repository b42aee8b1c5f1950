package commands

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gerunddev/storybook/internal/api"
	"github.com/gerunddev/storybook/internal/format"
	"github.com/gerunddev/storybook/internal/styles"
	"github.com/gerunddev/storybook/internal/summary"
	"github.com/gerunddev/storybook/internal/tui"
)

func newSummaryCommand(a *app) *cobra.Command {
	var (
		modeFlag string
		html     bool
		sanitize bool
	)

	cmd := &cobra.Command{
		Use:   "summary KIND TARGET...",
		Short: "Look up a character, chapter, event, location, spell or house",
		Example: `  storybook summary character Hermione Granger
  storybook summary spell Expecto Patronum --mode freeform`,
		Args: cobra.MinimumNArgs(2),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			kinds := make([]string, 0, len(summary.Kinds))
			for _, k := range summary.Kinds {
				kinds = append(kinds, string(k))
			}
			return kinds, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := summary.ParseKind(args[0])
			if err != nil {
				return err
			}
			mode, err := resolveMode(modeFlag, a.prefs.SummaryMode)
			if err != nil {
				return err
			}

			req := summary.NewRequest(kind, strings.Join(args[1:], " "), mode)
			out := newPrinter(cmd.OutOrStdout())

			var s *summary.Summary
			if out.styled {
				var done bool
				s, done, err = a.lookupWithProgress(cmd.Context(), kind, req)
				if !done {
					return err
				}
			} else {
				s, err = a.lookup(cmd.Context(), req)
			}
			if err != nil {
				return err
			}

			if html {
				markup := s.HTML(mode)
				if sanitize {
					markup = format.Sanitize(markup)
				}
				out.Line(markup)
				return nil
			}

			theme := styles.ForPreferences(a.prefs)
			out.Styled(theme.Title, s.Title)
			out.Line("")
			out.Line(a.renderer(out).Markdown(s.Markdown(mode)))
			if len(s.Sources) > 0 {
				out.Line("")
				out.Styled(theme.Label, "Sources")
				for _, src := range s.Sources {
					out.Dim("  " + src.String())
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "response mode: freeform or structured (default from preferences)")
	cmd.Flags().BoolVar(&html, "html", false, "print the entry as HTML")
	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "sanitize HTML output (requires --html)")
	cmd.MarkFlagsRequiredTogether("sanitize", "html")

	return cmd
}

func (a *app) lookup(ctx context.Context, req *api.SummaryRequest) (*summary.Summary, error) {
	resp, err := a.client.Summarize(ctx, req)
	if err != nil {
		return nil, err
	}
	return summary.FromResponse(req, resp), nil
}

// lookupWithProgress runs the lookup behind the loading decoration. done is
// false when the user cancelled.
func (a *app) lookupWithProgress(ctx context.Context, kind summary.Kind, req *api.SummaryRequest) (*summary.Summary, bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := tui.InitLookupModel(kind, req.Target, styles.ForPreferences(a.prefs))
	p := tea.NewProgram(model)

	go func() {
		s, err := a.lookup(ctx, req)
		p.Send(tui.LookupMsg{Summary: s, Err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, false, fmt.Errorf("failed to run lookup: %w", err)
	}
	return tui.LookupResult(final)
}
