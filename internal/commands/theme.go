package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gerunddev/storybook/internal/state"
	"github.com/gerunddev/storybook/internal/styles"
)

func newThemeCommand(a *app) *cobra.Command {
	var light, dark, toggle bool

	cmd := &cobra.Command{
		Use:   "theme [HOUSE]",
		Short: "Show or change the house colours and light/dark theme",
		Example: `  storybook theme
  storybook theme ravenclaw --light
  storybook theme --toggle`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: houseNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := false
			if len(args) == 1 {
				if err := a.prefs.SetHouse(args[0]); err != nil {
					return err
				}
				changed = true
			}

			switch {
			case light:
				if err := a.prefs.SetTheme(string(state.ThemeLight)); err != nil {
					return err
				}
				changed = true
			case dark:
				if err := a.prefs.SetTheme(string(state.ThemeDark)); err != nil {
					return err
				}
				changed = true
			case toggle:
				a.prefs.ToggleTheme()
				changed = true
			}

			if changed {
				if err := a.savePreferences(); err != nil {
					return err
				}
			}

			out := newPrinter(cmd.OutOrStdout())
			theme := styles.ForPreferences(a.prefs)
			out.Styled(theme.Title, fmt.Sprintf("House %s", a.prefs.House))
			out.Line(fmt.Sprintf("Theme: %s", a.prefs.Theme))
			out.Line(fmt.Sprintf("Chat mode: %s", a.prefs.ChatMode))
			out.Line(fmt.Sprintf("Summary mode: %s", a.prefs.SummaryMode))
			out.Dim(fmt.Sprintf("Cast %s with --toggle", a.prefs.ThemeSwitchLabel()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&light, "light", false, "use the light theme")
	cmd.Flags().BoolVar(&dark, "dark", false, "use the dark theme")
	cmd.Flags().BoolVar(&toggle, "toggle", false, "switch between light and dark")
	cmd.MarkFlagsMutuallyExclusive("light", "dark", "toggle")

	return cmd
}

func houseNames() []string {
	names := make([]string, 0, len(state.Houses))
	for _, h := range state.Houses {
		names = append(names, string(h))
	}
	return names
}
