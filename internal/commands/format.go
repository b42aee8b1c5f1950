package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gerunddev/storybook/internal/format"
)

func newFormatCommand() *cobra.Command {
	var (
		markdown bool
		sanitize bool
		detect   bool
	)

	cmd := &cobra.Command{
		Use:   "format [FILE]",
		Short: "Format a structured reply as HTML",
		Long: `Format reads a reply from FILE (or stdin) and prints it as HTML: one
element per blank-line separated section, bold leading titles as headings,
"- " lines as bullet lists and **bold** spans as <strong>.

The reply text is not escaped. Pass --sanitize when it comes from a source
you do not trust.`,
		Example: `  storybook format reply.txt
  echo '**Spells**\n- Lumos' | storybook format --markdown`,
		Args: cobra.MaximumNArgs(1),
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			raw, err := readInput(path, cmd.InOrStdin())
			if err != nil {
				return err
			}
			raw = strings.TrimRight(raw, "\n")

			out := cmd.OutOrStdout()
			if detect {
				if format.IsStructured(raw) {
					fmt.Fprintln(out, "structured")
				} else {
					fmt.Fprintln(out, "plain")
				}
				return nil
			}

			blocks := format.Parse(raw)
			if markdown {
				fmt.Fprintln(out, format.Markdown(blocks))
				return nil
			}

			markup := format.Render(blocks)
			if sanitize {
				markup = format.Sanitize(markup)
			}
			fmt.Fprintln(out, markup)
			return nil
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "print Markdown instead of HTML")
	cmd.Flags().BoolVar(&sanitize, "sanitize", false, "strip markup the formatter would not produce")
	cmd.Flags().BoolVar(&detect, "detect", false, "only report whether the input has bold spans")
	cmd.MarkFlagsMutuallyExclusive("markdown", "sanitize", "detect")

	return cmd
}
