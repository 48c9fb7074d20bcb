package cli

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/matzehuels/octoscope/pkg/errors"
	"github.com/matzehuels/octoscope/pkg/github"
)

// suggestCommand creates the suggest command.
func (c *CLI) suggestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <query>",
		Short: "List usernames matching a partial query",
		Long: fmt.Sprintf(`List GitHub logins that match a partial username, best match first.

Queries shorter than %d characters are rejected. Lookups that fail (for
example because the search rate limit is exhausted) print nothing; run with
--verbose to see why.`, github.MinQueryLength),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if utf8.RuneCountInString(query) < github.MinQueryLength {
				return errors.New(errors.ErrCodeInvalidInput, "query must be at least %d characters", github.MinQueryLength)
			}

			ctx, cancel := commandContext(cmd.Context(), c.cfg.Timeout)
			defer cancel()

			suggester := c.newSuggester(c.newClient())
			suggestions := suggester.Suggest(ctx, query)
			if len(suggestions) == 0 {
				printInfo("No matching users")
				return nil
			}
			for _, s := range suggestions {
				fmt.Fprintln(stdout, ui.Highlight.Render(s.Login)+"  "+ui.Dim.Render(s.AvatarURL))
			}
			if len(suggestions) == suggester.Limit() {
				printDetail("Showing the first %d matches; type more of the name to narrow them", suggester.Limit())
			}
			return nil
		},
	}
}
