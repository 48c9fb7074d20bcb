package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/octoscope/pkg/errors"
)

// profileCommand creates the profile command.
func (c *CLI) profileCommand() *cobra.Command {
	var retries int

	cmd := &cobra.Command{
		Use:   "profile <username>",
		Short: "Show a user's profile and recently updated repositories",
		Long: `Show a GitHub user's profile card followed by the first page of their
public repositories, most recently updated first.

Server errors and network failures can be retried with --retries. A missing
user, a bad token or an exhausted rate limit fail immediately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runProfile(cmd.Context(), args[0], retries)
		},
	}

	cmd.Flags().IntVar(&retries, "retries", 0, "retry server and network failures up to N times")
	return cmd
}

func (c *CLI) runProfile(ctx context.Context, username string, retries int) error {
	name, err := errors.NormalizeUsername(username)
	if err != nil {
		return err
	}
	logger := loggerFromContext(ctx)

	out := &collector{}
	sess := c.newSession(withRetries(c.newClient(), retries, logger), nil, out)

	ctx, cancel := commandContext(ctx, c.cfg.Timeout*time.Duration(2*(retries+1)))
	defer cancel()

	spinner := newSpinner(ctx, fmt.Sprintf("Looking up @%s...", name))
	spinner.Start()
	prog := newProgress(logger)

	err = sess.Submit(ctx, name)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done("profile loaded", "user", name)

	snap := sess.Snapshot()
	printNewline()
	fmt.Fprintln(stdout, renderProfile(ui, *out.profile))
	printNewline()

	if len(out.repos) == 0 {
		printInfo("@%s has no public repositories", name)
		return nil
	}
	fmt.Fprintln(stdout, renderRepoTable(ui, out.repos, -1, time.Now()))
	if snap.CanLoadMore {
		printNextStep("All repositories", fmt.Sprintf("%s repos %s --all", appName, name))
	}
	return nil
}
