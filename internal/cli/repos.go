package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/octoscope/pkg/errors"
	"github.com/matzehuels/octoscope/pkg/github"
)

// reposCommand creates the repos command.
func (c *CLI) reposCommand() *cobra.Command {
	var (
		page int
		all  bool
	)

	cmd := &cobra.Command{
		Use:   "repos <username>",
		Short: "List a user's public repositories",
		Long: `List a GitHub user's public repositories, most recently updated first.

By default one page is shown (see --page-size). --all keeps loading pages
until a short page signals the end of the list.`,
		Example: `  octoscope repos octocat
  octoscope repos octocat --page 2 --page-size 30
  octoscope repos octocat --all`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				return c.runReposAll(cmd.Context(), args[0])
			}
			return c.runReposPage(cmd.Context(), args[0], page)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page to show")
	cmd.Flags().BoolVar(&all, "all", false, "load every page")
	cmd.MarkFlagsMutuallyExclusive("page", "all")
	return cmd
}

func (c *CLI) runReposPage(ctx context.Context, username string, page int) error {
	name, err := errors.NormalizeUsername(username)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(ctx, c.cfg.Timeout)
	defer cancel()

	spinner := newSpinner(ctx, fmt.Sprintf("Loading page %d...", page))
	spinner.Start()
	repos, err := c.newClient().FetchRepos(ctx, name, page, c.cfg.PageSize)
	spinner.Stop()
	if err != nil {
		return err
	}

	if len(repos) == 0 {
		printInfo("No repositories on page %d", page)
		return nil
	}
	fmt.Fprintln(stdout, renderRepoTable(ui, repos, -1, time.Now()))
	if !github.IsLastPage(len(repos), c.cfg.PageSize) {
		printNextStep("Next page", fmt.Sprintf("%s repos %s --page %d", appName, name, page+1))
	}
	return nil
}

func (c *CLI) runReposAll(ctx context.Context, username string) error {
	name, err := errors.NormalizeUsername(username)
	if err != nil {
		return err
	}
	logger := loggerFromContext(ctx)

	out := &collector{}
	sess := c.newSession(c.newClient(), nil, out)

	spinner := newSpinner(ctx, fmt.Sprintf("Loading repositories of @%s...", name))
	spinner.Start()
	defer spinner.Stop()
	prog := newProgress(logger)

	// Each request gets its own timeout; the listing as a whole may take longer.
	step := func(op func(context.Context) error) error {
		stepCtx, cancel := commandContext(ctx, c.cfg.Timeout)
		defer cancel()
		return op(stepCtx)
	}

	if err := step(func(ctx context.Context) error { return sess.Submit(ctx, name) }); err != nil {
		return err
	}
	for sess.Snapshot().CanLoadMore {
		if err := step(sess.LoadMore); err != nil {
			return err
		}
	}
	spinner.Stop()

	snap := sess.Snapshot()
	prog.done("repositories loaded", "user", name, "repos", len(out.repos), "pages", snap.Pagination.CurrentPage)

	if len(out.repos) == 0 {
		printInfo("@%s has no public repositories", name)
		return nil
	}
	fmt.Fprintln(stdout, renderRepoTable(ui, out.repos, -1, time.Now()))
	printSuccess("%d repositories", len(out.repos))
	return nil
}
