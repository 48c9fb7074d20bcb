package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/octoscope/pkg/github"
	"github.com/matzehuels/octoscope/pkg/httputil"
	"github.com/matzehuels/octoscope/pkg/search"
)

// retryDelay is the first backoff between attempts; it doubles each retry.
var retryDelay = 500 * time.Millisecond

// retryFetcher retries transient failures (server errors, network failures)
// of the wrapped fetcher. Not-found, unauthorized and rate-limited responses
// are returned on the first attempt.
type retryFetcher struct {
	next     search.Fetcher
	attempts int
	logger   *log.Logger
}

// withRetries wraps f so each call is tried 1+retries times.
func withRetries(f search.Fetcher, retries int, logger *log.Logger) search.Fetcher {
	if retries <= 0 {
		return f
	}
	return &retryFetcher{next: f, attempts: retries + 1, logger: logger}
}

func (f *retryFetcher) FetchProfile(ctx context.Context, username string) (*github.UserProfile, error) {
	var p *github.UserProfile
	attempt := 0
	err := httputil.Retry(ctx, f.attempts, retryDelay, f.retryable("profile", &attempt), func() error {
		attempt++
		var err error
		p, err = f.next.FetchProfile(ctx, username)
		return err
	})
	return p, err
}

func (f *retryFetcher) FetchRepos(ctx context.Context, username string, page, pageSize int) ([]github.RepositorySummary, error) {
	var repos []github.RepositorySummary
	attempt := 0
	err := httputil.Retry(ctx, f.attempts, retryDelay, f.retryable("repos", &attempt), func() error {
		attempt++
		var err error
		repos, err = f.next.FetchRepos(ctx, username, page, pageSize)
		return err
	})
	return repos, err
}

func (f *retryFetcher) retryable(op string, attempt *int) httputil.Classifier {
	return func(err error) bool {
		ok := github.IsTransient(err)
		if ok && *attempt < f.attempts {
			f.logger.Warn("retrying", "op", op, "attempt", *attempt, "err", err)
		}
		return ok
	}
}

// collector is a Renderer that keeps the latest output for one-shot commands.
type collector struct {
	search.NopRenderer
	profile *github.UserProfile
	repos   []github.RepositorySummary
}

func (c *collector) OnProfileLoaded(p github.UserProfile) {
	c.profile = &p
}

func (c *collector) OnReposLoaded(repos []github.RepositorySummary, appendMode bool) {
	if !appendMode {
		c.repos = nil
	}
	c.repos = append(c.repos, repos...)
}
