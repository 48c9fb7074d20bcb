package cli

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/octoscope/pkg/errors"
	"github.com/matzehuels/octoscope/pkg/github"
)

// failingFetcher fails the first n profile calls with err.
type failingFetcher struct {
	stubFetcher
	err   error
	n     int
	calls int
}

func (f *failingFetcher) FetchProfile(ctx context.Context, username string) (*github.UserProfile, error) {
	f.calls++
	if f.calls <= f.n {
		return nil, f.err
	}
	return f.stubFetcher.FetchProfile(ctx, username)
}

func TestRetryFetcher(t *testing.T) {
	old := retryDelay
	retryDelay = time.Millisecond
	defer func() { retryDelay = old }()

	tests := []struct {
		name      string
		err       error
		failures  int
		retries   int
		wantCalls int
		wantErr   bool
	}{
		{"server error retried", errors.New(errors.ErrCodeServer, "bad gateway"), 1, 2, 2, false},
		{"network failure retried", errors.New(errors.ErrCodeNetwork, "reset"), 2, 2, 3, false},
		{"attempts exhausted", errors.New(errors.ErrCodeServer, "bad gateway"), 5, 2, 3, true},
		{"not found not retried", errors.New(errors.ErrCodeNotFound, "Not Found"), 1, 2, 1, true},
		{"rate limit not retried", errors.RateLimited(403, time.Time{}, "limit"), 1, 2, 1, true},
		{"no retries", errors.New(errors.ErrCodeServer, "bad gateway"), 1, 0, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &failingFetcher{err: tt.err, n: tt.failures}
			r := withRetries(f, tt.retries, log.New(io.Discard))

			p, err := r.FetchProfile(context.Background(), "octocat")
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && p.Login != "octocat" {
				t.Errorf("profile = %+v", p)
			}
			if f.calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", f.calls, tt.wantCalls)
			}
		})
	}
}

func TestCollector(t *testing.T) {
	c := &collector{}
	c.OnProfileLoaded(github.UserProfile{Login: "octocat"})
	c.OnReposLoaded([]github.RepositorySummary{{Name: "a"}}, false)
	c.OnReposLoaded([]github.RepositorySummary{{Name: "b"}}, true)

	if c.profile.Login != "octocat" || len(c.repos) != 2 {
		t.Fatalf("collector = %+v", c)
	}

	c.OnReposLoaded([]github.RepositorySummary{{Name: "c"}}, false)
	if len(c.repos) != 1 || c.repos[0].Name != "c" {
		t.Errorf("replace mode kept old repos: %+v", c.repos)
	}
}
