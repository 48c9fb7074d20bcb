package search

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/octoscope/pkg/errors"
	"github.com/matzehuels/octoscope/pkg/github"
)

type repoCall struct {
	user string
	page int
}

// fakeFetcher serves canned profiles and pages and records every call.
type fakeFetcher struct {
	profileFn func(ctx context.Context, user string) (*github.UserProfile, error)
	reposFn   func(ctx context.Context, user string, page, size int) ([]github.RepositorySummary, error)

	mu           sync.Mutex
	profileCalls []string
	repoCalls    []repoCall
}

func (f *fakeFetcher) FetchProfile(ctx context.Context, user string) (*github.UserProfile, error) {
	f.mu.Lock()
	f.profileCalls = append(f.profileCalls, user)
	f.mu.Unlock()
	if f.profileFn == nil {
		return &github.UserProfile{Login: user}, nil
	}
	return f.profileFn(ctx, user)
}

func (f *fakeFetcher) FetchRepos(ctx context.Context, user string, page, size int) ([]github.RepositorySummary, error) {
	f.mu.Lock()
	f.repoCalls = append(f.repoCalls, repoCall{user, page})
	f.mu.Unlock()
	if f.reposFn == nil {
		return nil, nil
	}
	return f.reposFn(ctx, user, page, size)
}

func (f *fakeFetcher) calls() ([]string, []repoCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.profileCalls...), append([]repoCall(nil), f.repoCalls...)
}

// pages serves the given page sizes for any user, then empty pages.
func pages(sizes ...int) func(context.Context, string, int, int) ([]github.RepositorySummary, error) {
	return func(_ context.Context, user string, page, _ int) ([]github.RepositorySummary, error) {
		if page > len(sizes) {
			return []github.RepositorySummary{}, nil
		}
		return makeRepos(user, page, sizes[page-1]), nil
	}
}

func makeRepos(user string, page, n int) []github.RepositorySummary {
	out := make([]github.RepositorySummary, n)
	for i := range out {
		out[i] = github.RepositorySummary{
			Name:      fmt.Sprintf("%s-p%d-%d", user, page, i),
			UpdatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Duration(page*100+i) * time.Hour),
		}
	}
	return out
}

type fakeSuggester struct {
	mu      sync.Mutex
	queries []string
	result  func(q string) []github.Suggestion
}

func (f *fakeSuggester) Suggest(_ context.Context, q string) []github.Suggestion {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.result == nil {
		return []github.Suggestion{{Login: q + "-1"}, {Login: q + "-2"}}
	}
	return f.result(q)
}

func (f *fakeSuggester) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

type errorEvent struct {
	code    errors.Code
	message string
}

// recorder is a Renderer that keeps everything it was told.
type recorder struct {
	mu          sync.Mutex
	profiles    []github.UserProfile
	repos       []github.RepositorySummary
	appends     []bool
	suggestions [][]github.Suggestion
	errs        []errorEvent
	states      []State
}

func (r *recorder) OnProfileLoaded(p github.UserProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles = append(r.profiles, p)
}

func (r *recorder) OnReposLoaded(repos []github.RepositorySummary, appendMode bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !appendMode {
		r.repos = nil
	}
	r.repos = append(r.repos, repos...)
	r.appends = append(r.appends, appendMode)
}

func (r *recorder) OnSuggestions(s []github.Suggestion) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suggestions = append(r.suggestions, s)
}

func (r *recorder) OnError(code errors.Code, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, errorEvent{code, message})
}

func (r *recorder) OnStateChange(s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) lastSuggestions() ([]github.Suggestion, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.suggestions) == 0 {
		return nil, 0
	}
	return r.suggestions[len(r.suggestions)-1], len(r.suggestions)
}

func newTestSession(f Fetcher, s SuggestionSource, r Renderer, pageSize int) *Session {
	return New(f, s, r, Options{
		PageSize: pageSize,
		Debounce: 20 * time.Millisecond,
		Logger:   log.New(io.Discard),
	})
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
