package search

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/octoscope/pkg/debounce"
	"github.com/matzehuels/octoscope/pkg/errors"
	"github.com/matzehuels/octoscope/pkg/github"
	"github.com/matzehuels/octoscope/pkg/observability"
)

const (
	// DefaultPageSize is the number of repositories requested per page.
	DefaultPageSize = 10

	// DefaultDebounce is the quiet period before a suggestion lookup.
	DefaultDebounce = 250 * time.Millisecond

	maxPageSize = 100
)

// Fetcher loads profiles and repository pages. *github.Client implements it.
type Fetcher interface {
	FetchProfile(ctx context.Context, username string) (*github.UserProfile, error)
	FetchRepos(ctx context.Context, username string, page, pageSize int) ([]github.RepositorySummary, error)
}

// SuggestionSource looks up autocomplete candidates. *github.Suggester
// implements it. Failures must surface as an empty result.
type SuggestionSource interface {
	Suggest(ctx context.Context, query string) []github.Suggestion
}

// Options configures a [Session].
type Options struct {
	// PageSize is the repositories requested per page (1-100). Zero uses DefaultPageSize.
	PageSize int

	// Debounce is the quiet period before suggestions are looked up. Zero uses DefaultDebounce.
	Debounce time.Duration

	// Logger receives diagnostics. Nil uses log.Default().
	Logger *log.Logger
}

// Snapshot is a point-in-time copy of a session.
type Snapshot struct {
	ID          string
	State       State
	Profile     *github.UserProfile
	Pagination  PaginationState
	Suggestions []github.Suggestion
	LastError   error

	// CanLoadMore reports whether LoadMore would issue a request.
	CanLoadMore bool
}

// Session is the state of one search screen. See the package documentation
// for the lifecycle.
type Session struct {
	id        uuid.UUID
	client    Fetcher
	suggester SuggestionSource
	renderer  Renderer
	logger    *log.Logger
	pageSize  int
	debouncer *debounce.Debouncer[suggestRequest]

	// renderMu is held from a generation check through the last renderer
	// call that depends on it, so output of a superseded operation can never
	// land after output of a newer one. Lock order: renderMu, then mu.
	renderMu sync.Mutex

	mu          sync.Mutex
	state       State
	profile     *github.UserProfile
	pagination  PaginationState
	suggestions []github.Suggestion
	lastErr     error

	// generation identifies the current search; suggestGen the current input.
	generation uint64
	suggestGen uint64
}

type suggestRequest struct {
	ctx   context.Context
	query string
	gen   uint64
}

// New creates an idle Session. A nil suggester disables suggestions and a nil
// renderer discards output.
func New(client Fetcher, suggester SuggestionSource, renderer Renderer, opts Options) *Session {
	if renderer == nil {
		renderer = NopRenderer{}
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	pageSize = min(pageSize, maxPageSize)
	delay := opts.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	id := uuid.New()
	s := &Session{
		id:        id,
		client:    client,
		suggester: suggester,
		renderer:  renderer,
		logger:    logger.With("session", id.String()[:8]),
		pageSize:  pageSize,
	}
	s.debouncer = debounce.New(delay, s.suggest)
	return s
}

// ID returns the session identifier used in log lines.
func (s *Session) ID() string { return s.id.String() }

// =============================================================================
// Suggestions
// =============================================================================

// Input records the text currently typed. Once the input has been quiet for
// the debounce period, suggestions for it are looked up and rendered.
// Queries shorter than github.MinQueryLength hide suggestions immediately.
func (s *Session) Input(ctx context.Context, query string) {
	q := strings.TrimSpace(query)

	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	s.mu.Lock()
	s.suggestGen++
	gen := s.suggestGen
	s.mu.Unlock()

	if s.suggester == nil {
		return
	}
	if utf8.RuneCountInString(q) < github.MinQueryLength {
		s.debouncer.Cancel()
		s.publishSuggestionsLocked(gen, nil)
		return
	}
	s.debouncer.Trigger(suggestRequest{ctx: ctx, query: q, gen: gen})
}

// ClearInput drops any pending lookup and hides suggestions.
func (s *Session) ClearInput() {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	s.debouncer.Cancel()
	s.mu.Lock()
	s.suggestGen++
	gen := s.suggestGen
	s.mu.Unlock()
	s.publishSuggestionsLocked(gen, nil)
}

func (s *Session) suggest(req suggestRequest) {
	if s.isStaleInput(req.gen) {
		return
	}
	results := s.suggester.Suggest(req.ctx, req.query)

	s.renderMu.Lock()
	defer s.renderMu.Unlock()
	if !s.publishSuggestionsLocked(req.gen, results) {
		observability.Search().OnStale(req.ctx, "suggest")
		s.logger.Debug("dropped stale suggestions", "query", req.query)
	}
}

func (s *Session) isStaleInput(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen != s.suggestGen
}

// publishSuggestionsLocked stores and renders results if gen is still
// current. The caller holds renderMu.
func (s *Session) publishSuggestionsLocked(gen uint64, results []github.Suggestion) bool {
	s.mu.Lock()
	if gen != s.suggestGen {
		s.mu.Unlock()
		return false
	}
	s.suggestions = results
	s.mu.Unlock()

	s.renderer.OnSuggestions(results)
	return true
}

// =============================================================================
// Search
// =============================================================================

// Submit commits a search for username, replacing whatever the session
// showed before. It blocks until the profile and first page settle.
//
// A blank username renders INVALID_INPUT and leaves the session unchanged.
// The returned error is the failure that was rendered, if any. A search
// superseded by a newer Submit or Reset returns nil and renders nothing.
func (s *Session) Submit(ctx context.Context, username string) error {
	name, err := errors.NormalizeUsername(username)
	if err != nil {
		s.renderMu.Lock()
		s.renderer.OnError(errors.GetCode(err), errors.UserMessage(err))
		s.renderMu.Unlock()
		return err
	}

	s.renderMu.Lock()
	s.debouncer.Cancel()
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.suggestGen++
	s.suggestions = nil
	s.profile = nil
	s.pagination = PaginationState{Username: name, CurrentPage: 1, PageSize: s.pageSize}
	s.lastErr = nil
	s.state = Searching
	s.mu.Unlock()

	s.renderer.OnSuggestions(nil)
	s.renderer.OnStateChange(Searching)
	s.renderMu.Unlock()

	hooks := observability.Search()
	hooks.OnSearchStart(ctx, name)
	s.logger.Debug("search started", "user", name, "generation", gen)
	start := time.Now()

	profile, repos, err := s.fetchFirst(ctx, name)

	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		hooks.OnStale(ctx, "search")
		s.logger.Debug("dropped stale search", "user", name, "generation", gen)
		return nil
	}

	if err != nil {
		if ctx.Err() != nil {
			s.state = Idle
			s.pagination = PaginationState{}
			s.mu.Unlock()
			s.renderer.OnStateChange(Idle)
			return ctx.Err()
		}
		s.lastErr = err
		s.state = Error
		s.mu.Unlock()

		hooks.OnSearchComplete(ctx, name, time.Since(start), err)
		s.logger.Debug("search failed", "user", name, "kind", errors.GetCode(err), "err", err)
		s.renderer.OnError(errors.GetCode(err), errors.UserMessage(err))
		s.renderer.OnStateChange(Error)
		return err
	}

	s.profile = profile
	s.pagination.Repos = repos
	s.pagination.Exhausted = github.IsLastPage(len(repos), s.pageSize)
	state := Loaded
	if s.pagination.Exhausted {
		state = Exhausted
	}
	s.state = state
	s.mu.Unlock()

	hooks.OnSearchComplete(ctx, name, time.Since(start), nil)
	s.logger.Debug("search loaded", "user", name, "repos", len(repos), "state", state)
	s.renderer.OnProfileLoaded(*profile)
	s.renderer.OnReposLoaded(append([]github.RepositorySummary(nil), repos...), false)
	s.renderer.OnStateChange(state)
	return nil
}

// fetchFirst loads the profile and page one concurrently. A profile failure
// wins and cancels the repository request.
func (s *Session) fetchFirst(ctx context.Context, name string) (*github.UserProfile, []github.RepositorySummary, error) {
	var (
		profile *github.UserProfile
		repos   []github.RepositorySummary
		repoErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.client.FetchProfile(gctx, name)
		profile = p
		return err
	})
	g.Go(func() error {
		repos, repoErr = s.client.FetchRepos(gctx, name, 1, s.pageSize)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if repoErr != nil {
		return nil, nil, repoErr
	}
	return profile, repos, nil
}

// LoadMore fetches the next page and appends it. It is a no-op returning nil
// unless the session is Loaded: nothing searched, a request in flight, an
// error, or an exhausted listing all skip the request.
//
// On failure the page counter is rolled back, the error is rendered and the
// session returns to Loaded so the user can retry.
func (s *Session) LoadMore(ctx context.Context) error {
	s.renderMu.Lock()
	s.mu.Lock()
	if s.state != Loaded || s.profile == nil {
		s.mu.Unlock()
		s.renderMu.Unlock()
		return nil
	}
	gen := s.generation
	name := s.pagination.Username
	s.pagination.CurrentPage++
	page := s.pagination.CurrentPage
	s.state = LoadingMore
	s.mu.Unlock()

	s.renderer.OnStateChange(LoadingMore)
	s.renderMu.Unlock()
	hooks := observability.Search()

	repos, err := s.client.FetchRepos(ctx, name, page, s.pageSize)

	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		hooks.OnStale(ctx, "load_more")
		s.logger.Debug("dropped stale page", "user", name, "page", page)
		return nil
	}

	if err != nil {
		s.pagination.CurrentPage = page - 1
		s.state = Loaded
		if ctx.Err() != nil {
			s.mu.Unlock()
			s.renderer.OnStateChange(Loaded)
			return ctx.Err()
		}
		s.lastErr = err
		s.mu.Unlock()

		hooks.OnLoadMore(ctx, name, page, 0, err)
		s.logger.Debug("load more failed", "user", name, "page", page, "kind", errors.GetCode(err))
		s.renderer.OnError(errors.GetCode(err), errors.UserMessage(err))
		s.renderer.OnStateChange(Loaded)
		return err
	}

	s.lastErr = nil
	s.pagination.Repos = append(s.pagination.Repos, repos...)
	s.pagination.Exhausted = github.IsLastPage(len(repos), s.pageSize)
	state := Loaded
	if s.pagination.Exhausted {
		state = Exhausted
	}
	s.state = state
	s.mu.Unlock()

	hooks.OnLoadMore(ctx, name, page, len(repos), nil)
	s.logger.Debug("page loaded", "user", name, "page", page, "repos", len(repos), "state", state)
	s.renderer.OnReposLoaded(append([]github.RepositorySummary(nil), repos...), true)
	s.renderer.OnStateChange(state)
	return nil
}

// =============================================================================
// Inspection
// =============================================================================

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:          s.id.String(),
		State:       s.state,
		Pagination:  s.pagination.clone(),
		Suggestions: append([]github.Suggestion(nil), s.suggestions...),
		LastError:   s.lastErr,
		CanLoadMore: s.state == Loaded && s.profile != nil,
	}
	if s.profile != nil {
		p := *s.profile
		snap.Profile = &p
	}
	return snap
}

// Reset returns the session to Idle. Requests still in flight are dropped
// when they settle.
func (s *Session) Reset() {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	s.debouncer.Cancel()
	s.mu.Lock()
	s.generation++
	s.suggestGen++
	s.state = Idle
	s.profile = nil
	s.pagination = PaginationState{}
	s.suggestions = nil
	s.lastErr = nil
	s.mu.Unlock()

	s.renderer.OnStateChange(Idle)
}
