package github

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/matzehuels/octoscope/pkg/errors"
	"github.com/matzehuels/octoscope/pkg/observability"
)

const (
	// MinQueryLength is the shortest query, in runes, worth sending to search.
	MinQueryLength = 3

	// DefaultSuggestionLimit is the number of suggestions requested by default.
	DefaultSuggestionLimit = 8
)

// Suggester turns a partial username into login candidates.
//
// Suggestions are best-effort: every failure degrades to an empty result and
// is logged, never returned.
type Suggester struct {
	client  *Client
	limit   int
	limiter *rate.Limiter
	logger  *log.Logger
}

// SuggesterOptions configures a [Suggester].
type SuggesterOptions struct {
	// Limit caps the number of suggestions. Zero uses DefaultSuggestionLimit.
	Limit int

	// Limiter throttles search requests client-side. Nil disables throttling.
	Limiter *rate.Limiter

	// Logger receives diagnostics for swallowed failures. Nil uses log.Default().
	Logger *log.Logger
}

// NewSuggester creates a Suggester backed by client.
func NewSuggester(client *Client, opts SuggesterOptions) *Suggester {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Suggester{
		client:  client,
		limit:   limit,
		limiter: opts.Limiter,
		logger:  logger,
	}
}

// Limit returns the maximum number of suggestions returned.
func (s *Suggester) Limit() int { return s.limit }

// Suggest returns at most Limit logins matching query, in the relevance order
// GitHub returned them. Queries shorter than MinQueryLength return nothing
// without a request. Rate limiting, server and network failures all return
// an empty slice.
func (s *Suggester) Suggest(ctx context.Context, query string) []Suggestion {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < MinQueryLength {
		return nil
	}
	if s.limiter != nil && !s.limiter.Allow() {
		s.logger.Debug("suggestions throttled", "query", q)
		return nil
	}

	params := url.Values{
		"q":        {q + " in:login"},
		"per_page": {strconv.Itoa(s.limit)},
	}

	var data apiSearchUsersResponse
	if err := s.client.Get(ctx, "/search/users", params, &data); err != nil {
		if errors.IsContext(err) {
			return nil
		}
		observability.Search().OnSuggestions(ctx, 0, err)
		s.logger.Warn("suggestions unavailable", "query", q, "kind", errors.GetCode(err), "err", err)
		return nil
	}

	n := min(len(data.Items), s.limit)
	out := make([]Suggestion, 0, n)
	for _, item := range data.Items[:n] {
		out = append(out, Suggestion{Login: item.Login, AvatarURL: item.AvatarURL})
	}
	observability.Search().OnSuggestions(ctx, len(out), nil)
	return out
}
