package search

import "github.com/matzehuels/octoscope/pkg/github"

// State is the phase of a search session.
type State int

const (
	// Idle: nothing searched yet, or the session was reset.
	Idle State = iota
	// Searching: profile and first page are in flight.
	Searching
	// Loaded: results shown and more pages may exist.
	Loaded
	// LoadingMore: the next page is in flight.
	LoadingMore
	// Exhausted: results shown and the last page was short.
	Exhausted
	// Error: the last search failed.
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Searching:
		return "searching"
	case Loaded:
		return "loaded"
	case LoadingMore:
		return "loading-more"
	case Exhausted:
		return "exhausted"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Busy reports whether a request is in flight in this state.
func (s State) Busy() bool {
	return s == Searching || s == LoadingMore
}

// PaginationState tracks the repository pages accumulated for one username.
// It is reset on every new search.
type PaginationState struct {
	Username    string
	CurrentPage int
	PageSize    int
	Exhausted   bool
	Repos       []github.RepositorySummary
}

func (p PaginationState) clone() PaginationState {
	p.Repos = append([]github.RepositorySummary(nil), p.Repos...)
	return p
}
