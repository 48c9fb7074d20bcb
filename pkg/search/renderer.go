package search

import (
	"github.com/matzehuels/octoscope/pkg/errors"
	"github.com/matzehuels/octoscope/pkg/github"
)

// Renderer displays session output. Calls are never concurrent, and output of
// a superseded search or input never follows output of a newer one.
// Implementations must not call Session methods other than Snapshot.
type Renderer interface {
	// OnProfileLoaded shows the profile card.
	OnProfileLoaded(profile github.UserProfile)

	// OnReposLoaded shows repositories. With appendMode false the list is
	// replaced; otherwise repos are added after those already shown.
	OnReposLoaded(repos []github.RepositorySummary, appendMode bool)

	// OnSuggestions replaces the suggestion list. Empty hides it.
	OnSuggestions(suggestions []github.Suggestion)

	// OnError shows a user-facing failure message.
	OnError(code errors.Code, message string)

	// OnStateChange reports a transition, for loading indicators.
	OnStateChange(state State)
}

// RendererFuncs adapts optional callbacks to a Renderer. Nil fields are ignored.
type RendererFuncs struct {
	ProfileLoaded func(github.UserProfile)
	ReposLoaded   func([]github.RepositorySummary, bool)
	Suggestions   func([]github.Suggestion)
	Error         func(errors.Code, string)
	StateChange   func(State)
}

func (f RendererFuncs) OnProfileLoaded(p github.UserProfile) {
	if f.ProfileLoaded != nil {
		f.ProfileLoaded(p)
	}
}

func (f RendererFuncs) OnReposLoaded(repos []github.RepositorySummary, appendMode bool) {
	if f.ReposLoaded != nil {
		f.ReposLoaded(repos, appendMode)
	}
}

func (f RendererFuncs) OnSuggestions(s []github.Suggestion) {
	if f.Suggestions != nil {
		f.Suggestions(s)
	}
}

func (f RendererFuncs) OnError(code errors.Code, message string) {
	if f.Error != nil {
		f.Error(code, message)
	}
}

func (f RendererFuncs) OnStateChange(s State) {
	if f.StateChange != nil {
		f.StateChange(s)
	}
}

// NopRenderer discards all output.
type NopRenderer struct{}

func (NopRenderer) OnProfileLoaded(github.UserProfile)             {}
func (NopRenderer) OnReposLoaded([]github.RepositorySummary, bool) {}
func (NopRenderer) OnSuggestions([]github.Suggestion)              {}
func (NopRenderer) OnError(errors.Code, string)                    {}
func (NopRenderer) OnStateChange(State)                            {}
