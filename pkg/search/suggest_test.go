package search

import (
	"context"
	"testing"
	"time"

	"github.com/matzehuels/octoscope/pkg/github"
)

func TestSession_InputIsDebounced(t *testing.T) {
	sg := &fakeSuggester{}
	r := &recorder{}
	s := newTestSession(&fakeFetcher{}, sg, r, 5)
	ctx := context.Background()

	for _, q := range []string{"oct", "octo", "octoc", "octoca"} {
		s.Input(ctx, q)
	}
	waitFor(t, func() bool { return len(sg.seen()) > 0 })
	time.Sleep(60 * time.Millisecond)

	if seen := sg.seen(); len(seen) != 1 || seen[0] != "octoca" {
		t.Errorf("queries = %v, want [octoca]", seen)
	}
	got, _ := r.lastSuggestions()
	if len(got) != 2 || got[0].Login != "octoca-1" {
		t.Errorf("suggestions = %+v", got)
	}
	if snap := s.Snapshot(); len(snap.Suggestions) != 2 {
		t.Errorf("snapshot suggestions = %d, want 2", len(snap.Suggestions))
	}
}

func TestSession_ShortInputHidesSuggestions(t *testing.T) {
	sg := &fakeSuggester{}
	r := &recorder{}
	s := newTestSession(&fakeFetcher{}, sg, r, 5)

	s.Input(context.Background(), "oc")
	time.Sleep(60 * time.Millisecond)

	if seen := sg.seen(); len(seen) != 0 {
		t.Errorf("queries = %v, want none", seen)
	}
	got, n := r.lastSuggestions()
	if n != 1 || len(got) != 0 {
		t.Errorf("suggestions rendered %d times, last %v; want one empty", n, got)
	}
}

func TestSession_SubmitCancelsPendingSuggestions(t *testing.T) {
	sg := &fakeSuggester{}
	r := &recorder{}
	s := newTestSession(&fakeFetcher{reposFn: pages(1)}, sg, r, 5)
	ctx := context.Background()

	s.Input(ctx, "octo")
	s.Submit(ctx, "octocat")
	time.Sleep(60 * time.Millisecond)

	if seen := sg.seen(); len(seen) != 0 {
		t.Errorf("queries = %v, want none after submit", seen)
	}
	if got, _ := r.lastSuggestions(); len(got) != 0 {
		t.Errorf("suggestions = %v, want hidden", got)
	}
}

func TestSession_StaleSuggestionsAreDropped(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	sg := &fakeSuggester{
		result: func(q string) []github.Suggestion {
			if q == "alic" {
				close(started)
				<-release
			}
			return []github.Suggestion{{Login: q}}
		},
	}
	r := &recorder{}
	s := newTestSession(&fakeFetcher{}, sg, r, 5)
	ctx := context.Background()

	s.Input(ctx, "alic")
	<-started
	s.ClearInput()
	close(release)
	time.Sleep(30 * time.Millisecond)

	got, _ := r.lastSuggestions()
	if len(got) != 0 {
		t.Errorf("suggestions = %v, want cleared", got)
	}
	if snap := s.Snapshot(); len(snap.Suggestions) != 0 {
		t.Errorf("snapshot suggestions = %v", snap.Suggestions)
	}
}

func TestSession_NilSuggester(t *testing.T) {
	r := &recorder{}
	s := newTestSession(&fakeFetcher{}, nil, r, 5)
	s.Input(context.Background(), "octo")
	time.Sleep(40 * time.Millisecond)
	if _, n := r.lastSuggestions(); n != 0 {
		t.Errorf("suggestions rendered %d times without a suggester", n)
	}
}

func TestState_String(t *testing.T) {
	tests := map[State]string{
		Idle:        "idle",
		Searching:   "searching",
		Loaded:      "loaded",
		LoadingMore: "loading-more",
		Exhausted:   "exhausted",
		Error:       "error",
		State(99):   "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
	if !Searching.Busy() || !LoadingMore.Busy() || Loaded.Busy() {
		t.Error("Busy() mismatch")
	}
}
