package github

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/matzehuels/octoscope/pkg/errors"
)

func TestFetchRepos(t *testing.T) {
	var query map[string]string
	server, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/octocat/repos" {
			http.NotFound(w, r)
			return
		}
		query = map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		w.Write([]byte(`[
			{"name":"hello-world","html_url":"https://github.com/octocat/hello-world","description":"My first repo","language":"Go","stargazers_count":42,"forks_count":7,"updated_at":"2025-03-01T10:00:00Z"},
			{"name":"spoon-knife","html_url":"https://github.com/octocat/spoon-knife","description":null,"language":null,"stargazers_count":0,"forks_count":0,"updated_at":"2024-12-24T08:30:00Z"}
		]`))
	})

	repos, err := testClient(t, server.URL, "").FetchRepos(context.Background(), "octocat", 2, 5)
	if err != nil {
		t.Fatalf("FetchRepos failed: %v", err)
	}

	want := map[string]string{"sort": "updated", "direction": "desc", "per_page": "5", "page": "2"}
	for k, v := range want {
		if query[k] != v {
			t.Errorf("query %s = %q, want %q", k, query[k], v)
		}
	}

	if len(repos) != 2 {
		t.Fatalf("len(repos) = %d, want 2", len(repos))
	}
	if repos[0].Name != "hello-world" || repos[1].Name != "spoon-knife" {
		t.Errorf("order = %s, %s; API order must be kept", repos[0].Name, repos[1].Name)
	}
	if repos[0].Stars != 42 || repos[0].Forks != 7 || repos[0].Language != "Go" {
		t.Errorf("repos[0] = %+v", repos[0])
	}
	if !repos[0].UpdatedAt.Equal(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("UpdatedAt = %v", repos[0].UpdatedAt)
	}
	if repos[1].Description != "" || repos[1].Language != "" {
		t.Errorf("null fields should decode empty: %+v", repos[1])
	}
}

func TestFetchRepos_InvalidArguments(t *testing.T) {
	server, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})
	c := testClient(t, server.URL, "")

	tests := []struct {
		name           string
		user           string
		page, pageSize int
	}{
		{"empty user", " ", 1, 10},
		{"page zero", "octocat", 0, 10},
		{"page size zero", "octocat", 1, 0},
		{"page size over cap", "octocat", 1, 101},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.FetchRepos(context.Background(), tt.user, tt.page, tt.pageSize)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
	if n := hits.Load(); n != 0 {
		t.Errorf("server saw %d requests, want 0", n)
	}
}

func TestFetchRepos_EmptyPage(t *testing.T) {
	server, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	repos, err := testClient(t, server.URL, "").FetchRepos(context.Background(), "octocat", 3, 10)
	if err != nil {
		t.Fatalf("FetchRepos failed: %v", err)
	}
	if repos == nil || len(repos) != 0 {
		t.Errorf("repos = %#v, want empty non-nil slice", repos)
	}
}

func TestFetchRepos_RateLimited(t *testing.T) {
	server, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "0")
		w.Header().Set("X-RateLimit-Reset", fmt.Sprint(time.Now().Add(time.Hour).Unix()))
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"API rate limit exceeded for 203.0.113.7."}`))
	})

	_, err := testClient(t, server.URL, "").FetchRepos(context.Background(), "octocat", 1, 10)
	if !errors.Is(err, errors.ErrCodeRateLimited) {
		t.Fatalf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeRateLimited)
	}
}

func TestIsLastPage(t *testing.T) {
	tests := []struct {
		n, pageSize int
		want        bool
	}{
		{0, 5, true},
		{3, 5, true},
		{4, 5, true},
		{5, 5, false},
		{10, 10, false},
		{9, 10, true},
	}
	for _, tt := range tests {
		if got := IsLastPage(tt.n, tt.pageSize); got != tt.want {
			t.Errorf("IsLastPage(%d, %d) = %v, want %v", tt.n, tt.pageSize, got, tt.want)
		}
	}
}
