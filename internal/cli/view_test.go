package cli

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/octoscope/pkg/github"
	"github.com/matzehuels/octoscope/pkg/prefs"
)

func restoreStdout() { stdout = os.Stdout }

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Time{}, "—"},
		{now.Add(-30 * time.Second), "just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-3 * time.Hour), "3h ago"},
		{now.Add(-50 * time.Hour), "2d ago"},
		{time.Date(2024, 12, 24, 8, 0, 0, 0, time.UTC), "Dec 24, 2024"},
	}
	for _, tt := range tests {
		if got := formatRelativeTime(tt.t, now); got != tt.want {
			t.Errorf("formatRelativeTime(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"multi\nline   text", 20, "multi line text"},
		{"abcdefghij", 5, "abcd…"},
		{"ünïcödé", 4, "ünï…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestRenderProfile(t *testing.T) {
	p := github.UserProfile{
		Login:       "octocat",
		Name:        "The Octocat",
		Bio:         "Mascot",
		Blog:        "github.blog",
		Location:    "San Francisco",
		Followers:   12345,
		Following:   9,
		PublicRepos: 8,
	}
	out := renderProfile(newStyles(prefs.Dark), p)

	for _, want := range []string{"The Octocat", "@octocat", "Mascot", "https://github.blog", "San Francisco", "12,345", "followers"} {
		if !strings.Contains(out, want) {
			t.Errorf("profile missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Company") || strings.Contains(out, "Email") {
		t.Errorf("empty fields should be omitted:\n%s", out)
	}
}

func TestRenderProfileWithoutName(t *testing.T) {
	out := renderProfile(newStyles(prefs.Light), github.UserProfile{Login: "ghost"})
	if strings.Contains(out, "@ghost") {
		t.Errorf("login repeated when no name is set:\n%s", out)
	}
	if !strings.Contains(out, "ghost") {
		t.Errorf("login missing:\n%s", out)
	}
}

func TestRenderRepoTable(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	repos := []github.RepositorySummary{
		{Name: "hello-world", Description: "My first repo", Language: "Go", Stars: 1500, Forks: 3, UpdatedAt: now.Add(-2 * time.Hour)},
		{Name: "spoon-knife", UpdatedAt: now.Add(-400 * time.Hour)},
	}
	out := renderRepoTable(newStyles(prefs.Light), repos, 0, now)

	for _, want := range []string{"Repository", "hello-world", "spoon-knife", "My first repo", "Go", "1,500", "2h ago", "—"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "hello-world") > strings.Index(out, "spoon-knife") {
		t.Error("rows must keep API order")
	}
}

func TestPaletteFor(t *testing.T) {
	if paletteFor(prefs.Dark) != darkPalette || paletteFor(prefs.Light) != lightPalette {
		t.Error("paletteFor returned the wrong palette")
	}
}
