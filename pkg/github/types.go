package github

import (
	"strings"
	"time"
)

// UserProfile is a snapshot of a GitHub user, fetched fresh per search.
// Optional fields are empty when the user has not set them.
type UserProfile struct {
	Login       string `json:"login"`
	Name        string `json:"name,omitempty"`
	Bio         string `json:"bio,omitempty"`
	AvatarURL   string `json:"avatar_url"`
	HTMLURL     string `json:"html_url"`
	Company     string `json:"company,omitempty"`
	Location    string `json:"location,omitempty"`
	Blog        string `json:"blog,omitempty"`
	Email       string `json:"email,omitempty"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PublicRepos int    `json:"public_repos"`
}

// DisplayName returns the user's name, or the login when no name is set.
func (p UserProfile) DisplayName() string {
	if n := strings.TrimSpace(p.Name); n != "" {
		return n
	}
	return p.Login
}

// BlogURL returns the blog link with an https:// scheme added when the user
// entered a bare host. Empty when no blog is set.
func (p UserProfile) BlogURL() string {
	blog := strings.TrimSpace(p.Blog)
	if blog == "" {
		return ""
	}
	lower := strings.ToLower(blog)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return blog
	}
	return "https://" + blog
}

// RepositorySummary is one entry of a user's repository listing. Listings are
// ordered by UpdatedAt descending as returned by the API and are never re-sorted.
type RepositorySummary struct {
	Name        string    `json:"name"`
	HTMLURL     string    `json:"html_url"`
	Description string    `json:"description,omitempty"`
	Language    string    `json:"language,omitempty"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Suggestion is an autocomplete candidate for a partial username.
type Suggestion struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
}

// apiUserResponse is the GitHub API response for GET /users/{username}.
// Nullable strings decode to "".
type apiUserResponse struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
	HTMLURL     string `json:"html_url"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Blog        string `json:"blog"`
	Email       string `json:"email"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	PublicRepos int    `json:"public_repos"`
}

func (r apiUserResponse) profile() UserProfile {
	return UserProfile(r)
}

// apiRepoResponse is one element of GET /users/{username}/repos.
type apiRepoResponse struct {
	Name        string    `json:"name"`
	HTMLURL     string    `json:"html_url"`
	Description string    `json:"description"`
	Language    string    `json:"language"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (r apiRepoResponse) summary() RepositorySummary {
	return RepositorySummary{
		Name:        r.Name,
		HTMLURL:     r.HTMLURL,
		Description: r.Description,
		Language:    r.Language,
		Stars:       r.Stars,
		Forks:       r.Forks,
		UpdatedAt:   r.UpdatedAt,
	}
}

// apiSearchUsersResponse is the GitHub API response for GET /search/users.
type apiSearchUsersResponse struct {
	TotalCount int `json:"total_count"`
	Items      []struct {
		Login     string `json:"login"`
		AvatarURL string `json:"avatar_url"`
	} `json:"items"`
}
