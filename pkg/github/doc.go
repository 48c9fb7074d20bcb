// Package github provides a client for the public GitHub REST API.
//
// # Overview
//
// The package covers the three endpoints octoscope consumes:
//
//   - GET /users/{username}: [Client.FetchProfile]
//   - GET /users/{username}/repos: [Client.FetchRepos], one page per call
//   - GET /search/users: [Suggester.Suggest], best-effort autocomplete
//
// All of them go through [Client.Get], which builds the URL, attaches the
// optional token and classifies the response into exactly one outcome. The
// outcomes are [errors.Error] values from pkg/errors, so callers switch on a
// code rather than on HTTP status numbers.
//
// # Usage
//
//	client := github.NewClient(github.Options{Token: os.Getenv("GITHUB_TOKEN")})
//
//	profile, err := client.FetchProfile(ctx, "octocat")
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    fmt.Println("User not found")
//	}
//
//	repos, err := client.FetchRepos(ctx, "octocat", 1, 10)
//	more := !github.IsLastPage(len(repos), 10)
//
// # Authentication
//
// A token is optional. Without one the client is anonymous and GitHub allows
// 60 requests/hour (10/minute for search). With a token the limit is 5000
// requests/hour. The token is attached through an oauth2 transport and is
// never logged.
//
// # Retries
//
// The client never retries. [IsTransient] is provided for callers that want
// to wrap a call with pkg/httputil's Retry.
//
// # Pagination
//
// GitHub does not return a total count for user repositories, so
// [IsLastPage] infers exhaustion from a short page. This is a heuristic: a
// user with exactly pageSize*N repositories gets one extra, empty page.
//
// [errors.Error]: github.com/matzehuels/octoscope/pkg/errors.Error
package github
