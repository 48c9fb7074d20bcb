package github

import (
	"context"
	"net/url"
	"strconv"

	"github.com/matzehuels/octoscope/pkg/errors"
)

// FetchRepos fetches one page of username's public repositories, most
// recently updated first.
//
// The call is stateless: the caller owns the page counter and any
// accumulation. Requesting the same page twice issues two requests and returns
// the same data; it is up to the caller not to append it twice.
func (c *Client) FetchRepos(ctx context.Context, username string, page, pageSize int) ([]RepositorySummary, error) {
	name, err := errors.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}
	if err := errors.ValidatePage(page, pageSize); err != nil {
		return nil, err
	}

	query := url.Values{
		"sort":      {"updated"},
		"direction": {"desc"},
		"per_page":  {strconv.Itoa(pageSize)},
		"page":      {strconv.Itoa(page)},
	}

	var data []apiRepoResponse
	if err := c.Get(ctx, userPath(name)+"/repos", query, &data); err != nil {
		return nil, err
	}

	repos := make([]RepositorySummary, 0, len(data))
	for _, r := range data {
		repos = append(repos, r.summary())
	}
	return repos, nil
}

// IsLastPage reports whether a page of n results means no further pages
// exist. It is a best-effort heuristic: GitHub sends no total count for this
// endpoint, so a short page is taken as the end. A full final page costs one
// extra request that comes back empty.
func IsLastPage(n, pageSize int) bool {
	return n < pageSize
}
