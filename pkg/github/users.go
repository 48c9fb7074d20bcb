package github

import (
	"context"

	"github.com/matzehuels/octoscope/pkg/errors"
)

// FetchProfile resolves username into a full profile.
//
// The username is trimmed first; an empty result is rejected as
// INVALID_INPUT without touching the network. A missing user is reported as
// NOT_FOUND, which callers should render as a distinct "user not found"
// outcome rather than a generic failure.
func (c *Client) FetchProfile(ctx context.Context, username string) (*UserProfile, error) {
	name, err := errors.NormalizeUsername(username)
	if err != nil {
		return nil, err
	}

	var data apiUserResponse
	if err := c.Get(ctx, userPath(name), nil, &data); err != nil {
		return nil, err
	}

	p := data.profile()
	return &p, nil
}
