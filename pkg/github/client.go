package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/matzehuels/octoscope/pkg/buildinfo"
	"github.com/matzehuels/octoscope/pkg/errors"
	"github.com/matzehuels/octoscope/pkg/observability"
)

const (
	// DefaultBaseURL is the public GitHub API origin.
	DefaultBaseURL = "https://api.github.com"

	apiVersion     = "2022-11-28"
	defaultTimeout = 10 * time.Second

	// maxErrorBody bounds how much of an error response is read for GitHub's message.
	maxErrorBody = 64 << 10
)

// Options configures a [Client].
type Options struct {
	// BaseURL overrides the API origin (tests, GitHub Enterprise).
	BaseURL string

	// Token is an optional personal access token. Empty means anonymous.
	Token string

	// Timeout bounds each request. Zero uses 10 seconds.
	Timeout time.Duration

	// HTTPClient supplies the base transport. Its Timeout is ignored in favor of Timeout.
	HTTPClient *http.Client
}

// Client issues GET requests against the GitHub REST API and classifies
// responses. It holds no per-search state and is safe for concurrent use.
type Client struct {
	http          *http.Client
	baseURL       string
	headers       map[string]string
	authenticated bool
}

// NewClient creates a Client. An empty token yields an anonymous client.
func NewClient(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var transport http.RoundTripper = http.DefaultTransport
	if opts.HTTPClient != nil && opts.HTTPClient.Transport != nil {
		transport = opts.HTTPClient.Transport
	}
	if opts.Token != "" {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}),
			Base:   transport,
		}
	}

	return &Client{
		http:    &http.Client{Timeout: timeout, Transport: transport},
		baseURL: baseURL,
		headers: map[string]string{
			"Accept":               "application/vnd.github+json",
			"X-GitHub-Api-Version": apiVersion,
			"User-Agent":           buildinfo.UserAgent(),
		},
		authenticated: opts.Token != "",
	}
}

// Authenticated reports whether requests carry a token.
func (c *Client) Authenticated() bool { return c.authenticated }

// BaseURL returns the API origin requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// Get performs a GET on path with the given query and JSON-decodes a 2xx body
// into v. Every query value is percent-encoded; path segments must already be
// escaped by the caller (see [url.PathEscape]).
//
// Non-2xx responses come back as *errors.Error:
//
//   - 404: NOT_FOUND
//   - 401: UNAUTHORIZED
//   - 403, 429: RATE_LIMITED, with ResetAt when GitHub sent a reset time
//   - anything else: SERVER_ERROR with Status set
//
// A request that never completes is NETWORK_FAILURE. Get never retries.
func (c *Client) Get(ctx context.Context, path string, query url.Values, v any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "build request for %s", path)
	}
	for k, val := range c.headers {
		req.Header.Set(k, val)
	}

	hooks := observability.HTTP()
	host := req.URL.Host
	hooks.OnRequest(ctx, req.Method, host, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, req.URL.Path, err)
		return errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", path)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkResponse(resp, time.Now()); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		e := errors.Wrap(errors.ErrCodeServer, err, "decode response from %s", path)
		e.Status = resp.StatusCode
		return e
	}
	return nil
}

func checkResponse(resp *http.Response, now time.Time) error {
	code := resp.StatusCode
	if code >= 200 && code < 300 {
		return nil
	}

	msg := apiMessage(resp.Body)
	if msg == "" {
		msg = http.StatusText(code)
	}

	switch code {
	case http.StatusNotFound:
		return &errors.Error{Code: errors.ErrCodeNotFound, Message: msg, Status: code}
	case http.StatusUnauthorized:
		return &errors.Error{Code: errors.ErrCodeUnauthorized, Message: msg, Status: code}
	case http.StatusForbidden, http.StatusTooManyRequests:
		return errors.RateLimited(code, resetTime(resp.Header, now), msg)
	default:
		return &errors.Error{Code: errors.ErrCodeServer, Message: fmt.Sprintf("status %d: %s", code, msg), Status: code}
	}
}

// apiMessage extracts the "message" field GitHub puts in error bodies.
func apiMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&payload); err != nil {
		return ""
	}
	return payload.Message
}

// resetTime reads X-RateLimit-Reset (unix seconds) and falls back to
// Retry-After (seconds from now). Zero means unknown.
func resetTime(h http.Header, now time.Time) time.Time {
	if v := h.Get("X-RateLimit-Reset"); v != "" {
		if secs, err := strconv.ParseInt(v, 10, 64); err == nil && secs > 0 {
			return time.Unix(secs, 0)
		}
	}
	if v := h.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			return now.Add(time.Duration(secs) * time.Second)
		}
	}
	return time.Time{}
}

// IsTransient reports whether err is worth retrying: server errors and
// network failures, but never a cancelled context.
func IsTransient(err error) bool {
	if err == nil || errors.IsContext(err) {
		return false
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeServer, errors.ErrCodeNetwork:
		return true
	}
	return false
}

func userPath(username string) string {
	return "/users/" + url.PathEscape(username)
}
