// Package github provides a GitHub-backed implementation of
// repoctx.RepoService using the recursive git tree and repository contents
// endpoints.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/fwojciec/repoctx"
)

const (
	// DefaultTimeout is the timeout applied to each API request.
	DefaultTimeout = 10 * time.Second

	// DefaultRequestsPerSecond paces API calls. Aggregation is strictly
	// sequential, so this only smooths bursts of per-file fetches.
	DefaultRequestsPerSecond = 5.0
)

// Ensure Client implements repoctx.RepoService at compile time.
var _ repoctx.RepoService = (*Client)(nil)

// Client reads repository trees and file contents from the GitHub API.
// Unauthenticated clients work for public repositories within GitHub's
// anonymous rate limits; provide a token via WithToken to raise them.
type Client struct {
	gh      *gh.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*options)

type options struct {
	token      string
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	rps        float64
}

// WithToken authenticates requests with a personal access token.
func WithToken(token string) Option {
	return func(o *options) { o.token = token }
}

// WithHTTPClient substitutes the HTTP client used for API requests.
// Overrides WithToken and WithTimeout.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithBaseURL points the client at a different API endpoint. Used by tests to
// target a local server.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithTimeout sets the per-request timeout. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithRequestsPerSecond sets the client-side request pacing.
func WithRequestsPerSecond(rps float64) Option {
	return func(o *options) { o.rps = rps }
}

// NewClient creates a new GitHub API client.
func NewClient(opts ...Option) (*Client, error) {
	o := options{
		timeout: DefaultTimeout,
		rps:     DefaultRequestsPerSecond,
	}
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		if o.token != "" {
			ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: o.token})
			httpClient = oauth2.NewClient(context.Background(), ts)
		} else {
			httpClient = &http.Client{}
		}
		httpClient.Timeout = o.timeout
	}

	client := gh.NewClient(httpClient)
	if o.baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(o.baseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse base URL: %w", err)
		}
		client.BaseURL = u
	}

	return &Client{
		gh:      client,
		limiter: rate.NewLimiter(rate.Limit(o.rps), 1),
	}, nil
}

// ListTree returns the full recursive file tree of the repository at ref.
func (c *Client) ListTree(ctx context.Context, repo repoctx.Repo, ref string) ([]repoctx.TreeEntry, error) {
	if err := repo.Validate(); err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	tree, _, err := c.gh.Git.GetTree(ctx, repo.Owner, repo.Name, ref, true)
	if err != nil {
		return nil, wrapError(err, fmt.Sprintf("list tree of %s@%s", repo, ref))
	}

	entries := make([]repoctx.TreeEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		entries = append(entries, repoctx.TreeEntry{
			Path:   e.GetPath(),
			IsFile: e.GetType() == "blob",
		})
	}
	return entries, nil
}

// FetchRaw returns the decoded content of a single file at ref.
func (c *Client) FetchRaw(ctx context.Context, repo repoctx.Repo, ref, path string) (string, error) {
	if err := repo.Validate(); err != nil {
		return "", err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	opts := &gh.RepositoryContentGetOptions{Ref: ref}
	content, _, _, err := c.gh.Repositories.GetContents(ctx, repo.Owner, repo.Name, path, opts)
	if err != nil {
		return "", wrapError(err, fmt.Sprintf("fetch %s@%s:%s", repo, ref, path))
	}
	if content == nil {
		return "", repoctx.Errorf(repoctx.EINVALID, "path %q is a directory, not a file", path)
	}

	raw, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", path, err)
	}
	return raw, nil
}

// wrapError translates go-github errors into application error codes.
func wrapError(err error, op string) error {
	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) {
		return repoctx.Errorf(repoctx.EUNAVAILABLE, "%s: rate limited until %s", op, rateErr.Rate.Reset.Format(time.RFC3339))
	}

	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		switch ghErr.Response.StatusCode {
		case http.StatusNotFound:
			return repoctx.Errorf(repoctx.ENOTFOUND, "%s: not found", op)
		case http.StatusUnauthorized, http.StatusForbidden:
			return repoctx.Errorf(repoctx.EUNAVAILABLE, "%s: access denied", op)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
