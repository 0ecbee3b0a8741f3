package github

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/go-github/v66/github"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/oauth2"
)

const userAgent = "pagesmith-publisher"

const validationCacheSize = 256

type Client struct {
	hc *http.Client // optional; for tests

	validations *lru.Cache[string, ValidateResult]
}

func NewClient() *Client {
	cache, err := lru.New[string, ValidateResult](validationCacheSize)
	if err != nil {
		panic(err) // only fails for a non-positive size
	}
	return &Client{validations: cache}
}

// NewClientWithHTTPClient returns a client that uses the given http.Client for API calls (e.g. in tests).
func NewClientWithHTTPClient(hc *http.Client) *Client {
	c := NewClient()
	c.hc = hc
	return c
}

// api builds a GitHub API client for one call sequence. An empty token yields
// an unauthenticated client (used by repository validation).
func (c *Client) api(ctx context.Context, token string) *github.Client {
	var hc *http.Client
	switch {
	case c.hc != nil:
		hc = c.hc
	case token == "":
		hc = &http.Client{Transport: &retryTransport{}}
	default:
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(ctx, ts)
		hc.Transport = &retryTransport{base: hc.Transport}
	}
	g := github.NewClient(hc)
	g.UserAgent = userAgent
	return g
}

// retryTransport retries an idempotent GET once when GitHub answers with a
// transient gateway error.
type retryTransport struct {
	base http.RoundTripper
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	res, err := base.RoundTrip(req)
	if err != nil || req.Method != http.MethodGet {
		return res, err
	}
	switch res.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		res.Body.Close()
		return base.RoundTrip(req)
	}
	return res, nil
}

func isNameTaken(err error) bool {
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusUnprocessableEntity
}

func isNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}
