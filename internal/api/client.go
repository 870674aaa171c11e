// Package api implements the HTTP client for the secret review
// service. Every call is a single request: no retries, no caching.
// Authentication is a bearer token injected per request through an
// oauth2 transport, so a token refreshed by `sr configure` between two
// invocations is picked up without restarting anything.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/secretreview/sr/internal/httputil"
	"github.com/secretreview/sr/internal/log"
)

// ErrAuthExpired reports an HTTP 401 from the service. The token is
// opaque to sr, so there is nothing to refresh locally; the user has
// to configure a new one.
var ErrAuthExpired = errors.New("authentication expired")

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 4 << 20

// StatusError reports a response that did not carry the protocol's
// JSON shape. The snippet helps identify proxies and login pages
// answering in place of the service.
type StatusError struct {
	StatusCode int
	Snippet    string
}

func (e *StatusError) Error() string {
	if e.Snippet == "" {
		return fmt.Sprintf("unexpected response from server (HTTP %d)", e.StatusCode)
	}
	return fmt.Sprintf("unexpected response from server (HTTP %d): %s", e.StatusCode, e.Snippet)
}

// TokenProvider supplies the bearer token for a single request.
// Implementations re-read their backing store on every call.
type TokenProvider interface {
	Token() (string, error)
}

// TokenProviderFunc adapts a function to the TokenProvider interface.
type TokenProviderFunc func() (string, error)

// Token implements TokenProvider.
func (f TokenProviderFunc) Token() (string, error) {
	return f()
}

// tokenSource adapts a TokenProvider to oauth2.TokenSource. It is
// intentionally not wrapped in oauth2.ReuseTokenSource: the provider
// must be consulted on every request.
type tokenSource struct {
	provider TokenProvider
}

func (s tokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.provider.Token()
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}

// Client talks to the review service.
type Client struct {
	baseURL    string
	timeout    time.Duration
	base       *http.Client
	httpClient *http.Client
	logger     log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the overall request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithBaseClient replaces the underlying HTTP client. The bearer
// transport is layered on top of it. Used in tests.
func WithBaseClient(hc *http.Client) Option {
	return func(c *Client) {
		c.base = hc
	}
}

// WithLogger sets the logger for request/response diagnostics.
func WithLogger(l log.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a client for the service at baseURL. Trailing slashes on
// baseURL are ignored.
func New(baseURL string, tokens TokenProvider, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.base == nil {
		c.base = httputil.NewClient(httputil.ClientOptions{Timeout: c.timeout})
	}
	c.httpClient = &http.Client{
		Timeout:       c.base.Timeout,
		CheckRedirect: c.base.CheckRedirect,
		Transport: &oauth2.Transport{
			Source: tokenSource{provider: tokens},
			Base:   c.base.Transport,
		},
	}
	return c
}

// Propose submits a set of variables for review.
func (c *Client) Propose(ctx context.Context, req ProposeRequest) (*ProposeResult, error) {
	var result ProposeResult
	if err := c.do(ctx, http.MethodPost, "/changes", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// EnvHistory fetches the current variable names and change history of
// an environment.
func (c *Client) EnvHistory(ctx context.Context, project, env string) (*EnvHistory, error) {
	path := "/history/" + url.PathEscape(project) + "/" + url.PathEscape(env)
	var result EnvHistory
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ChangeDiff fetches the detail of a single change.
func (c *Client) ChangeDiff(ctx context.Context, changeID string) (*ChangeDetail, error) {
	path := "/changes/" + url.PathEscape(changeID) + "/diff"
	var result ChangeDetail
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// PendingChanges lists changes awaiting review.
func (c *Client) PendingChanges(ctx context.Context) ([]PendingChange, error) {
	var result pendingResponse
	if err := c.do(ctx, http.MethodGet, "/changes?status=pending", nil, &result); err != nil {
		return nil, err
	}
	return result.Changes, nil
}

// do issues one request and decodes the JSON response into out.
// A 401 is terminal and surfaces as ErrAuthExpired. Other statuses are
// decoded regardless: the protocol reports application errors in the
// body, not the status line.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	c.logger.Debug("api request", "method", method, "path", path, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug("api response", "status", resp.StatusCode, "request_id", requestID)

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrAuthExpired
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &StatusError{StatusCode: resp.StatusCode, Snippet: snippet(data)}
	}
	return nil
}

// snippet trims a response body down to something fit for an error
// message.
func snippet(data []byte) string {
	s := strings.TrimSpace(string(data))
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > 120 {
		s = s[:120] + "..."
	}
	return s
}
