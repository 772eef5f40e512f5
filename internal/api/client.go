package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"bunny-store/internal/config"

	"go.uber.org/zap"
)

const maxErrorBody = 4 << 10

// Client talks to the storefront API. Every call is a single fresh round
// trip: no retries, no client-side timeout, no caching. Deadlines belong to
// the caller's context.
type Client struct {
	baseURL  string
	hc       *http.Client
	logger   *zap.Logger
	pageSize int
	maxPages int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// New creates a new Client for the configured upstream.
func New(cfg config.APIConfig, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		hc:       &http.Client{},
		logger:   logger,
		pageSize: cfg.PageSize,
		maxPages: cfg.MaxPages,
	}
	if c.pageSize <= 0 {
		c.pageSize = 20
	}
	if c.maxPages <= 0 {
		c.maxPages = DefaultMaxPages
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request describes a single call against the API. Method defaults to GET.
// Header entries override the defaults the client sets.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   io.Reader
}

// Do performs one round trip against {base}{path} and returns the raw JSON
// body. Errors are classified: *HTTPError for non-2xx statuses,
// *ContentTypeError for 2xx non-JSON bodies, *RequestError when no response
// was produced at all.
func (c *Client) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	url := c.baseURL + cleanPath(req.Path)

	httpReq, err := http.NewRequestWithContext(ctx, method, url, req.Body)
	if err != nil {
		return nil, &RequestError{URL: url, Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")
	for key, values := range req.Header {
		httpReq.Header[http.CanonicalHeaderKey(key)] = values
	}

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, &RequestError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := "HTTP " + resp.Status
		if body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)); readErr == nil {
			if text := strings.TrimSpace(string(body)); text != "" {
				message = truncate(text, 300)
			}
		}
		return nil, &HTTPError{StatusCode: resp.StatusCode, Message: message}
	}

	if !strings.Contains(contentType, "application/json") {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &ContentTypeError{
			ContentType: contentType,
			Snippet:     truncate(string(body), 80),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{URL: url, Err: err}
	}
	return json.RawMessage(bytes.TrimSpace(body)), nil
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Do(ctx, Request{Path: path})
}

// cleanPath guarantees exactly one leading slash, so "api/x" and "/api/x"
// resolve to the same URL.
func cleanPath(path string) string {
	return "/" + strings.TrimLeft(path, "/")
}
