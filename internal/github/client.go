package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Searcher defines the interface for querying the issue search endpoint.
// This interface is implemented by *Client and can be used for testing.
type Searcher interface {
	SearchIssues(ctx context.Context, query SearchQuery) (SearchResult, error)
}

// Ensure Client implements Searcher at compile time.
var _ Searcher = (*Client)(nil)

// ErrRateLimited marks responses the API rejected because the caller ran out
// of request quota. Callers that only care about success or failure can ignore it.
var ErrRateLimited = errors.New("rate limit reached")

// Client talks to the GitHub search HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	limiter   *rate.Limiter
}

const (
	defaultAPIURL    = "https://api.github.com"
	defaultUserAgent = "issuedeck/0.1"
	requestTimeout   = 15 * time.Second
	maxPerPage       = 100
)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithRequestInterval spaces consecutive requests at least interval apart.
// Zero or negative disables spacing.
func WithRequestInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for the given API base URL.
func NewClient(apiURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SearchQuery configures /search/issues requests.
type SearchQuery struct {
	Qualifier string // e.g. "repo:angular/components"
	Sort      string
	Order     string
	Page      int
	PerPage   int
}

// SearchIssues retrieves one page of issue search results.
func (c *Client) SearchIssues(ctx context.Context, query SearchQuery) (SearchResult, error) {
	if c == nil {
		return SearchResult{}, fmt.Errorf("client is nil")
	}
	if query.Page <= 0 {
		return SearchResult{}, fmt.Errorf("page must be positive, got %d", query.Page)
	}
	if strings.TrimSpace(query.Qualifier) == "" {
		return SearchResult{}, fmt.Errorf("search qualifier required")
	}

	values := url.Values{}
	values.Set("q", strings.TrimSpace(query.Qualifier))
	if sort := strings.TrimSpace(query.Sort); sort != "" {
		values.Set("sort", sort)
	}
	if order := strings.TrimSpace(query.Order); order != "" {
		values.Set("order", order)
	}
	values.Set("page", strconv.Itoa(query.Page))
	if query.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(min(query.PerPage, maxPerPage)))
	}

	rel := &url.URL{Path: "search/issues", RawQuery: values.Encode()}
	var payload SearchResult
	if err := c.doURL(ctx, http.MethodGet, rel, &payload); err != nil {
		return SearchResult{}, err
	}
	if payload.Items == nil {
		payload.Items = []Issue{}
	}
	return payload, nil
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("wait for request slot: %w", err)
		}
	}

	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if isRateLimited(resp) {
		return fmt.Errorf("api %s returned status %d: %w", rel.Path, resp.StatusCode, ErrRateLimited)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", rel.Path, resp.StatusCode)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// isRateLimited reports whether resp is a quota rejection. GitHub answers 403
// with X-RateLimit-Remaining: 0 for the primary limit and 429 for secondary limits.
func isRateLimited(resp *http.Response) bool {
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return true
	case http.StatusForbidden:
		return resp.Header.Get("X-RateLimit-Remaining") == "0"
	}
	return false
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	// Keep any path prefix (GitHub Enterprise serves the API under /api/v3)
	// and make it a directory so relative references resolve beneath it.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
