// Package searchapi calls the product-search HTTP API and turns its
// responses into ranked actual-result lists.
package searchapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/mpavlovic/rankwatch/internal/reconcile"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 500 * time.Millisecond
	DefaultTimeout     = 30 * time.Second
)

// Config tunes the client's retry loop and request headers.
type Config struct {
	BaseURL     string
	MaxAttempts int
	BaseDelay   time.Duration
	Timeout     time.Duration
	Headers     []http.Header
}

// Client fetches ranked product results with retry, exponential backoff
// and rotating header profiles on rate-limit responses.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	headers     []http.Header
	headerIdx   atomic.Uint32
	maxAttempts int
	baseDelay   time.Duration
}

func NewClient(cfg Config) *Client {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	headers := cfg.Headers
	if len(headers) == 0 {
		headers = defaultHeaderProfiles()
	}
	return &Client{
		baseURL:     cfg.BaseURL,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		headers:     headers,
		maxAttempts: cfg.MaxAttempts,
		baseDelay:   cfg.BaseDelay,
	}
}

type searchResponse struct {
	Total    int64           `json:"total"`
	Products []productResult `json:"products"`
}

type productResult struct {
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// Search crawls up to pages result pages for a query, tagging every entry
// with its page number and absolute position. Crawling stops early when a
// page comes back short.
func (c *Client) Search(ctx context.Context, query string, pages, pageSize int) ([]reconcile.Actual, error) {
	if pages <= 0 {
		pages = 1
	}
	var all []reconcile.Actual
	for page := 1; page <= pages; page++ {
		got, err := c.SearchPage(ctx, query, page, pageSize)
		if err != nil {
			if page == 1 {
				return nil, err
			}
			slog.Warn("page fetch failed, keeping earlier pages", "query", query, "page", page, "error", err)
			break
		}
		all = append(all, got...)
		if len(got) < pageSize {
			break
		}
	}
	return all, nil
}

// SearchPage fetches one result page, retrying transient failures with
// exponential backoff. Rate-limit and forbidden responses rotate to the
// next header profile before retrying.
func (c *Client) SearchPage(ctx context.Context, query string, page, pageSize int) ([]reconcile.Actual, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepCtx(ctx, c.backoff(attempt)); err != nil {
				return nil, err
			}
		}

		resp, err := c.doSearch(ctx, query, page, pageSize)
		if err == nil {
			return c.toActuals(resp, page, pageSize), nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		var se *statusError
		if errors.As(err, &se) && (se.code == http.StatusTooManyRequests || se.code == http.StatusForbidden) {
			c.rotateHeaders()
		}
		slog.Warn("search attempt failed", "query", query, "page", page, "attempt", attempt, "error", err)
	}
	return nil, fmt.Errorf("search %q page %d after %d attempts: %w", query, page, c.maxAttempts, lastErr)
}

func (c *Client) doSearch(ctx context.Context, query string, page, pageSize int) (*searchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("page", fmt.Sprintf("%d", page))
	params.Set("size", fmt.Sprintf("%d", pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, vs := range c.currentHeaders() {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode, body: string(body)}
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return &sr, nil
}

func (c *Client) toActuals(resp *searchResponse, page, pageSize int) []reconcile.Actual {
	actuals := make([]reconcile.Actual, 0, len(resp.Products))
	for i, p := range resp.Products {
		actuals = append(actuals, reconcile.Actual{
			Name:             p.Name,
			SKU:              p.SKU,
			Page:             page,
			AbsolutePosition: (page-1)*pageSize + i + 1,
		})
	}
	return actuals
}

func (c *Client) backoff(attempt int) time.Duration {
	d := c.baseDelay
	for i := 2; i < attempt; i++ {
		d *= 2
	}
	return d
}

func (c *Client) currentHeaders() http.Header {
	return c.headers[int(c.headerIdx.Load())%len(c.headers)]
}

func (c *Client) rotateHeaders() {
	c.headerIdx.Add(1)
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.code, e.body)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func defaultHeaderProfiles() []http.Header {
	agents := []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
		"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
		"Mozilla/5.0 (X11; Linux x86_64; rv:125.0) Gecko/20100101 Firefox/125.0",
	}
	profiles := make([]http.Header, 0, len(agents))
	for _, ua := range agents {
		h := http.Header{}
		h.Set("User-Agent", ua)
		h.Set("Accept", "application/json")
		profiles = append(profiles, h)
	}
	return profiles
}
