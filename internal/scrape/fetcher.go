// Package scrape collects the web half of the source data: peak
// profiles from the Nepal Himal Peak Profile site, with PeakVisor as
// a fallback for peaks NHPP does not list. Fetches go through a
// per-domain rate limiter, a robots.txt gate and a layered page cache.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/cache"
	"github.com/mlnrt/himalayan-database-neo4j-import-tool/internal/worker"
)

// ErrNotFound reports a 404 response. PeakVisor lookups probe several
// candidate URLs per peak, so a missing page is an expected outcome
// the caller skips over, not a failure.
var ErrNotFound = errors.New("page not found")

// ErrDisallowed reports a URL blocked by the site's robots.txt.
var ErrDisallowed = errors.New("disallowed by robots.txt")

// Fetcher retrieves HTML pages with caching and rate limiting.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	pages      cache.Cache    // nil disables caching
	cacheTTL   time.Duration
	limiter    *worker.Limiter
	robots     *RobotsChecker // nil disables the robots gate
}

// NewFetcher creates a Fetcher. pages and robots may be nil.
func NewFetcher(timeout time.Duration, userAgent string, maxBytes int64,
	pages cache.Cache, cacheTTL time.Duration,
	limiter *worker.Limiter, robots *RobotsChecker) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: userAgent,
		maxBytes:  maxBytes,
		pages:     pages,
		cacheTTL:  cacheTTL,
		limiter:   limiter,
		robots:    robots,
	}
}

// Get retrieves the HTML body of rawURL, serving from the page cache
// when possible. Only 2xx bodies are cached.
func (f *Fetcher) Get(ctx context.Context, rawURL string) (string, error) {
	key := cache.PageKey(rawURL)
	if f.pages != nil {
		if body, found := f.pages.Get(key); found {
			return string(body), nil
		}
	}

	if f.robots != nil {
		allowed, delay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return "", fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return "", fmt.Errorf("%s: %w", rawURL, ErrDisallowed)
		}
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return "", fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%s: %w", rawURL, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if f.pages != nil {
		_ = f.pages.Set(key, body, f.cacheTTL)
	}
	return string(body), nil
}
