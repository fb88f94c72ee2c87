// Package fetch downloads publisher article pages for body enrichment.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ppiankov/finbrief/internal/cache"
	"github.com/ppiankov/finbrief/internal/logging"
	"github.com/ppiankov/finbrief/internal/model"
	"github.com/ppiankov/finbrief/internal/util"
	"github.com/ppiankov/finbrief/internal/worker"
)

// ErrDisallowed is returned when robots.txt forbids the page
var ErrDisallowed = errors.New("disallowed by robots.txt")

// StatusError reports a non-2xx response
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status: %s", e.Status)
}

// Page is a fetched article page
type Page struct {
	HTML        string
	StatusCode  int
	ContentType string
	FinalURL    string
}

// Fetcher fetches article pages with optional caching, pacing and robots checks
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	cache      cache.Cache
	cacheTTL   time.Duration
	limiter    *worker.Limiter
	robots     *util.RobotsChecker
	logger     arbor.ILogger
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithCache stores fetched pages in c
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(f *Fetcher) {
		f.cache = c
		f.cacheTTL = ttl
	}
}

// WithLimiter paces requests per domain
func WithLimiter(l *worker.Limiter) Option {
	return func(f *Fetcher) { f.limiter = l }
}

// WithRobots skips pages that robots.txt disallows
func WithRobots(r *util.RobotsChecker) Option {
	return func(f *Fetcher) { f.robots = r }
}

// WithLogger sets the logger
func WithLogger(l arbor.ILogger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// NewFetcher creates a fetcher from the HTTP configuration
func NewFetcher(cfg model.HTTPConfig, opts ...Option) *Fetcher {
	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 4 << 20
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, "")

	f := &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  maxBytes,
		logger:    logging.NewNop(),
	}

	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchPage returns the markup of rawURL, serving from cache when possible.
// The page is requested once; a failed fetch is not retried.
func (f *Fetcher) FetchPage(ctx context.Context, rawURL string) (string, error) {
	key := cache.PageKey(rawURL)
	if f.cache != nil {
		if page, ok := f.cache.Get(key); ok {
			return string(page), nil
		}
	}

	if f.robots != nil {
		allowed, crawlDelay, _ := f.robots.CanFetch(ctx, rawURL)
		if !allowed {
			return "", fmt.Errorf("%s: %w", rawURL, ErrDisallowed)
		}
		if f.limiter != nil {
			f.limiter.ApplyCrawlDelay(rawURL, crawlDelay)
		}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return "", fmt.Errorf("rate limit: %w", err)
		}
	}

	page, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}

	if f.cache != nil {
		if err := f.cache.Set(key, []byte(page.HTML), f.cacheTTL); err != nil {
			f.logger.Warn().Err(err).Str("url", rawURL).Msg("Failed to cache page")
		}
	}
	return page.HTML, nil
}

// Fetch performs a single GET
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en;q=0.8")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Page{
		HTML:        string(body),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		FinalURL:    resp.Request.URL.String(),
	}, nil
}
