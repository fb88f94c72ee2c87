// Package search queries the Naver news search API.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ppiankov/finbrief/internal/logging"
	"github.com/ppiankov/finbrief/internal/model"
)

const (
	// DefaultBaseURL is the Naver news search endpoint
	DefaultBaseURL = "https://openapi.naver.com/v1/search/news.json"

	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 10

	// display and start bounds accepted by the API
	maxDisplay = 100
	maxStart   = 1000
)

// Query is one search request
type Query struct {
	Text    string
	Display int    // page size, 1..100
	Start   int    // 1-based offset, 1..1000
	Sort    string // "date" or "sim"
}

// StatusError is a non-2xx reply from the search provider
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("naver search: status %d: %s", e.StatusCode, e.Body)
}

// NaverClient calls the news search API
type NaverClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	limiter      *rate.Limiter
	logger       arbor.ILogger
}

// ClientOption configures a NaverClient
type ClientOption func(*NaverClient)

// WithBaseURL overrides the endpoint
func WithBaseURL(baseURL string) ClientOption {
	return func(c *NaverClient) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets the HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *NaverClient) { c.httpClient = httpClient }
}

// WithLogger sets the logger
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *NaverClient) { c.logger = logger }
}

// WithRateLimit caps requests per second
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *NaverClient) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// NewNaverClient creates a client with the given application credentials
func NewNaverClient(clientID, clientSecret string, opts ...ClientOption) *NaverClient {
	c := &NaverClient{
		baseURL:      DefaultBaseURL,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: DefaultTimeout},
		limiter:      rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:       logging.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Total int               `json:"total"`
	Items []model.RawRecord `json:"items"`
}

// Search runs q and returns the hits in provider order
func (c *NaverClient) Search(ctx context.Context, q Query) ([]model.RawRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.values().Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("naver search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	c.logger.Debug().
		Str("query", q.Text).
		Int("items", len(decoded.Items)).
		Dur("elapsed", time.Since(started)).
		Msg("Naver search completed")

	return decoded.Items, nil
}

func (q Query) values() url.Values {
	display := clamp(q.Display, 1, maxDisplay, 10)
	start := clamp(q.Start, 1, maxStart, 1)
	sortMode := q.Sort
	if sortMode != "sim" {
		sortMode = "date"
	}

	v := url.Values{}
	v.Set("query", q.Text)
	v.Set("display", strconv.Itoa(display))
	v.Set("start", strconv.Itoa(start))
	v.Set("sort", sortMode)
	return v
}

func clamp(n, lo, hi, fallback int) int {
	if n <= 0 {
		return fallback
	}
	return min(max(n, lo), hi)
}
