package series

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ppiankov/finbrief/internal/logging"
	"github.com/ppiankov/finbrief/internal/model"
)

const (
	DefaultBaseURL   = "https://ecos.bok.or.kr/api"
	DefaultTimeout   = 15 * time.Second
	DefaultRateLimit = 2

	// maxRows bounds a single StatisticSearch page
	maxRows = 1000

	// noDataCode is reported when a period has no observations
	noDataCode = "INFO-200"
)

// StatusError is a non-2xx reply or an API-level error
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("ecos: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("ecos: status %d: %s", e.StatusCode, e.Message)
}

// EcosClient reads daily statistics from the Bank of Korea ECOS API
type EcosClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     arbor.ILogger
}

// ClientOption configures an EcosClient
type ClientOption func(*EcosClient)

// WithBaseURL overrides the API root
func WithBaseURL(baseURL string) ClientOption {
	return func(c *EcosClient) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient sets the HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *EcosClient) { c.httpClient = httpClient }
}

// WithLogger sets the logger
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *EcosClient) { c.logger = logger }
}

// NewEcosClient creates a client authenticated with apiKey
func NewEcosClient(apiKey string, opts ...ClientOption) *EcosClient {
	c := &EcosClient{
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:     logging.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

type statisticResponse struct {
	StatisticSearch *struct {
		ListTotalCount int               `json:"list_total_count"`
		Rows           []model.SeriesRow `json:"row"`
	} `json:"StatisticSearch"`
	Result *struct {
		Code    string `json:"CODE"`
		Message string `json:"MESSAGE"`
	} `json:"RESULT"`
}

// DailyRows returns daily rows of stat between start and end inclusive.
// When items is non-empty only rows with those item codes are kept.
func (c *EcosClient) DailyRows(ctx context.Context, stat string, items []string, start, end time.Time) ([]model.SeriesRow, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	endpoint := fmt.Sprintf("%s/StatisticSearch/%s/json/kr/1/%d/%s/D/%s/%s",
		c.baseURL,
		url.PathEscape(c.apiKey),
		maxRows,
		url.PathEscape(stat),
		start.Format("20060102"),
		end.Format("20060102"),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ecos: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	var decoded statisticResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode statistic response: %w", err)
	}

	if decoded.Result != nil {
		if decoded.Result.Code == noDataCode {
			return nil, nil
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Code: decoded.Result.Code, Message: decoded.Result.Message}
	}
	if decoded.StatisticSearch == nil {
		return nil, nil
	}

	rows := filterItems(decoded.StatisticSearch.Rows, items)

	c.logger.Debug().
		Str("stat", stat).
		Int("rows", len(decoded.StatisticSearch.Rows)).
		Int("kept", len(rows)).
		Msg("ECOS rows fetched")

	return rows, nil
}

func filterItems(rows []model.SeriesRow, items []string) []model.SeriesRow {
	if len(items) == 0 {
		return rows
	}

	wanted := make(map[string]struct{}, len(items))
	for _, it := range items {
		wanted[it] = struct{}{}
	}

	out := make([]model.SeriesRow, 0, len(rows))
	for _, r := range rows {
		if _, ok := wanted[r.ItemCode]; ok {
			out = append(out, r)
		}
	}
	return out
}
