package model

import "time"

// Config holds the complete finbrief configuration
type Config struct {
	Search       SearchConfig    `yaml:"search" mapstructure:"search"`
	Enrich       EnrichConfig    `yaml:"enrich" mapstructure:"enrich"`
	HTTP         HTTPConfig      `yaml:"http" mapstructure:"http"`
	Cache        CacheConfig     `yaml:"cache" mapstructure:"cache"`
	RateLimiting RateLimitConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Series       SeriesConfig    `yaml:"series" mapstructure:"series"`
	Store        StoreConfig     `yaml:"store" mapstructure:"store"`
	Schedule     ScheduleConfig  `yaml:"schedule" mapstructure:"schedule"`
	LLM          LLMConfig       `yaml:"llm" mapstructure:"llm"`
	Logging      LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// SearchConfig configures the news search provider
type SearchConfig struct {
	BaseURL      string   `yaml:"base_url" mapstructure:"base_url"`
	ClientID     string   `yaml:"-" mapstructure:"client_id"`
	ClientSecret string   `yaml:"-" mapstructure:"client_secret"`
	Queries      []string `yaml:"queries" mapstructure:"queries"` // Briefing fanout queries
	PerQuery     int      `yaml:"per_query" mapstructure:"per_query"`
	Sort         string   `yaml:"sort" mapstructure:"sort"` // "date" or "sim"
	Limit        int      `yaml:"limit" mapstructure:"limit"`
	FinanceOnly  bool     `yaml:"finance_only" mapstructure:"finance_only"`
}

// EnrichConfig configures body-text enrichment
type EnrichConfig struct {
	Enabled        bool          `yaml:"enabled" mapstructure:"enabled"`
	RequireContent bool          `yaml:"require_content" mapstructure:"require_content"`
	Concurrency    int           `yaml:"concurrency" mapstructure:"concurrency"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout" mapstructure:"fetch_timeout"`
	Domains        []string      `yaml:"domains" mapstructure:"domains"`     // Publisher domains worth fetching
	Extractor      string        `yaml:"extractor" mapstructure:"extractor"` // "selector" or "none"
	Selectors      []string      `yaml:"selectors" mapstructure:"selectors"` // Body containers, priority order
	RespectRobots  bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// HTTPConfig configures outbound HTTP
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
}

// CacheConfig configures the page cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// RateLimitConfig configures per-domain request pacing
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// SeriesConfig configures the statistics (time-series) provider
type SeriesConfig struct {
	BaseURL       string   `yaml:"base_url" mapstructure:"base_url"`
	APIKey        string   `yaml:"-" mapstructure:"api_key"`
	ExchangeStat  string   `yaml:"exchange_stat" mapstructure:"exchange_stat"`
	ExchangeItems []string `yaml:"exchange_items" mapstructure:"exchange_items"`
	InterestStat  string   `yaml:"interest_stat" mapstructure:"interest_stat"`
	InterestItems []string `yaml:"interest_items" mapstructure:"interest_items"`
	LookbackDays  int      `yaml:"lookback_days" mapstructure:"lookback_days"`
}

// StoreConfig configures the local article store
type StoreConfig struct {
	Path          string `yaml:"path" mapstructure:"path"`
	RetentionDays int    `yaml:"retention_days" mapstructure:"retention_days"` // Briefing look-back window
}

// ScheduleConfig configures the periodic ingest job
type ScheduleConfig struct {
	Latest   string `yaml:"latest" mapstructure:"latest"` // cron spec
	Timezone string `yaml:"timezone" mapstructure:"timezone"`
}

// LLMConfig configures the optional briefing summarizer
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // "openai" or "" (disabled)
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// LoggingConfig configures the structured logger
type LoggingConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			BaseURL:     "https://openapi.naver.com/v1/search/news.json",
			Queries:     []string{"환율", "금리", "코스피", "주식", "ETF"},
			PerQuery:    20,
			Sort:        "date",
			Limit:       10,
			FinanceOnly: true,
		},
		Enrich: EnrichConfig{
			Enabled:        true,
			RequireContent: true,
			Concurrency:    5,
			FetchTimeout:   10 * time.Second,
			Domains:        []string{"news.naver.com"},
			Extractor:      "selector",
			Selectors:      []string{"#dic_area", "#newsct_article", "#articleBodyContents"},
		},
		HTTP: HTTPConfig{
			Timeout:      10 * time.Second,
			UserAgent:    "Mozilla/5.0",
			MaxBodyBytes: 4_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".finbrief/cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 5,
			BurstSize:         5,
		},
		Series: SeriesConfig{
			BaseURL:       "https://ecos.bok.or.kr/api",
			ExchangeStat:  "731Y001",
			ExchangeItems: []string{"0000001", "0000002", "0000003"},
			InterestStat:  "817Y002",
			LookbackDays:  7,
		},
		Store: StoreConfig{
			Path:          ".finbrief/data",
			RetentionDays: 90,
		},
		Schedule: ScheduleConfig{
			Latest:   "0 3 * * *",
			Timezone: "Asia/Seoul",
		},
		LLM: LLMConfig{
			Timeout:   60,
			MaxTokens: 2000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
