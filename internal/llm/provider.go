package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ppiankov/finbrief/internal/logging"
	"github.com/ppiankov/finbrief/internal/model"
)

// Provider defines the interface for briefing summarizers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize turns the rendered briefing dataset into prose
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for a briefing summary
type SummarizeRequest struct {
	// Lines is the rendered dataset, one entry per item
	Lines []string

	// Date is printed in the briefing heading; zero means today
	Date time.Time

	// Prompt overrides the built-in prompt when set
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	MaxTokens int
}

// SummarizeResponse contains the generated briefing
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	Model   string
	APIKey  string
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string

	// Logger receives availability failures; nil discards them
	Logger arbor.ILogger
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   60,
		MaxTokens: 2000,
	}
}

// ConfigFromModel builds the provider config from the application config
func ConfigFromModel(cfg *model.Config, logger arbor.ILogger) Config {
	return Config{
		Provider:   cfg.LLM.Provider,
		Model:      cfg.LLM.Model,
		APIKey:     cfg.LLM.APIKey,
		BaseURL:    cfg.LLM.BaseURL,
		Timeout:    cfg.LLM.Timeout,
		MaxTokens:  cfg.LLM.MaxTokens,
		HTTPProxy:  cfg.HTTP.HTTPProxy,
		HTTPSProxy: cfg.HTTP.HTTPSProxy,
		Logger:     logger,
	}
}

func (c Config) logger() arbor.ILogger {
	if c.Logger == nil {
		return logging.NewNop()
	}
	return c.Logger
}

const systemMessage = "당신은 전문 금융 기자입니다. 주어진 데이터만 근거로 사실에 기반한 브리핑을 작성합니다."

// BuildPrompt constructs the briefing prompt around the rendered dataset
func BuildPrompt(lines []string, date time.Time) string {
	if date.IsZero() {
		date = time.Now()
	}

	var b strings.Builder
	b.WriteString("당신은 전문 기자입니다. 주어진 금리, 환율, 금융기사, 커뮤니티 게시글을 분석하고, ")
	b.WriteString("주어진 데이터를 통해 당일의 주요 금융 소식에 대한 브리핑 정보를 만들어주세요.\n\n")

	b.WriteString("## 주어진 데이터\n")
	if len(lines) == 0 {
		b.WriteString("(데이터 없음)\n")
	}
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString(`
각 줄은 "번호. 분류 | key: 키 | value: 값 |" 형식입니다.
INTEREST: 금리 종류와 금리 값
EXCHANGE: 통화와 원화 대비 환율
COMMUNITY: 게시글 제목과 본문
NEWS: 뉴스 제목과 본문

---

## 작성 형식
`)
	fmt.Fprintf(&b, "### %s 주요 금융 정보 브리핑\n", date.Format("2006-01-02"))
	b.WriteString(`- 금리 동향
- 환율 동향
- 금융기사 주요 소식
- 커뮤니티 주요 소식

---
중요 규칙:
1. 브리핑 정보는 반드시 제공된 목록에서만 선택
2. 구체적인 수치와 근거 제시
3. 전문적이지만 이해하기 쉬운 설명
4. 과장되지 않은 현실적인 조언
5. 마크다운 형식 사용 금지 (일반 텍스트로만 작성)
`)
	return b.String()
}

// requestSettings resolves prompt, model, token and timeout defaults
func requestSettings(cfg Config, req SummarizeRequest, defaultModel string) (prompt, model string, maxTokens int, timeout time.Duration) {
	prompt = req.Prompt
	if prompt == "" {
		prompt = BuildPrompt(req.Lines, req.Date)
	}

	model = req.Model
	if model == "" {
		model = cfg.Model
	}
	if model == "" {
		model = defaultModel
	}

	maxTokens = req.MaxTokens
	if maxTokens == 0 {
		maxTokens = cfg.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 2000
	}

	timeout = time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return prompt, model, maxTokens, timeout
}
