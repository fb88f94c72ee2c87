package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/finbrief/internal/model"
)

func sampleResult() *model.Result {
	return &model.Result{
		Items: []model.Candidate{
			{
				Title:       "환율 1,380원 마감",
				Description: "원/달러 환율이 하락했다",
				Body:        model.SomeBody("서울 외환시장에서 원/달러 환율은 전 거래일보다 하락한 1,380원에 마감했다."),
				Link:        "https://n.news.naver.com/mnews/article/001/0001",
				PublishedAt: time.Date(2024, 5, 10, 15, 30, 0, 0, time.UTC),
			},
			{
				Title:       "코스피 상승",
				Description: "외국인 순매수",
				Link:        "https://example.com/a",
			},
		},
		Source:    "NaverNewsAPI",
		FetchedAt: time.Date(2024, 5, 10, 16, 0, 0, 0, time.UTC),
	}
}

func TestWriteResult_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := writeResult(&buf, sampleResult(), formatText); err != nil {
		t.Fatalf("writeResult failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{" 1. 환율 1,380원 마감", "2024-05-10 15:30", "서울 외환시장에서", " 2. 코스피 상승", "외국인 순매수", "2 articles from NaverNewsAPI"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteResult_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeResult(&buf, sampleResult(), formatJSON); err != nil {
		t.Fatalf("writeResult failed: %v", err)
	}

	var decoded struct {
		Items []struct {
			Title   string  `json:"title"`
			Content *string `json:"content"`
		} `json:"items"`
		Source string `json:"source"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(decoded.Items) != 2 || decoded.Source != "NaverNewsAPI" {
		t.Fatalf("unexpected result: %+v", decoded)
	}
	if decoded.Items[0].Content == nil {
		t.Error("expected content for the enriched article")
	}
	if decoded.Items[1].Content != nil {
		t.Error("expected null content for the plain article")
	}
}

func TestWriteResult_EmptyAndUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := writeResult(&buf, &model.Result{}, formatText); err != nil {
		t.Fatalf("writeResult failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No articles found.") {
		t.Errorf("unexpected output: %q", buf.String())
	}

	if err := writeResult(&buf, &model.Result{}, "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestPreview(t *testing.T) {
	if got := preview("짧은 글", 10); got != "짧은 글" {
		t.Errorf("preview changed short text: %q", got)
	}
	if got := preview("가나다라마", 3); got != "가나다…" {
		t.Errorf("preview = %q, want 가나다…", got)
	}
}

func TestLatestOptions(t *testing.T) {
	defer func() {
		latestLimit, latestAll, latestNoContent, latestAllowEmpty, latestSort = 0, false, false, false, ""
	}()

	cfg := model.DefaultConfig()
	opts := latestOptions(cfg)
	if opts.Limit != 10 || opts.PerQuery != 20 || opts.Sort != "date" {
		t.Errorf("unexpected defaults: %+v", opts)
	}
	if !opts.FinanceOnly || !opts.IncludeContent || !opts.RequireContent {
		t.Errorf("expected finance filter and content on by default: %+v", opts)
	}

	latestLimit = 25
	latestAll = true
	latestNoContent = true
	latestSort = "sim"
	opts = latestOptions(cfg)
	if opts.Limit != 25 || opts.Sort != "sim" {
		t.Errorf("flags not applied: %+v", opts)
	}
	if opts.FinanceOnly || opts.IncludeContent {
		t.Errorf("expected finance filter and content off: %+v", opts)
	}

	cfg.Enrich.Enabled = false
	latestNoContent = false
	if latestOptions(cfg).IncludeContent {
		t.Error("disabled enrichment must not include content")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct{ in, want string }{
		{"환율", "환율"},
		{"기준금리 동결", "기준금리-동결"},
		{"a/b:c?", "a_b_c_"},
		{"   ", "query"},
		{"\"quoted\" <x>", "_quoted_-_x_"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	long := strings.Repeat("가", 80)
	if got := []rune(sanitizeFilename(long)); len(got) != 60 {
		t.Errorf("expected 60 runes, got %d", len(got))
	}
}

func TestReadPosts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "posts.yaml")
	content := `- title: 환율 1400원 돌파?
  content: 오늘 달러 강세가 심상치 않네요
  author: user1
  created_at: 2024-05-10T09:30:00+09:00
- title: 금리 인하 기대
  content: 연내 인하 가능성
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	posts, err := readPosts(path)
	if err != nil {
		t.Fatalf("readPosts failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(posts))
	}
	if posts[0].Author != "user1" || posts[0].CreatedAt.IsZero() {
		t.Errorf("unexpected first post: %+v", posts[0])
	}
	if !posts[1].CreatedAt.IsZero() {
		t.Errorf("expected zero created_at, got %v", posts[1].CreatedAt)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("- content: no title\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := readPosts(bad); err == nil {
		t.Error("expected error for post without title")
	}
}

func TestWriteJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "001-환율.json")
	if err := writeJSONFile(path, sampleResult()); err != nil {
		t.Fatalf("writeJSONFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "환율 1,380원 마감") {
		t.Errorf("file missing title: %s", data)
	}
}
