package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/finbrief/internal/cache"
	"github.com/ppiankov/finbrief/internal/model"
	"github.com/ppiankov/finbrief/internal/util"
	"github.com/ppiankov/finbrief/internal/worker"
)

func testConfig() model.HTTPConfig {
	return model.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "test-agent", MaxBodyBytes: 1 << 20}
}

func TestFetch_SetsHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "test-agent" {
			t.Errorf("User-Agent = %q", got)
		}
		if !strings.HasPrefix(r.Header.Get("Accept"), "text/html") {
			t.Errorf("Accept = %q", r.Header.Get("Accept"))
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = fmt.Fprint(w, `<div id="dic_area">본문</div>`)
	}))
	defer server.Close()

	page, err := NewFetcher(testConfig()).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if page.HTML != `<div id="dic_area">본문</div>` {
		t.Errorf("Unexpected HTML: %s", page.HTML)
	}
	if page.StatusCode != http.StatusOK || page.ContentType != "text/html; charset=utf-8" {
		t.Errorf("Unexpected meta: %d %q", page.StatusCode, page.ContentType)
	}
}

func TestFetch_BodyCap(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, strings.Repeat("x", 100))
	}))
	defer server.Close()

	cfg := testConfig()
	cfg.MaxBodyBytes = 10
	page, err := NewFetcher(cfg).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(page.HTML) != 10 {
		t.Errorf("Expected body capped at 10 bytes, got %d", len(page.HTML))
	}
}

func TestFetch_RedirectCap(t *testing.T) {
	var hits atomic.Int32
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		http.Redirect(w, r, fmt.Sprintf("%s/r%d", server.URL, n), http.StatusFound)
	}))
	defer server.Close()

	_, err := NewFetcher(testConfig()).Fetch(context.Background(), server.URL)
	if err == nil || !strings.Contains(err.Error(), "stopped after 3 redirects") {
		t.Errorf("Expected redirect cap error, got %v", err)
	}
}

func TestFetchPage_SingleAttemptOnServerError(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = fmt.Fprint(w, "<html>OK</html>")
	}))
	defer server.Close()

	_, err := NewFetcher(testConfig()).FetchPage(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Expected error for 503, got nil")
	}
	if attempts.Load() != 1 {
		t.Errorf("Expected 1 attempt, got %d", attempts.Load())
	}
}

func TestFetch_StatusError(t *testing.T) {
	tests := []struct {
		name string
		code int
	}{
		{"not found", http.StatusNotFound},
		{"too many requests", http.StatusTooManyRequests},
		{"unavailable", http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.code)
			}))
			defer server.Close()

			_, err := NewFetcher(testConfig()).Fetch(context.Background(), server.URL)
			var statusErr *StatusError
			if !errors.As(fmt.Errorf("wrapped: %w", err), &statusErr) {
				t.Fatalf("Expected *StatusError, got %v", err)
			}
			if statusErr.StatusCode != tt.code {
				t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, tt.code)
			}
			want := fmt.Sprintf("unexpected status: %d %s", tt.code, http.StatusText(tt.code))
			if err.Error() != want {
				t.Errorf("Error() = %q, want %q", err.Error(), want)
			}
		})
	}
}

func TestFetch_TransportErrorIsNotStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewFetcher(testConfig()).Fetch(context.Background(), url)
	if err == nil {
		t.Fatal("Expected transport error, got nil")
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		t.Errorf("Expected transport error, got status %d", statusErr.StatusCode)
	}
}

func TestFetchPage_ServesFromCache(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		_, _ = fmt.Fprint(w, "<html>cached</html>")
	}))
	defer server.Close()

	f := NewFetcher(testConfig(),
		WithCache(cache.NewMemoryCache(time.Minute, time.Minute), time.Minute),
		WithLimiter(worker.NewLimiter(100, 10)),
	)

	for i := 0; i < 3; i++ {
		html, err := f.FetchPage(context.Background(), server.URL+"/article")
		if err != nil {
			t.Fatalf("FetchPage() error = %v", err)
		}
		if html != "<html>cached</html>" {
			t.Errorf("Unexpected HTML: %s", html)
		}
	}
	if attempts.Load() != 1 {
		t.Errorf("Expected 1 upstream request, got %d", attempts.Load())
	}
}

func TestFetchPage_RobotsDisallowed(t *testing.T) {
	var articleHits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /private/\n")
			return
		}
		articleHits.Add(1)
		_, _ = fmt.Fprint(w, "<html>ok</html>")
	}))
	defer server.Close()

	f := NewFetcher(testConfig(), WithRobots(util.NewRobotsChecker("test-agent", time.Second)))

	_, err := f.FetchPage(context.Background(), server.URL+"/private/1")
	if !errors.Is(err, ErrDisallowed) {
		t.Errorf("Expected ErrDisallowed, got %v", err)
	}
	if articleHits.Load() != 0 {
		t.Errorf("Expected no article request, got %d", articleHits.Load())
	}

	if _, err := f.FetchPage(context.Background(), server.URL+"/public/1"); err != nil {
		t.Errorf("Expected allowed page, got %v", err)
	}
}
