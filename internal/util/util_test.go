package util

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"
)

func TestNormalizeUserAgent(t *testing.T) {
	tests := map[string]string{
		"Mozilla/5.0 (X11; Linux)": "Mozilla",
		"finbrief/1.0":             "finbrief",
		"":                         "",
	}
	for in, want := range tests {
		if got := NormalizeUserAgent(in); got != want {
			t.Errorf("NormalizeUserAgent(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRobotsChecker_CachesPerHost(t *testing.T) {
	var robotsHits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		robotsHits.Add(1)
		_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /admin\nCrawl-delay: 2\n")
	}))
	defer server.Close()

	rc := NewRobotsChecker("Mozilla/5.0", time.Second)

	allowed, delay, err := rc.CanFetch(context.Background(), server.URL+"/article/1")
	if err != nil || !allowed {
		t.Fatalf("CanFetch(article) = %v, %v", allowed, err)
	}
	if delay != 2*time.Second {
		t.Errorf("Expected crawl delay 2s, got %v", delay)
	}
	if rc.IsAllowed(context.Background(), server.URL+"/admin") {
		t.Error("Expected /admin to be disallowed")
	}
	if robotsHits.Load() != 1 {
		t.Errorf("Expected robots.txt fetched once, got %d", robotsHits.Load())
	}
}

func TestRobotsChecker_UnreachableAllows(t *testing.T) {
	rc := NewRobotsChecker("Mozilla/5.0", 100*time.Millisecond)
	if !rc.IsAllowed(context.Background(), "http://127.0.0.1:1/article") {
		t.Error("Expected unreachable robots.txt to allow the fetch")
	}
}

func TestNewProxyFunc(t *testing.T) {
	fn := NewProxyFunc("http://proxy.local:3128", "", "internal.example")

	req := &http.Request{URL: &url.URL{Scheme: "https", Host: "n.news.naver.com"}}
	got, err := fn(req)
	if err != nil {
		t.Fatalf("proxy func error = %v", err)
	}
	if got == nil || got.Host != "proxy.local:3128" {
		t.Errorf("Expected proxy.local:3128, got %v", got)
	}

	req = &http.Request{URL: &url.URL{Scheme: "http", Host: "internal.example"}}
	if got, _ := fn(req); got != nil {
		t.Errorf("Expected no proxy for excluded host, got %v", got)
	}
}
