package pipeline

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ppiankov/finbrief/internal/model"
	"github.com/ppiankov/finbrief/internal/search"
)

type fakeSearcher struct {
	mu      sync.Mutex
	results map[string][]model.RawRecord
	errs    map[string]error
	calls   []search.Query
}

func (f *fakeSearcher) Search(_ context.Context, q search.Query) ([]model.RawRecord, error) {
	f.mu.Lock()
	f.calls = append(f.calls, q)
	f.mu.Unlock()

	if err := f.errs[q.Text]; err != nil {
		return nil, err
	}
	return f.results[q.Text], nil
}

// countingFetcher records calls and the peak number of concurrent fetches
type countingFetcher struct {
	mu       sync.Mutex
	calls    []string
	inFlight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
	fail     map[string]bool
}

func (f *countingFetcher) FetchPage(ctx context.Context, url string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()

	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if f.fail[url] {
		return "", fmt.Errorf("unexpected status: 500")
	}
	return fmt.Sprintf(`<div id="dic_area">body of %s</div>`, url), nil
}

func (f *countingFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func candidate(link, original string, at time.Time) model.Candidate {
	return model.Candidate{Title: "title " + link, Link: link, OriginalLink: original, PublishedAt: at}
}

func naverLink(i int) string {
	return fmt.Sprintf("https://n.news.naver.com/mnews/article/001/%04d", i)
}
