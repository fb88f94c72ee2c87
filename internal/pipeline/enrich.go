package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/sync/semaphore"

	"github.com/ppiankov/finbrief/internal/extract"
	"github.com/ppiankov/finbrief/internal/logging"
	"github.com/ppiankov/finbrief/internal/model"
)

// PageFetcher returns the raw markup of a page
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (string, error)
}

// Enricher fetches article bodies for a bounded window of ranked records
type Enricher struct {
	fetcher     PageFetcher
	extractor   extract.BodyExtractor
	matcher     *DomainMatcher
	concurrency int
	timeout     time.Duration
	logger      arbor.ILogger
}

// NewEnricher creates an enricher. Non-positive concurrency defaults to 5 and
// non-positive timeout to 10s.
func NewEnricher(fetcher PageFetcher, extractor extract.BodyExtractor, matcher *DomainMatcher, concurrency int, timeout time.Duration, logger arbor.ILogger) *Enricher {
	if concurrency <= 0 {
		concurrency = 5
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if extractor == nil {
		extractor = extract.NoopExtractor{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Enricher{
		fetcher:     fetcher,
		extractor:   extractor,
		matcher:     matcher,
		concurrency: concurrency,
		timeout:     timeout,
		logger:      logger,
	}
}

// Enrich returns one body per record. Only the first window records are
// considered; everything else, ineligible records and failed fetches are absent.
// Each index is written by at most one goroutine.
func (e *Enricher) Enrich(ctx context.Context, records []model.Candidate, window int) []model.Body {
	bodies := make([]model.Body, len(records))
	if window > len(records) {
		window = len(records)
	}

	sem := semaphore.NewWeighted(int64(e.concurrency))
	var wg sync.WaitGroup

	for i := 0; i < window; i++ {
		target, ok := e.Target(records[i])
		if !ok {
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := sem.Acquire(ctx, 1); err != nil {
				return
			}
			defer sem.Release(1)

			bodies[i] = e.fetchBody(ctx, target)
		}()
	}

	wg.Wait()
	return bodies
}

// Target returns the URL to fetch for a record: its link when eligible,
// else its original link when eligible
func (e *Enricher) Target(c model.Candidate) (string, bool) {
	if e.matcher == nil {
		return "", false
	}
	if e.matcher.Eligible(c.Link) {
		return c.Link, true
	}
	if e.matcher.Eligible(c.OriginalLink) {
		return c.OriginalLink, true
	}
	return "", false
}

func (e *Enricher) fetchBody(ctx context.Context, target string) model.Body {
	fctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	page, err := e.fetcher.FetchPage(fctx, target)
	if err != nil {
		e.logger.Debug().Err(err).Str("url", target).Msg("Body fetch failed")
		return model.NoBody()
	}

	body := e.extractor.Extract(page)
	if !body.Valid {
		e.logger.Debug().Str("url", target).Msg("No body extracted")
	}
	return body
}
