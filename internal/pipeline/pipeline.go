package pipeline

import (
	"context"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ppiankov/finbrief/internal/classify"
	"github.com/ppiankov/finbrief/internal/logging"
	"github.com/ppiankov/finbrief/internal/model"
	"github.com/ppiankov/finbrief/internal/pubdate"
	"github.com/ppiankov/finbrief/internal/search"
	"github.com/ppiankov/finbrief/internal/textnorm"
)

// SourceName identifies results produced by the news search provider
const SourceName = "NaverNewsAPI"

// searchContentCap bounds single-query output when bodies are requested
const searchContentCap = 10

// Pipeline runs search, dedupe, classification, ranking and enrichment
type Pipeline struct {
	searcher   Searcher
	enricher   *Enricher
	classifier *classify.Classifier
	parser     *pubdate.Parser
	queries    []string
	logger     arbor.ILogger
}

// NewPipeline creates a pipeline. A nil enricher disables body enrichment
// and a nil classifier uses the default finance terms.
func NewPipeline(searcher Searcher, enricher *Enricher, classifier *classify.Classifier, queries []string, logger arbor.ILogger) *Pipeline {
	if classifier == nil {
		classifier = classify.NewClassifier(nil)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &Pipeline{
		searcher:   searcher,
		enricher:   enricher,
		classifier: classifier,
		parser:     pubdate.NewParser(),
		queries:    queries,
		logger:     logger,
	}
}

// WithParser replaces the date parser, mainly to pin the clock in tests
func (p *Pipeline) WithParser(parser *pubdate.Parser) *Pipeline {
	p.parser = parser
	return p
}

// LatestOptions controls a multi-query run
type LatestOptions struct {
	Limit          int
	PerQuery       int
	Sort           string
	FinanceOnly    bool
	IncludeContent bool
	RequireContent bool
}

// DefaultLatestOptions returns the briefing defaults
func DefaultLatestOptions() LatestOptions {
	return LatestOptions{
		Limit:          10,
		PerQuery:       20,
		Sort:           "date",
		FinanceOnly:    true,
		IncludeContent: true,
		RequireContent: true,
	}
}

// SearchOptions controls a single-query run
type SearchOptions struct {
	Query          string
	Display        int
	Start          int
	Sort           string
	FinanceOnly    bool
	IncludeContent bool
	RequireContent bool
}

// Latest fans out over the configured queries and returns the newest
// finance articles
func (p *Pipeline) Latest(ctx context.Context, opts LatestOptions) (*model.Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 10
	}
	if opts.PerQuery <= 0 {
		opts.PerQuery = 20
	}
	if opts.Sort == "" {
		opts.Sort = "date"
	}

	started := time.Now()

	raw, err := Fanout(ctx, p.searcher, p.queries, opts.PerQuery, opts.Sort)
	if err != nil {
		return nil, err
	}

	candidates := Dedupe(p.convert(raw))
	deduped := len(candidates)
	if opts.FinanceOnly {
		candidates = p.filterFinance(candidates)
	}
	ranked := RankByTime(candidates)

	window := max(opts.Limit*4, opts.Limit)
	items := p.finish(ctx, ranked, window, opts.IncludeContent, opts.RequireContent, opts.Limit)

	p.logger.Info().
		Int("queries", len(p.queries)).
		Int("fetched", len(raw)).
		Int("unique", deduped).
		Int("relevant", len(ranked)).
		Int("returned", len(items)).
		Dur("elapsed", time.Since(started)).
		Msg("Latest news assembled")

	return &model.Result{Items: items, Source: SourceName, FetchedAt: time.Now()}, nil
}

// Search runs one query and keeps the provider's order
func (p *Pipeline) Search(ctx context.Context, opts SearchOptions) (*model.Result, error) {
	if opts.Display <= 0 {
		opts.Display = 10
	}
	if opts.Start <= 0 {
		opts.Start = 1
	}
	if opts.Sort == "" {
		opts.Sort = "date"
	}

	raw, err := p.searcher.Search(ctx, search.Query{
		Text:    opts.Query,
		Display: opts.Display,
		Start:   opts.Start,
		Sort:    opts.Sort,
	})
	if err != nil {
		return nil, &FanoutError{Query: opts.Query, Err: err}
	}

	candidates := p.convert(raw)
	if opts.FinanceOnly {
		candidates = p.filterFinance(candidates)
	}

	limit := 0
	if opts.IncludeContent {
		limit = searchContentCap
	}
	items := p.finish(ctx, candidates, len(candidates), opts.IncludeContent, opts.RequireContent, limit)

	p.logger.Debug().
		Str("query", opts.Query).
		Int("fetched", len(raw)).
		Int("returned", len(items)).
		Msg("Search assembled")

	return &model.Result{Items: items, Source: SourceName, FetchedAt: time.Now()}, nil
}

// finish enriches the window when asked and assembles the output
func (p *Pipeline) finish(ctx context.Context, records []model.Candidate, window int, includeContent, requireContent bool, limit int) []model.Candidate {
	var bodies []model.Body
	if includeContent && p.enricher != nil {
		bodies = p.enricher.Enrich(ctx, records, window)
	}
	return Assemble(records, bodies, includeContent && requireContent, limit)
}

// convert normalizes text and parses the publish date once per record
func (p *Pipeline) convert(raw []model.RawRecord) []model.Candidate {
	out := make([]model.Candidate, 0, len(raw))
	for _, r := range raw {
		out = append(out, model.Candidate{
			Title:        textnorm.Normalize(r.Title),
			Description:  textnorm.Normalize(r.Description),
			Link:         r.Link,
			OriginalLink: r.OriginalLink,
			PublishedAt:  p.parser.Parse(r.PubDate),
		})
	}
	return out
}

func (p *Pipeline) filterFinance(in []model.Candidate) []model.Candidate {
	out := make([]model.Candidate, 0, len(in))
	for _, c := range in {
		if p.classifier.Match(c.Title, c.Description) {
			out = append(out, c)
		}
	}
	return out
}
