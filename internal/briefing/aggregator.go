package briefing

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ppiankov/finbrief/internal/model"
	"github.com/ppiankov/finbrief/internal/store"
)

// excerptRunes is the length of a community post excerpt
const excerptRunes = 50

// ArticleSource lists stored articles
type ArticleSource interface {
	RecentArticles(since time.Time, limit int) ([]store.Article, error)
}

// PostSource lists stored community posts
type PostSource interface {
	RecentPosts(since time.Time, limit int) ([]store.Post, error)
}

// SnapshotSource returns the latest snapshot of a time series
type SnapshotSource interface {
	Latest(ctx context.Context) ([]model.Point, error)
}

// Aggregator builds the briefing dataset from its sources
type Aggregator struct {
	articles ArticleSource
	posts    PostSource
	exchange SnapshotSource
	interest SnapshotSource
	window   time.Duration
	now      func() time.Time
	logger   arbor.ILogger
}

// NewAggregator creates an aggregator looking back retentionDays for news and
// posts. Nil sources contribute nothing.
func NewAggregator(articles ArticleSource, posts PostSource, exchange, interest SnapshotSource, retentionDays int, logger arbor.ILogger) *Aggregator {
	if retentionDays <= 0 {
		retentionDays = 90
	}
	return &Aggregator{
		articles: articles,
		posts:    posts,
		exchange: exchange,
		interest: interest,
		window:   time.Duration(retentionDays) * 24 * time.Hour,
		now:      time.Now,
		logger:   logger,
	}
}

// Build collects news, community, exchange and interest items in that order.
// Any source failure fails the build.
func (a *Aggregator) Build(ctx context.Context) (Dataset, error) {
	since := a.now().Add(-a.window)
	var items []Item

	if a.articles != nil {
		articles, err := a.articles.RecentArticles(since, 0)
		if err != nil {
			return Dataset{}, fmt.Errorf("news: %w", err)
		}
		for _, art := range articles {
			items = append(items, NewsItem{Title: art.Title, Description: art.Description})
		}
	}

	if a.posts != nil {
		posts, err := a.posts.RecentPosts(since, 0)
		if err != nil {
			return Dataset{}, fmt.Errorf("community: %w", err)
		}
		for _, p := range posts {
			items = append(items, CommunityItem{Title: p.Title, Excerpt: truncateRunes(p.Content, excerptRunes)})
		}
	}

	if a.exchange != nil {
		points, err := a.exchange.Latest(ctx)
		if err != nil {
			return Dataset{}, fmt.Errorf("exchange rates: %w", err)
		}
		for _, p := range points {
			items = append(items, ExchangeItem{Currency: p.Label, Rate: p.Value})
		}
	}

	if a.interest != nil {
		points, err := a.interest.Latest(ctx)
		if err != nil {
			return Dataset{}, fmt.Errorf("interest rates: %w", err)
		}
		for _, p := range points {
			items = append(items, InterestItem{Name: p.Label, Rate: p.Value})
		}
	}

	ds := Dataset{Items: items}
	a.logger.Info().
		Int("news", ds.Count(CategoryNews)).
		Int("community", ds.Count(CategoryCommunity)).
		Int("exchange", ds.Count(CategoryExchange)).
		Int("interest", ds.Count(CategoryInterest)).
		Msg("Briefing dataset built")

	return ds, nil
}
