package series

import (
	"context"
	"time"

	"github.com/ppiankov/finbrief/internal/model"
)

// RowFetcher loads daily rows of one statistic
type RowFetcher interface {
	DailyRows(ctx context.Context, stat string, items []string, start, end time.Time) ([]model.SeriesRow, error)
}

// Source is one statistic reduced to its latest snapshot
type Source struct {
	fetcher  RowFetcher
	stat     string
	items    []string
	lookback time.Duration
	labelFor func(model.SeriesRow) string
	now      func() time.Time
}

// NewExchangeSource reads exchange rates labelled by currency
func NewExchangeSource(f RowFetcher, cfg model.SeriesConfig) *Source {
	return newSource(f, cfg.ExchangeStat, cfg.ExchangeItems, cfg.LookbackDays, CurrencyLabel)
}

// NewInterestSource reads market interest rates labelled by item name
func NewInterestSource(f RowFetcher, cfg model.SeriesConfig) *Source {
	return newSource(f, cfg.InterestStat, cfg.InterestItems, cfg.LookbackDays, nil)
}

func newSource(f RowFetcher, stat string, items []string, lookbackDays int, labelFor func(model.SeriesRow) string) *Source {
	if lookbackDays <= 0 {
		lookbackDays = 7
	}
	return &Source{
		fetcher:  f,
		stat:     stat,
		items:    items,
		lookback: time.Duration(lookbackDays) * 24 * time.Hour,
		labelFor: labelFor,
		now:      time.Now,
	}
}

// Latest fetches the lookback window and returns its latest snapshot
func (s *Source) Latest(ctx context.Context) ([]model.Point, error) {
	end := s.now().UTC()
	rows, err := s.fetcher.DailyRows(ctx, s.stat, s.items, end.Add(-s.lookback), end)
	if err != nil {
		return nil, err
	}
	return LatestSnapshot(rows, s.labelFor), nil
}
