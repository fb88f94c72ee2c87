package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/finbrief/internal/model"
	"github.com/ppiankov/finbrief/internal/search"
)

// Searcher runs one search-provider query
type Searcher interface {
	Search(ctx context.Context, q search.Query) ([]model.RawRecord, error)
}

// Fanout runs one search per query concurrently and waits for all of them.
// Results are concatenated in query order, each keeping the provider's order.
// The first failing query fails the whole call with a *FanoutError.
func Fanout(ctx context.Context, s Searcher, queries []string, perQuery int, sortMode string) ([]model.RawRecord, error) {
	slots := make([][]model.RawRecord, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	for i, q := range queries {
		g.Go(func() error {
			records, err := s.Search(gctx, search.Query{
				Text:    q,
				Display: perQuery,
				Start:   1,
				Sort:    sortMode,
			})
			if err != nil {
				return &FanoutError{Query: q, Err: err}
			}
			slots[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, part := range slots {
		total += len(part)
	}
	flat := make([]model.RawRecord, 0, total)
	for _, part := range slots {
		flat = append(flat, part...)
	}
	return flat, nil
}
