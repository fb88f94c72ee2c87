package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/finbrief/internal/model"
	"github.com/ppiankov/finbrief/internal/pipeline"
)

// Searcher runs a single-query pipeline search
type Searcher interface {
	Search(ctx context.Context, opts pipeline.SearchOptions) (*model.Result, error)
}

// QueryJob searches one query
type QueryJob struct {
	Index    int
	Options  pipeline.SearchOptions
	Searcher Searcher
}

// Execute runs the search
func (j *QueryJob) Execute(ctx context.Context) Result {
	res, err := j.Searcher.Search(ctx, j.Options)
	return &QueryResult{Index: j.Index, Query: j.Options.Query, Result: res, Error: err}
}

// QueryResult is the outcome of one query
type QueryResult struct {
	Index  int
	Query  string
	Result *model.Result
	Error  error
}

// GetError returns the search error
func (r *QueryResult) GetError() error {
	return r.Error
}

// BatchProcessor searches many queries concurrently
type BatchProcessor struct {
	searcher    Searcher
	concurrency int
	template    pipeline.SearchOptions
}

// NewBatchProcessor creates a processor; template supplies every option but the query
func NewBatchProcessor(searcher Searcher, concurrency int, template pipeline.SearchOptions) *BatchProcessor {
	return &BatchProcessor{
		searcher:    searcher,
		concurrency: concurrency,
		template:    template,
	}
}

// ProcessQueries runs each query and returns results in input order.
// A failed query yields a result carrying its error; the others still run.
func (b *BatchProcessor) ProcessQueries(ctx context.Context, queries []string) []*QueryResult {
	if len(queries) == 0 {
		return []*QueryResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	go func() {
		defer pool.Close()
		for i, q := range queries {
			opts := b.template
			opts.Query = q
			if !pool.Submit(&QueryJob{Index: i, Options: opts, Searcher: b.searcher}) {
				return
			}
		}
	}()

	out := make([]*QueryResult, 0, len(queries))
	for r := range pool.Results() {
		out = append(out, r.(*QueryResult))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// ProcessFile reads queries from filePath and processes them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*QueryResult, error) {
	queries, err := ReadQueriesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read queries: %w", err)
	}
	return b.ProcessQueries(ctx, queries), nil
}

// ReadQueriesFromFile reads one query per line, skipping blanks, # comments
// and repeats
func ReadQueriesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var queries []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			queries = append(queries, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return queries, nil
}
