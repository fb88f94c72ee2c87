package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/finbrief/internal/pipeline"
)

var (
	searchDisplay  int
	searchStart    int
	searchSort     string
	searchFinance  bool
	searchContent  bool
	searchRequire  bool
	searchFormat   string
	searchDeadline time.Duration
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search news for a single query",
	Long: `Search runs one query against the news provider and keeps the provider's
order. With --content the body text of up to 10 articles is fetched.

Example:
  finbrief search 환율
  finbrief search "기준금리 동결" --display 30 --sort sim
  finbrief search 코스피 --content --require-content --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVar(&searchDisplay, "display", 10, "results per page (1-100)")
	searchCmd.Flags().IntVar(&searchStart, "start", 1, "first result position (1-1000)")
	searchCmd.Flags().StringVar(&searchSort, "sort", "date", "provider sort order: date or sim")
	searchCmd.Flags().BoolVar(&searchFinance, "finance", false, "keep only finance-related articles")
	searchCmd.Flags().BoolVar(&searchContent, "content", false, "fetch article body text")
	searchCmd.Flags().BoolVar(&searchRequire, "require-content", false, "drop articles without body text (needs --content)")
	searchCmd.Flags().StringVar(&searchFormat, "format", formatText, "output format: text or json")
	searchCmd.Flags().DurationVar(&searchDeadline, "timeout", time.Minute, "overall timeout")
}

func searchOptions(query string) pipeline.SearchOptions {
	return pipeline.SearchOptions{
		Query:          query,
		Display:        searchDisplay,
		Start:          searchStart,
		Sort:           searchSort,
		FinanceOnly:    searchFinance,
		IncludeContent: searchContent,
		RequireContent: searchRequire,
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("query must not be empty")
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	p, err := a.newPipeline()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), searchDeadline)
	defer cancel()

	res, err := p.Search(ctx, searchOptions(query))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	return writeResult(cmd.OutOrStdout(), res, searchFormat)
}
