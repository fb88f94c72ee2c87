package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/finbrief/internal/model"
	"github.com/ppiankov/finbrief/internal/pipeline"
)

var (
	latestLimit      int
	latestPerQuery   int
	latestSort       string
	latestAll        bool
	latestNoContent  bool
	latestAllowEmpty bool
	latestSave       bool
	latestFormat     string
	latestTimeout    time.Duration
)

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the latest finance news across the configured queries",
	Long: `Latest searches every configured query concurrently, removes duplicate
articles, keeps finance-related ones, orders them newest first and fetches
the body text of the top candidates.

Example:
  finbrief latest
  finbrief latest --limit 20 --format json
  finbrief latest --no-content --all
  finbrief latest --save`,
	Args: cobra.NoArgs,
	RunE: runLatest,
}

func init() {
	rootCmd.AddCommand(latestCmd)

	latestCmd.Flags().IntVar(&latestLimit, "limit", 0, "number of articles to return (default from config)")
	latestCmd.Flags().IntVar(&latestPerQuery, "per-query", 0, "results requested per query (default from config)")
	latestCmd.Flags().StringVar(&latestSort, "sort", "", "provider sort order: date or sim")
	latestCmd.Flags().BoolVar(&latestAll, "all", false, "keep articles that do not match any finance term")
	latestCmd.Flags().BoolVar(&latestNoContent, "no-content", false, "skip body enrichment")
	latestCmd.Flags().BoolVar(&latestAllowEmpty, "allow-empty", false, "keep articles whose body could not be extracted")
	latestCmd.Flags().BoolVar(&latestSave, "save", false, "store the returned articles")
	latestCmd.Flags().StringVar(&latestFormat, "format", formatText, "output format: text or json")
	latestCmd.Flags().DurationVar(&latestTimeout, "timeout", 2*time.Minute, "overall timeout")
}

// latestOptions merges config defaults with the command flags
func latestOptions(cfg *model.Config) pipeline.LatestOptions {
	opts := pipeline.LatestOptions{
		Limit:          cfg.Search.Limit,
		PerQuery:       cfg.Search.PerQuery,
		Sort:           cfg.Search.Sort,
		FinanceOnly:    cfg.Search.FinanceOnly && !latestAll,
		IncludeContent: cfg.Enrich.Enabled && !latestNoContent,
		RequireContent: cfg.Enrich.RequireContent && !latestAllowEmpty,
	}
	if latestLimit > 0 {
		opts.Limit = latestLimit
	}
	if latestPerQuery > 0 {
		opts.PerQuery = latestPerQuery
	}
	if latestSort != "" {
		opts.Sort = latestSort
	}
	return opts
}

func runLatest(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	p, err := a.newPipeline()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), latestTimeout)
	defer cancel()

	res, err := p.Latest(ctx, latestOptions(a.cfg))
	if err != nil {
		return fmt.Errorf("latest failed: %w", err)
	}

	if latestSave {
		st, err := a.openStore()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		saved, err := st.SaveArticles(res.Source, res.Items, res.FetchedAt)
		if err != nil {
			return fmt.Errorf("save articles: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Saved %d new articles (%d returned)\n", saved, len(res.Items))
	}

	return writeResult(cmd.OutOrStdout(), res, latestFormat)
}
