package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/finbrief/internal/pipeline"
	"github.com/ppiankov/finbrief/internal/scheduler"
	"github.com/ppiankov/finbrief/internal/store"
)

const (
	jobLatest       = "latest-ingest"
	jobPruneCache   = "cache-prune"
	jobPruneArticle = "article-prune"
)

var (
	scheduleRunNow  bool
	scheduleTimeout time.Duration
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the periodic ingest jobs until interrupted",
	Long: `Schedule runs the latest-news ingest on the configured cron spec
(default 03:00 Asia/Seoul) and stores the returned articles. Expired cache
pages are pruned hourly and articles older than the retention window daily.

Example:
  finbrief schedule
  finbrief schedule --run-now`,
	Args: cobra.NoArgs,
	RunE: runSchedule,
}

func init() {
	rootCmd.AddCommand(scheduleCmd)

	scheduleCmd.Flags().BoolVar(&scheduleRunNow, "run-now", false, "run the ingest job once at startup")
	scheduleCmd.Flags().DurationVar(&scheduleTimeout, "job-timeout", 10*time.Minute, "timeout for a single job run")
}

// ingestJob runs the latest pipeline and stores what it returns
func ingestJob(p *pipeline.Pipeline, st *store.Store, opts pipeline.LatestOptions) scheduler.JobFunc {
	return func(ctx context.Context) error {
		res, err := p.Latest(ctx, opts)
		if err != nil {
			return err
		}
		_, err = st.SaveArticles(res.Source, res.Items, res.FetchedAt)
		return err
	}
}

type pruner interface {
	Prune() (int, error)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	p, err := a.newPipeline()
	if err != nil {
		return err
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	svc, err := scheduler.NewService(a.cfg.Schedule.Timezone, scheduleTimeout, a.logger)
	if err != nil {
		return err
	}

	if err := svc.Register(jobLatest, a.cfg.Schedule.Latest, ingestJob(p, st, latestOptions(a.cfg))); err != nil {
		return err
	}

	if pc, ok := a.pages.(pruner); ok {
		err := svc.Register(jobPruneCache, "@hourly", func(ctx context.Context) error {
			_, err := pc.Prune()
			return err
		})
		if err != nil {
			return err
		}
	}

	retention := time.Duration(a.cfg.Store.RetentionDays) * 24 * time.Hour
	if retention > 0 {
		err := svc.Register(jobPruneArticle, "30 4 * * *", func(ctx context.Context) error {
			return st.PruneArticles(time.Now().Add(-retention))
		})
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc.Start()
	defer svc.Stop()

	for _, job := range svc.Status() {
		fmt.Fprintf(os.Stderr, "  %-14s %-12s next %s\n", job.Name, job.Schedule, job.NextRun.Format("2006-01-02 15:04 MST"))
	}

	if scheduleRunNow {
		go func() {
			if err := svc.RunNow(jobLatest); err != nil {
				a.logger.Error().Err(err).Str("job", jobLatest).Msg("Initial run failed")
			}
		}()
	}

	<-ctx.Done()
	fmt.Fprintf(os.Stderr, "\nStopping scheduler...\n")
	return nil
}
