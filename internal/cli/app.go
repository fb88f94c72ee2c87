package cli

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/ternarybob/arbor"

	"github.com/ppiankov/finbrief/internal/briefing"
	"github.com/ppiankov/finbrief/internal/cache"
	"github.com/ppiankov/finbrief/internal/classify"
	"github.com/ppiankov/finbrief/internal/extract"
	"github.com/ppiankov/finbrief/internal/fetch"
	"github.com/ppiankov/finbrief/internal/logging"
	"github.com/ppiankov/finbrief/internal/model"
	"github.com/ppiankov/finbrief/internal/pipeline"
	"github.com/ppiankov/finbrief/internal/search"
	"github.com/ppiankov/finbrief/internal/series"
	"github.com/ppiankov/finbrief/internal/store"
	"github.com/ppiankov/finbrief/internal/util"
	"github.com/ppiankov/finbrief/internal/worker"
)

// app carries the loaded configuration and the components built from it
type app struct {
	cfg    *model.Config
	logger arbor.ILogger
	pages  cache.Cache
}

// loadConfig layers the config file and environment over the defaults
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if verbose && logLevel == "" {
		cfg.Logging.Level = "debug"
	}

	return &app{
		cfg:    cfg,
		logger: logging.New(cfg.Logging),
		pages:  cache.New(cfg.Cache),
	}, nil
}

// newPipeline wires search, enrichment and classification
func (a *app) newPipeline() (*pipeline.Pipeline, error) {
	sc := a.cfg.Search
	if sc.ClientID == "" || sc.ClientSecret == "" {
		return nil, fmt.Errorf("search credentials missing: set NAVER_CLIENT_ID and NAVER_CLIENT_SECRET")
	}

	searcher := search.NewNaverClient(sc.ClientID, sc.ClientSecret,
		search.WithBaseURL(sc.BaseURL),
		search.WithLogger(a.logger),
	)

	var enricher *pipeline.Enricher
	if a.cfg.Enrich.Enabled {
		enricher = a.newEnricher()
	}

	return pipeline.NewPipeline(searcher, enricher, classify.NewClassifier(nil), sc.Queries, a.logger), nil
}

func (a *app) newEnricher() *pipeline.Enricher {
	ec := a.cfg.Enrich

	opts := []fetch.Option{
		fetch.WithLimiter(worker.NewLimiterFromConfig(a.cfg.RateLimiting)),
		fetch.WithLogger(a.logger),
	}
	if a.pages != nil {
		opts = append(opts, fetch.WithCache(a.pages, a.cfg.Cache.DiskTTL))
	}
	if ec.RespectRobots {
		opts = append(opts, fetch.WithRobots(util.NewRobotsChecker(a.cfg.HTTP.UserAgent, a.cfg.HTTP.Timeout)))
	}

	return pipeline.NewEnricher(
		fetch.NewFetcher(a.cfg.HTTP, opts...),
		extract.NewBodyExtractor(ec.Extractor, ec.Selectors, a.logger),
		pipeline.NewDomainMatcher(ec.Domains),
		ec.Concurrency,
		ec.FetchTimeout,
		a.logger,
	)
}

func (a *app) openStore() (*store.Store, error) {
	return store.Open(a.cfg.Store, a.logger)
}

// newAggregator builds the briefing aggregator over st. Without an ECOS key
// the rate sections are left out.
func (a *app) newAggregator(st *store.Store) *briefing.Aggregator {
	var exchange, interest briefing.SnapshotSource
	if a.cfg.Series.APIKey != "" {
		client := series.NewEcosClient(a.cfg.Series.APIKey,
			series.WithBaseURL(a.cfg.Series.BaseURL),
			series.WithLogger(a.logger),
		)
		exchange = series.NewExchangeSource(client, a.cfg.Series)
		interest = series.NewInterestSource(client, a.cfg.Series)
	} else {
		a.logger.Warn().Msg("ECOS_API_KEY not set, briefing will not include exchange or interest rates")
	}

	return briefing.NewAggregator(st, st, exchange, interest, a.cfg.Store.RetentionDays, a.logger)
}
