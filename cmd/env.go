package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/whoisrunning/civic-research/internal/community"
	"github.com/whoisrunning/civic-research/internal/config"
	"github.com/whoisrunning/civic-research/internal/cost"
	"github.com/whoisrunning/civic-research/internal/payment"
	"github.com/whoisrunning/civic-research/internal/research"
	"github.com/whoisrunning/civic-research/internal/resilience"
	"github.com/whoisrunning/civic-research/internal/store"
	"github.com/whoisrunning/civic-research/pkg/census"
	"github.com/whoisrunning/civic-research/pkg/notion"
	pkgresearch "github.com/whoisrunning/civic-research/pkg/research"
)

// serviceEnv holds all initialized clients and services needed by the
// serve and research commands.
type serviceEnv struct {
	Store     store.Store
	Research  *research.Service
	Census    *census.Client
	Payments  *payment.Service
	Community *community.Service
	Tracker   *cost.Tracker
}

// Close releases resources held by the environment.
func (e *serviceEnv) Close() {
	if e.Store != nil {
		_ = e.Store.Close()
	}
}

// initEnv validates config, opens the store, and builds every service.
// Callers should defer env.Close().
func initEnv(ctx context.Context) (*serviceEnv, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	tracker := cost.NewTracker(cost.NewCalculator(costRates(cfg.Pricing)))

	researchSvc := research.NewService(initBackend(), tracker, research.Config{
		MinRecords: cfg.Research.MinRecords,
		CacheTTL:   time.Duration(cfg.Research.CacheTTLHours) * time.Hour,
		Retry: resilience.FromConfig(
			cfg.Retry.MaxAttempts,
			cfg.Retry.InitialBackoffMs,
			cfg.Retry.MaxBackoffMs,
			cfg.Retry.Multiplier,
		),
		Breaker: resilience.CircuitBreakerConfig{
			FailureThreshold: cfg.Breaker.FailureThreshold,
			ResetTimeout:     time.Duration(cfg.Breaker.ResetTimeoutSecs) * time.Second,
		},
	})

	// Notion mirroring of community reports is optional.
	var notionClient community.NotionClient
	if cfg.Notion.Token != "" && cfg.Notion.ReportDB != "" {
		notionClient = notion.NewClient(cfg.Notion.Token)
		zap.L().Info("notion review queue enabled")
	} else {
		zap.L().Debug("CIVIC_NOTION_TOKEN not set, community reports stay local")
	}

	return &serviceEnv{
		Store:     st,
		Research:  researchSvc,
		Census:    census.New(census.WithBaseURL(cfg.Census.BaseURL)),
		Payments:  payment.NewService(cfg.Stripe, st),
		Community: community.NewService(st, notionClient, cfg.Notion.ReportDB),
		Tracker:   tracker,
	}, nil
}

// initStore opens the configured contribution store.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return store.NewSQLite(cfg.Store.DatabaseURL)
	}
}

// initBackend builds the configured research client.
func initBackend() pkgresearch.Client {
	if cfg.Research.Provider == "anthropic" {
		return pkgresearch.NewAnthropic(cfg.Anthropic.Key,
			pkgresearch.WithAnthropicModel(cfg.Anthropic.Model))
	}
	opts := []pkgresearch.PerplexityOption{
		pkgresearch.WithModel(cfg.Perplexity.Model),
		pkgresearch.WithRateLimit(cfg.Perplexity.RatePerSecond),
	}
	if cfg.Perplexity.BaseURL != "" {
		opts = append(opts, pkgresearch.WithBaseURL(cfg.Perplexity.BaseURL))
	}
	return pkgresearch.NewPerplexity(cfg.Perplexity.Key, opts...)
}

// costRates merges configured pricing over the built-in defaults.
func costRates(p config.PricingConfig) cost.Rates {
	rates := cost.DefaultRates()
	for model, mp := range p.Anthropic {
		rates.Anthropic[model] = cost.ModelRate{Input: mp.Input, Output: mp.Output}
	}
	if p.Perplexity.PerQuery > 0 {
		rates.Perplexity.PerQuery = p.Perplexity.PerQuery
	}
	return rates
}
