package main

import (
	"context"
	"flag"
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/clearcomply/contract-compliance-backend/internal/api/rest"
	"github.com/clearcomply/contract-compliance-backend/internal/domain/regulation"
	"github.com/clearcomply/contract-compliance-backend/internal/infrastructure/ai"
	"github.com/clearcomply/contract-compliance-backend/internal/infrastructure/cache"
	"github.com/clearcomply/contract-compliance-backend/internal/infrastructure/config"
	"github.com/clearcomply/contract-compliance-backend/internal/infrastructure/notification"
	"github.com/clearcomply/contract-compliance-backend/internal/infrastructure/repository"
	"github.com/clearcomply/contract-compliance-backend/internal/infrastructure/telemetry"
	"github.com/clearcomply/contract-compliance-backend/internal/metrics"
	"github.com/clearcomply/contract-compliance-backend/internal/service/analysis"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := telemetry.NewLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector())
	m := metrics.New(promRegistry)

	registry := regulation.NewRegistry()
	logger.Info("regulation registry initialized", zap.Strings("regulations", registry.List()))

	// Persistence and cache are optional collaborators; the engine runs
	// without them.
	var store *repository.AnalysisRepository
	if cfg.Database.URL != "" {
		pool, err := repository.Connect(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()
		store = repository.NewAnalysisRepository(pool)
	} else {
		logger.Warn("no database configured, analysis history disabled")
	}

	var reportCache *cache.ReportCache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		reportCache = cache.NewReportCache(redisClient, logger.Named("cache"), cfg.Redis.TTL)
	}

	completer := ai.NewOpenRouterClient(logger.Named("openrouter"), cfg.OpenRouter)
	notifier := notification.NewWebhookNotifier(logger.Named("notifier"), cfg.Notification)

	serviceConfig := analysisServiceConfig(cfg.Analysis)
	service := analysis.NewService(
		logger.Named("analysis"),
		registry,
		completerOrNil(completer),
		reportStoreOrNil(store),
		notifierOrNil(notifier),
		m,
		serviceConfig,
	)

	handler := rest.NewHandler(logger.Named("api"), service, storeOrNil(store), reportCache, cfg.Version)
	server := rest.NewServer(cfg, logger.Named("http"), handler, m, promRegistry)

	if err := server.Run(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

func analysisServiceConfig(cfg config.AnalysisConfig) analysis.ServiceConfig {
	sc := analysis.DefaultServiceConfig()
	sc.MaxConcurrency = cfg.MaxConcurrency
	sc.Detector.KeywordWeight = cfg.KeywordWeight
	sc.Detector.RequirementWeight = cfg.RequirementWeight
	sc.Detector.ConceptWeight = cfg.ConceptWeight
	sc.Detector.PresenceThreshold = cfg.PresenceThreshold
	sc.Scoring.BaselineClauses = cfg.BaselineClauses
	sc.Scoring.MissingPenalty = cfg.MissingPenalty
	sc.Scoring.ScoreFloor = cfg.ScoreFloor
	sc.Scoring.MaxIssues = cfg.MaxIssues
	sc.Scoring.MaxRecommendations = cfg.MaxRecommendations
	sc.Generator.Timeout = cfg.GenerationTimeout
	sc.Generator.MinLength = cfg.GenerationMinLength
	sc.Generator.MaxTokens = cfg.GenerationMaxTokens
	sc.Generator.ContextExcerpt = cfg.ContextExcerptLength
	return sc
}

// Typed-nil guards: a nil concrete pointer stored in an interface is not a
// nil interface, so map them explicitly.

func completerOrNil(c *ai.OpenRouterClient) analysis.TextCompleter {
	if c == nil {
		return nil
	}
	return c
}

func storeOrNil(s *repository.AnalysisRepository) rest.AnalysisStore {
	if s == nil {
		return nil
	}
	return s
}

func reportStoreOrNil(s *repository.AnalysisRepository) analysis.ReportStore {
	if s == nil {
		return nil
	}
	return s
}

func notifierOrNil(n *notification.WebhookNotifier) analysis.Notifier {
	if n == nil {
		return nil
	}
	return n
}
