package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"novated-lease/config"
	"novated-lease/domain"
	httpLayer "novated-lease/http"
	"novated-lease/repository"
	"novated-lease/service"
)

func main() {
	cfg, err := config.Load(os.Getenv("LEASE_CONFIG"))
	noErr(err)

	logger, err := config.NewLogger(cfg.Logging)
	noErr(err)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	quoteRepo, closeRepos := buildRepository(ctx, cfg.Persistence, logger.Named("repository"))
	defer closeRepos()

	cache, closeCache := buildCache(cfg.Cache, logger.Named("cache"))
	defer closeCache()

	tables := service.DefaultTables()
	recorder := service.NewRecorder(quoteRepo, cfg.Persistence.Timeout, logger.Named("recorder"))

	leaseService := service.NewLeaseService(
		service.NewLeaseCalculator(tables, logger.Named("lease")),
		cache, cfg.Cache.TTL, recorder, logger.Named("lease"),
	)
	byoService := service.NewBYOService(service.NewBYOCalculator(tables, logger.Named("byo")), recorder, logger.Named("byo"))
	quoteService := service.NewQuoteService(service.NewQuoteAnalyzer(tables, cfg.Analyzer, logger.Named("quote")), recorder)
	leadService := service.NewLeadService(recorder, logger.Named("lead"))
	onRoad := service.NewOnRoadEstimator(tables, logger.Named("onroad"))

	handlerLogger := logger.Named("http")
	handlers := httpLayer.Handlers{
		Lease:  httpLayer.NewLeaseHandler(leaseService, handlerLogger),
		BYO:    httpLayer.NewBYOHandler(byoService, handlerLogger),
		OnRoad: httpLayer.NewOnRoadHandler(onRoad, handlerLogger),
		Quote:  httpLayer.NewQuoteHandler(quoteService, handlerLogger),
		Lead:   httpLayer.NewLeadHandler(leadService, handlerLogger),
	}

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Refill)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      httpLayer.NewRouter(handlers, rateLimiter, handlerLogger),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Server.Addr), zap.String("tables", tables.Version))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("server failed", zap.Error(err))
		return
	case <-quit:
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}

	logger.Info("server exited")
}

// buildRepository fans out to Postgres and Kafka when they are configured and
// falls back to the in-memory store otherwise.
func buildRepository(ctx context.Context, cfg config.PersistenceConfig, logger *zap.Logger) (repository.QuoteRepository, func()) {
	var repos []repository.QuoteRepository
	var closers []func()

	if cfg.Postgres.Enabled {
		pg, err := repository.NewPostgresRepository(ctx, cfg.Postgres.DSN, logger.Named("postgres"))
		noErr(err)
		noErr(pg.Migrate(ctx))
		repos = append(repos, pg)
		closers = append(closers, pg.Close)
	}

	if cfg.Kafka.Enabled {
		kinds := make([]domain.RecordKind, 0, len(cfg.Kafka.Kinds))
		for _, k := range cfg.Kafka.Kinds {
			kinds = append(kinds, domain.RecordKind(k))
		}
		publisher := repository.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, kinds, logger.Named("kafka"))
		repos = append(repos, publisher)
		closers = append(closers, func() {
			if err := publisher.Close(); err != nil {
				logger.Warn("failed to close kafka writer", zap.Error(err))
			}
		})
	}

	if len(repos) == 0 {
		logger.Info("no persistence configured, keeping records in memory")
		repos = append(repos, repository.NewQuoteRepositoryMemory())
	}

	return repository.NewFanout(repos...), func() {
		for _, c := range closers {
			c()
		}
	}
}

func buildCache(cfg config.CacheConfig, logger *zap.Logger) (repository.CacheRepository, func()) {
	if !cfg.Enabled {
		return repository.NewMockCache(), func() {}
	}
	rc := repository.NewRedisCache(cfg.RedisAddr, logger.Named("redis"))
	return rc, func() {
		if err := rc.Close(); err != nil {
			logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
}

func noErr(err error) {
	if err != nil {
		panic("failed to initialize something important: " + err.Error())
	}
}
