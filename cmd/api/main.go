package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/time/rate"

	"casebem/config"
	"casebem/config/postgre"
	_ "casebem/docs" // Swagger docs
	"casebem/internal/catalog"
	catalogMemory "casebem/internal/catalog/repository/memory"
	catalogPostgre "casebem/internal/catalog/repository/postgre"
	demandUC "casebem/internal/demand/usecase"
	"casebem/internal/httpserver"
	negotiationUC "casebem/internal/negotiation/usecase"
	queryUC "casebem/internal/query/usecase"
	quoteUC "casebem/internal/quote/usecase"
	"casebem/internal/repository"
	repoMemory "casebem/internal/repository/memory"
	repoPostgre "casebem/internal/repository/postgre"
	"casebem/internal/sweeper"
	"casebem/pkg/log"
	"casebem/pkg/metrics"
	"casebem/pkg/scope"
	"casebem/pkg/tracing"
)

// @title       CaseBem Negotiation API
// @description Demand publication, supplier quotes and per-line decisions for the CaseBem wedding marketplace.
// @version     1
// @host        localhost:8080
// @schemes     http
// @securityDefinitions.apikey Bearer
// @in   header
// @name Authorization
func main() {
	migrateOnly := flag.Bool("migrate", false, "apply database migrations and exit")
	flag.Parse()

	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *migrateOnly {
		if err := postgre.Migrate(cfg.Postgres.DSN, cfg.Postgres.MigrationsPath); err != nil {
			logger.Error(ctx, "Failed to migrate: ", err)
			os.Exit(1)
		}
		logger.Info(ctx, "Migrations applied")
		return
	}

	logger.Info(ctx, "Starting CaseBem API...")
	logger.Infof(ctx, "Environment: %s, storage: %s", cfg.Environment.Name, cfg.Storage.Driver)

	// 3. Tracing
	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		ServiceName: cfg.Tracing.ServiceName,
		Version:     httpserver.HealthVersion,
		SampleRatio: cfg.Tracing.SampleRatio,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize tracing: ", err)
		return
	}
	defer func() {
		if err := shutdownTracing(context.WithoutCancel(ctx)); err != nil {
			logger.Warnf(ctx, "Tracing shutdown: %v", err)
		}
	}()

	// 4. Storage
	var (
		db   *sql.DB
		repo repository.Repository
		cat  catalog.Reader
	)
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err = postgre.Connect(ctx, cfg.Postgres)
		if err != nil {
			logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
			return
		}
		defer postgre.Disconnect(ctx, db)

		repo = repoPostgre.New(db, logger, cfg.Negotiation.LockAcquireTimeout)
		cat = catalogPostgre.New(db, logger)
	default:
		logger.Warn(ctx, "Memory storage: data is lost on restart")
		repo = repoMemory.New(logger, cfg.Negotiation.LockAcquireTimeout)
		cat = catalogMemory.New()
	}
	cat = catalog.NewCached(
		catalog.NewBreaker(cat, catalog.BreakerConfig(cfg.Catalog.Breaker), logger),
		cfg.Catalog.CacheSize,
		cfg.Catalog.CacheTTL,
	)

	// 5. UseCases
	quotes := quoteUC.New(repo, cat, logger)
	demands := demandUC.New(repo, quotes, logger)
	negotiator := negotiationUC.New(repo, demands, quotes, logger, negotiationUC.Config{
		SweepBatchSize: cfg.Sweeper.BatchSize,
		SweepLimiter:   sweepLimiter(cfg.Sweeper),
	})
	reader := queryUC.New(demands, quotes, repo, logger, queryUC.Config{
		DefaultPageSize: cfg.Pagination.DefaultPageSize,
		PublicPageSize:  cfg.Pagination.PublicPageSize,
		MaxPageSize:     cfg.Pagination.MaxPageSize,
	})

	// 6. Metrics and the expiry sweeper (optional, usually cmd/sweeper)
	var pm *metrics.Metrics
	if cfg.Metrics.Enabled {
		pm = metrics.New()
	}
	if cfg.Sweeper.Embedded {
		sw := sweeper.New(negotiator, cfg.Sweeper.Interval, logger)
		if pm != nil {
			sw.WithObserver(pm)
		}
		go sw.Start(ctx)
	}

	// 7. HTTP Server
	srvCfg := httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ServiceName:     cfg.Tracing.ServiceName,
		ShutdownTimeout: cfg.HTTPServer.ShutdownTimeout,
		JWTManager:      scope.New(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer),
		NegotiationUC:   negotiator,
		QueryUC:         reader,
		Metrics:         pm,
	}
	if db != nil {
		srvCfg.DB = db
	}
	httpServer, err := httpserver.New(logger, srvCfg)
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

func sweepLimiter(cfg config.SweeperConfig) *rate.Limiter {
	if cfg.BatchesPerSecond <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(cfg.BatchesPerSecond), 1)
}
