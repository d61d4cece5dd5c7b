package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/time/rate"

	"casebem/config"
	"casebem/config/postgre"
	"casebem/internal/catalog"
	catalogPostgre "casebem/internal/catalog/repository/postgre"
	demandUC "casebem/internal/demand/usecase"
	negotiationUC "casebem/internal/negotiation/usecase"
	quoteUC "casebem/internal/quote/usecase"
	repoPostgre "casebem/internal/repository/postgre"
	"casebem/internal/sweeper"
	"casebem/pkg/log"
	"casebem/pkg/metrics"
	"casebem/pkg/tracing"
)

// main runs the quote expiry sweep as its own process against PostgreSQL.
// Several replicas may run at once: each batch skips quotes another sweeper
// holds locked.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Storage.Driver != config.StoragePostgres {
		logger.Errorf(ctx, "Sweeper needs storage.driver=%s, got %q", config.StoragePostgres, cfg.Storage.Driver)
		return
	}

	logger.Info(ctx, "Starting expiry sweeper...")

	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		Endpoint:    cfg.Tracing.Endpoint,
		Insecure:    cfg.Tracing.Insecure,
		ServiceName: cfg.Tracing.ServiceName + "-sweeper",
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

	// Infrastructure
	db, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
		return
	}
	defer postgre.Disconnect(ctx, db)

	repo := repoPostgre.New(db, logger, cfg.Negotiation.LockAcquireTimeout)
	cat := catalog.NewBreaker(catalogPostgre.New(db, logger), catalog.BreakerConfig(cfg.Catalog.Breaker), logger)

	// UseCases
	quotes := quoteUC.New(repo, cat, logger)
	demands := demandUC.New(repo, quotes, logger)

	var limiter *rate.Limiter
	if cfg.Sweeper.BatchesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Sweeper.BatchesPerSecond), 1)
	}
	negotiator := negotiationUC.New(repo, demands, quotes, logger, negotiationUC.Config{
		SweepBatchSize: cfg.Sweeper.BatchSize,
		SweepLimiter:   limiter,
	})

	sw := sweeper.New(negotiator, cfg.Sweeper.Interval, logger)
	if cfg.Metrics.Enabled {
		pm := metrics.New()
		sw.WithObserver(pm)
		go serveMetrics(ctx, cfg.Metrics.Addr, pm, logger)
	}

	// Run until signalled
	sw.Start(ctx)

	logger.Info(ctx, "Sweeper stopped gracefully")
}

func serveMetrics(ctx context.Context, addr string, pm *metrics.Metrics, l log.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", pm.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.WithoutCancel(ctx))
	}()

	l.Infof(ctx, "Metrics listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Errorf(ctx, "Metrics server: %v", err)
	}
}
