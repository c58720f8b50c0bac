// Command server wires dependencies and runs the jobtrack HTTP API.
// Business logic lives in the internal service packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"jobtrack/internal/application/handler"
	appmetrics "jobtrack/internal/application/metrics"
	"jobtrack/internal/application/service"
	"jobtrack/internal/application/store"
	"jobtrack/internal/audit"
	"jobtrack/internal/platform/config"
	"jobtrack/internal/platform/httpserver"
	"jobtrack/internal/platform/logger"
	"jobtrack/internal/platform/middleware"
	platformredis "jobtrack/internal/platform/redis"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recordStore, cleanup, err := buildStore(ctx, cfg)
	if err != nil {
		log.Error("failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	auditPublisher := audit.NewPublisher(cfg.AuditBuffer, log)
	auditWorker := audit.NewWorker(audit.NewInMemoryStore(), auditPublisher.Inbox(), log)

	svc := service.New(recordStore,
		service.WithLogger(log),
		service.WithMetrics(appmetrics.New()),
		service.WithAuditPublisher(auditPublisher),
	)

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(30 * time.Second))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.RequestMetrics())
	router.Use(middleware.CORS(cfg.AllowedOrigin))

	handler.New(svc, log).Register(router)
	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting jobtrack", "addr", cfg.Addr)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

// buildStore selects the persistence backend: PostgreSQL when DATABASE_URL
// is set (with migrations applied first), in-memory otherwise, optionally
// wrapped in the Redis read cache.
func buildStore(ctx context.Context, cfg config.Server) (store.Store, func(), error) {
	cleanup := func() {}

	var recordStore store.Store
	if cfg.DatabaseURL != "" {
		if err := store.Migrate(cfg.DatabaseURL); err != nil {
			return nil, cleanup, err
		}
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, cleanup, err
		}
		recordStore = store.NewPostgres(pool)
		cleanup = pool.Close
	} else {
		recordStore = store.NewInMemory()
	}

	if cfg.RedisURL != "" {
		client, err := platformredis.New(ctx, cfg.RedisURL)
		if err != nil {
			return nil, cleanup, err
		}
		recordStore = store.NewCached(recordStore, client, cfg.CacheTTL)
		poolCleanup := cleanup
		cleanup = func() {
			client.Close()
			poolCleanup()
		}
	}
	return recordStore, cleanup, nil
}
