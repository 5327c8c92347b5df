package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/audit"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/config"
	dbpkg "github.com/IsacFSC/nutri-mobile-sub001/internal/db"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/infra/lock"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/observability/metrics"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/routes"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/timezone"
	"github.com/IsacFSC/nutri-mobile-sub001/pkg/logging"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("api stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := timezone.SetDefault(cfg.DefaultTimezone); err != nil {
		return err
	}

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	log.Info("connected to postgres")

	locker, rdb, err := lock.FromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	deps := routes.Deps{
		DB:     db,
		Config: cfg,
		Log:    log,
		Locker: locker,
	}
	if rdb != nil {
		defer rdb.Close()
		deps.RedisPing = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Info("protocol lock backed by redis", "addr", cfg.RedisAddr)
	} else {
		log.Warn("REDIS_ADDR not set, protocol lock is process-local")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.Registry = registry
	deps.Scheduling = metrics.NewSchedulingMetrics(registry)
	deps.HTTP = metrics.NewHTTPMetrics(registry)

	dispatcher := audit.NewDispatcher(audit.New(db), log)
	defer dispatcher.Close()
	deps.Audit = dispatcher

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", "addr", cfg.Addr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
