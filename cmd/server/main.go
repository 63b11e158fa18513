// Package main is the entry point for the fretor API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fretor/internal/core/config"
	"fretor/internal/core/tenant"
	"fretor/internal/domain/analytics"
	"fretor/internal/domain/dashboard"
	"fretor/internal/domain/notify"
	"fretor/internal/domain/reports"
	"fretor/internal/infrastructure/artifact"
	v1 "fretor/internal/infrastructure/http/v1"
	"fretor/internal/infrastructure/metrics"
	"fretor/internal/infrastructure/render"
	"fretor/internal/infrastructure/storage/postgres"
	"fretor/internal/infrastructure/worker"
	"fretor/pkg/logger"
)

func main() {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting fretor server")

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()
	log.Info("database connection established")

	m := metrics.New()

	// Tenancy
	registry := tenant.NewPostgresRegistry(pool)
	resolver := tenant.NewResolver(registry, time.Now)

	// Analytics and dashboard
	analyticsSvc := analytics.NewService(postgres.NewAnalyticsRepo(pool), time.Now)
	dashboardSvc := dashboard.NewService(postgres.NewDashboardRepo(pool), analyticsSvc, time.Now)

	// Report pipeline. Jobs are shared with the standalone worker through
	// Postgres; execution here covers single-binary deployments.
	artifacts, err := artifact.NewStore(cfg.ReportsDir, cfg.CompressArtifacts)
	if err != nil {
		log.Fatalw("failed to initialize artifact store", "error", err)
	}

	workerPool := worker.NewPool(cfg.ReportWorkers, cfg.ReportQueueSize, log)
	defer workerPool.Stop()
	m.RegisterQueueDepth(workerPool.QueueLen)

	jobStore := postgres.NewJobRepo(pool, time.Now)
	reportsSvc := reports.NewService(
		jobStore,
		reports.NewGenerator(postgres.NewReportRepo(pool)),
		map[reports.Format]reports.Renderer{
			reports.FormatJSON:  render.NewJSON(),
			reports.FormatExcel: render.NewExcel(),
			reports.FormatPDF:   render.NewJSON(), // pdf degrades to json
		},
		artifacts,
		workerPool,
		notify.NewLogNotifier(log),
		log,
		cfg.JobTimeout,
		time.Now,
	)
	reportsSvc.SetObserver(m)

	router := v1.NewRouter(v1.RouterConfig{
		Logger:            log,
		Metrics:           m,
		Pool:              pool,
		TenantResolver:    resolver,
		DefaultTenantSlug: cfg.DefaultTenantSlug,
		Analytics:         analyticsSvc,
		Dashboard:         dashboardSvc,
		Reports:           reportsSvc,
		Artifacts:         artifacts,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
