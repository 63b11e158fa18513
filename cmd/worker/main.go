// Package main is the entry point for the standalone report worker. It
// claims pending jobs from the shared Postgres job store and executes them,
// so report generation can scale independently of the API server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fretor/internal/core/config"
	"fretor/internal/domain/notify"
	"fretor/internal/domain/reports"
	"fretor/internal/infrastructure/artifact"
	"fretor/internal/infrastructure/render"
	"fretor/internal/infrastructure/storage/postgres"
	"fretor/internal/infrastructure/worker"
	"fretor/pkg/logger"
)

const pollInterval = 2 * time.Second

func main() {
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting fretor report worker")

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	artifacts, err := artifact.NewStore(cfg.ReportsDir, cfg.CompressArtifacts)
	if err != nil {
		log.Fatalw("failed to initialize artifact store", "error", err)
	}

	workerPool := worker.NewPool(cfg.ReportWorkers, cfg.ReportQueueSize, log)
	defer workerPool.Stop()

	jobStore := postgres.NewJobRepo(pool, time.Now)
	svc := reports.NewService(
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

	log.Infow("worker ready", "workers", cfg.ReportWorkers, "poll_interval", pollInterval.String())

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutting down worker...")
			return
		case <-ticker.C:
			claimed, err := jobStore.ClaimPending(ctx, cfg.ReportWorkers)
			if err != nil {
				log.Errorw("claim pending jobs", "error", err)
				continue
			}
			for _, job := range claimed {
				job := job
				err := workerPool.Dispatch(job.ID, job.TenantID, func(taskCtx context.Context) {
					svc.Execute(taskCtx, job)
				})
				if err != nil {
					// Put the job back into a failed state rather than
					// leaving it claimed forever.
					log.Errorw("dispatch claimed job", "job_id", job.ID, "error", err)
					if failErr := jobStore.Fail(ctx, job.ID, "worker queue unavailable"); failErr != nil {
						log.Errorw("fail undispatched job", "job_id", job.ID, "error", failErr)
					}
				}
			}
		}
	}
}
