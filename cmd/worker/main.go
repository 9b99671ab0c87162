package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/odyssey-erp/odyssey-console/internal/app"
	jobmetrics "github.com/odyssey-erp/odyssey-console/internal/jobs"
	"github.com/odyssey-erp/odyssey-console/internal/lookup"
	"github.com/odyssey-erp/odyssey-console/internal/platform/backend"
	"github.com/odyssey-erp/odyssey-console/internal/platform/cache"
	"github.com/odyssey-erp/odyssey-console/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Default().Warn("load .env", slog.Any("error", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg).With(slog.String("component", "worker"))

	redisClient, err := cache.New(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	client := backend.NewClient(cfg.APIBase(), backend.WithTimeout(cfg.APITimeout), backend.WithLogger(logger))
	lookupMetrics, err := lookup.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		logger.Error("lookup metrics", slog.Any("error", err))
		os.Exit(1)
	}
	lookups := lookup.NewCache(client, redisClient, cfg.LookupCacheTTL,
		lookup.WithMetrics(lookupMetrics),
		lookup.WithLogger(logger),
	)

	warmupJob := jobs.NewLookupWarmupJob(lookups, logger, jobmetrics.NewMetrics(nil))
	warmupTask, err := jobs.NewLookupWarmupTask(jobs.LookupWarmupPayload{Invalidate: true, Reason: "cron"})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskLookupWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.LookupWarmCron, Task: warmupTask},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
