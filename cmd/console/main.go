package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/odyssey-erp/odyssey-console/cmd/console/cli"
	"github.com/odyssey-erp/odyssey-console/internal/app"
	"github.com/odyssey-erp/odyssey-console/internal/cascade"
	"github.com/odyssey-erp/odyssey-console/internal/console"
	"github.com/odyssey-erp/odyssey-console/internal/lookup"
	"github.com/odyssey-erp/odyssey-console/internal/observability"
	"github.com/odyssey-erp/odyssey-console/internal/platform/backend"
	"github.com/odyssey-erp/odyssey-console/internal/platform/cache"
	"github.com/odyssey-erp/odyssey-console/internal/shared"
	"github.com/odyssey-erp/odyssey-console/internal/view"
	"github.com/odyssey-erp/odyssey-console/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Default().Warn("load .env", slog.Any("error", err))
	}

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) > 1 {
		if err := runCommand(ctx, cfg, os.Args[1:]); err != nil {
			logger.Error("command failed", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	if err := serve(ctx, cfg, logger); err != nil {
		logger.Error("console stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func redisOpts(cfg *app.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB}
}

func runCommand(ctx context.Context, cfg *app.Config, args []string) error {
	if args[0] != "jobs" || len(args) < 2 {
		return fmt.Errorf("usage: console [jobs trigger <task>|jobs inspect]")
	}
	jobsCLI := cli.NewJobsCLI(redisOpts(cfg))
	defer jobsCLI.Close()

	switch args[1] {
	case "trigger":
		if len(args) < 3 {
			return fmt.Errorf("usage: console jobs trigger <task>")
		}
		info, err := jobsCLI.Trigger(ctx, args[2])
		if err != nil {
			return err
		}
		fmt.Printf("enqueued %s id=%s queue=%s\n", info.Type, info.ID, info.Queue)
		return nil
	case "inspect":
		stats, err := jobsCLI.InspectQueue(ctx)
		if err != nil {
			return err
		}
		scheduled, err := jobsCLI.ListScheduled(ctx, 10)
		if err != nil {
			return err
		}
		return cli.PrintStats(os.Stdout, stats, scheduled)
	default:
		return fmt.Errorf("jobs: unknown command %q", args[1])
	}
}

func serve(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	redisClient, err := cache.New(ctx, cache.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	client := backend.NewClient(cfg.APIBase(), backend.WithTimeout(cfg.APITimeout), backend.WithLogger(logger))
	proxy, err := backend.NewProxy(cfg.BackendURL, logger)
	if err != nil {
		return fmt.Errorf("api proxy: %w", err)
	}

	lookupMetrics, err := lookup.NewMetrics(metrics.Registerer())
	if err != nil {
		return fmt.Errorf("lookup metrics: %w", err)
	}
	lookups := lookup.NewCache(client, redisClient, cfg.LookupCacheTTL,
		lookup.WithMetrics(lookupMetrics),
		lookup.WithLogger(logger),
	)
	if err := lookups.Warm(ctx); err != nil {
		logger.Warn("lookup warmup", slog.Any("error", err))
	}

	sessionManager := shared.NewSessionManager(redisClient, "console_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	options := console.NewOptions()
	app.RegisterOptions(options, client, lookups)

	nav := app.Navigation()
	deps := console.Deps{
		Logger:    logger,
		Templates: templates,
		CSRF:      csrfManager,
		Options:   options,
		Nav:       nav,
		PageSize:  cfg.PageSize,
		Paper:     cfg.ExportPaper,
	}

	inspector := asynq.NewInspector(redisOpts(cfg))
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		Templates:      templates,
		SessionManager: sessionManager,
		CSRFManager:    csrfManager,
		Metrics:        metrics,
		Proxy:          proxy,
		Pages:          app.NewPages(deps, client, lookups),
		Nav:            nav,
		Cascade:        cascade.NewHandler(logger, lookups),
		Lookups:        lookups,
		JobHandler:     jobs.NewHandler(inspector, logger),
		Ping: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("backend", cfg.APIBase()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
