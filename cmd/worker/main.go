package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/orcamenta/orcamenta/cmd/orcamenta/cli"
	"github.com/orcamenta/orcamenta/internal/app"
	"github.com/orcamenta/orcamenta/internal/backup"
	"github.com/orcamenta/orcamenta/internal/catalog"
	"github.com/orcamenta/orcamenta/internal/clients"
	jobmetrics "github.com/orcamenta/orcamenta/internal/jobs"
	"github.com/orcamenta/orcamenta/internal/platform/cache"
	"github.com/orcamenta/orcamenta/internal/platform/db"
	"github.com/orcamenta/orcamenta/internal/quotes"
	"github.com/orcamenta/orcamenta/internal/settings"
	"github.com/orcamenta/orcamenta/internal/stock"
	"github.com/orcamenta/orcamenta/jobs"
)

func main() {
	trigger := flag.String("trigger", "", "enqueue the named job once and exit")
	flag.Parse()

	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if *trigger != "" {
		jobsCLI, err := cli.NewJobsCLI(cfg.RedisAddr)
		if err != nil {
			logger.Error("init jobs cli", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() { _ = jobsCLI.Close() }()
		info, err := jobsCLI.Trigger(ctx, *trigger)
		if err != nil {
			logger.Error("trigger job", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("job enqueued", slog.String("id", info.ID), slog.String("type", info.Type))
		return
	}

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	clientsService := clients.NewService(clients.NewRepository(pool))
	catalogService := catalog.NewService(catalog.NewRepository(pool))
	settingsService := settings.NewService(settings.NewRepository(pool))

	draftStore := quotes.NewRedisDraftStore(redisClient, cfg.DraftTTL)
	quotesService := quotes.NewService(quotes.NewRepository(pool), draftStore, clientsService, catalogService,
		settingsService, stock.Policy{RestoreOnEdit: cfg.RestoreStockOnEdit}, logger)

	backupService := backup.NewService(clientsService, catalogService, quotesService, settingsService,
		backup.NewRepository(pool), logger)

	now := time.Now().UTC()
	backupTask, err := jobs.NewBackupSnapshotTask(now)
	if err != nil {
		logger.Error("build backup task", slog.Any("error", err))
		os.Exit(1)
	}
	sweepTask, err := jobs.NewDraftSweepTask(now)
	if err != nil {
		logger.Error("build draft sweep task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Metrics:   jobmetrics.NewMetrics(nil),
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskBackupSnapshot, Handler: jobs.NewBackupSnapshotHandler(backupService, cfg.BackupDir, logger)},
			{Type: jobs.TaskDraftSweep, Handler: jobs.NewDraftSweepHandler(draftStore, cfg.DraftTTL, logger)},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.BackupCron, Task: backupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: cfg.DraftSweepCron, Task: sweepTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
