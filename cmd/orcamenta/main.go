package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/orcamenta/orcamenta/internal/app"
	"github.com/orcamenta/orcamenta/internal/backup"
	"github.com/orcamenta/orcamenta/internal/catalog"
	"github.com/orcamenta/orcamenta/internal/clients"
	"github.com/orcamenta/orcamenta/internal/observability"
	"github.com/orcamenta/orcamenta/internal/platform/cache"
	"github.com/orcamenta/orcamenta/internal/platform/db"
	"github.com/orcamenta/orcamenta/internal/quotes"
	"github.com/orcamenta/orcamenta/internal/settings"
	"github.com/orcamenta/orcamenta/internal/stock"
	"github.com/orcamenta/orcamenta/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
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

	clientsRepo := clients.NewRepository(pool)
	clientsService := clients.NewService(clientsRepo)
	clientsHandler := clients.NewHandler(logger, clientsService)

	catalogRepo := catalog.NewRepository(pool)
	catalogService := catalog.NewService(catalogRepo)
	catalogHandler := catalog.NewHandler(logger, catalogService)

	settingsRepo := settings.NewRepository(pool)
	settingsService := settings.NewService(settingsRepo)
	settingsHandler := settings.NewHandler(logger, settingsService)

	draftStore := quotes.NewRedisDraftStore(redisClient, cfg.DraftTTL)
	quotesRepo := quotes.NewRepository(pool)
	quotesService := quotes.NewService(quotesRepo, draftStore, clientsService, catalogService, settingsService,
		stock.Policy{RestoreOnEdit: cfg.RestoreStockOnEdit}, logger)
	exporter := quotes.NewWhatsAppExporter(clientsService, settingsService)
	quotesHandler := quotes.NewHandler(logger, quotesService, exporter)

	backupRepo := backup.NewRepository(pool)
	backupService := backup.NewService(clientsService, catalogService, quotesService, settingsService, backupRepo, logger)
	backupHandler := backup.NewHandler(logger, backupService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, jobsClient, logger)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		ClientsHandler:  clientsHandler,
		CatalogHandler:  catalogHandler,
		QuotesHandler:   quotesHandler,
		SettingsHandler: settingsHandler,
		BackupHandler:   backupHandler,
		JobHandler:      jobHandler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
