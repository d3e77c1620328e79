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
	"github.com/redis/go-redis/v9"

	"github.com/visionday/hub/internal/app"
	"github.com/visionday/hub/internal/auth"
	"github.com/visionday/hub/internal/finance/alerts"
	"github.com/visionday/hub/internal/finance/invoices"
	"github.com/visionday/hub/internal/finance/masterdata/bankaccounts"
	"github.com/visionday/hub/internal/finance/masterdata/categories"
	"github.com/visionday/hub/internal/finance/masterdata/clients"
	"github.com/visionday/hub/internal/finance/masterdata/paymethods"
	"github.com/visionday/hub/internal/finance/masterdata/suppliers"
	"github.com/visionday/hub/internal/finance/payables"
	"github.com/visionday/hub/internal/finance/receivables"
	"github.com/visionday/hub/internal/platform/cache"
	"github.com/visionday/hub/jobs"
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

	redisClient, err := cache.New(ctx, cfg.RedisAddr, cfg.RedisPingTimeout)
	if err != nil {
		// Tokens and jobs need redis eventually, but a dev boot without it
		// should still serve the API. Connections are retried lazily.
		logger.Warn("redis unavailable at startup", slog.Any("error", err))
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	queue, err := jobs.NewClient(redisOpts)
	if err != nil {
		logger.Error("init queue client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := queue.Close(); err != nil {
			logger.Warn("queue close", slog.Any("error", err))
		}
	}()

	authStore := auth.NewStore()
	if err := authStore.SeedDefault(); err != nil {
		logger.Error("seed auth store", slog.Any("error", err))
		os.Exit(1)
	}
	tokenStore := auth.NewTokenStore(redisClient, cfg.TokenTTL, cfg.RefreshTTL)
	authService := auth.NewService(authStore, tokenStore, queue, cfg.ResetTokenTTL)
	authHandler := auth.NewHandler(logger, authService)

	clientRepo := clients.NewRepository()
	supplierRepo := suppliers.NewRepository()
	categoryRepo := categories.NewRepository()
	accountRepo := bankaccounts.NewRepository()
	methodRepo := paymethods.NewRepository()
	if cfg.SeedDemoData {
		categoryRepo.SeedDefaults()
		accountRepo.SeedDefaults()
		methodRepo.SeedDefaults()
	}

	clientService := clients.NewService(clientRepo)
	supplierService := suppliers.NewService(supplierRepo)
	categoryService := categories.NewService(categoryRepo)
	accountService := bankaccounts.NewService(accountRepo)
	methodService := paymethods.NewService(methodRepo)

	receivableService := receivables.NewService(receivables.NewRepository(), clientService, categoryService, accountService)
	payableService := payables.NewService(payables.NewRepository(), supplierService, categoryService, accountService)
	invoiceService := invoices.NewService(invoices.NewRepository(), clientService)
	alertService := alerts.NewService(alerts.NewRepository(), receivableService, payableService, accountService)

	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		AuthHandler:         authHandler,
		AuthMiddleware:      auth.RequireAuth(tokenStore),
		ClientsHandler:      clients.NewHandler(logger, clientService),
		SuppliersHandler:    suppliers.NewHandler(logger, supplierService),
		CategoriesHandler:   categories.NewHandler(logger, categoryService),
		BankAccountsHandler: bankaccounts.NewHandler(logger, accountService),
		PayMethodsHandler:   paymethods.NewHandler(logger, methodService),
		ReceivablesHandler:  receivables.NewHandler(logger, receivableService),
		PayablesHandler:     payables.NewHandler(logger, payableService),
		InvoicesHandler:     invoices.NewHandler(logger, invoiceService),
		AlertsHandler:       alerts.NewHandler(logger, alertService),
		JobsHandler:         jobs.NewHandler(inspector, logger),
	})

	// The finance stores live in this process, so the queue consumer has
	// to run here as well. cmd/worker only schedules.
	overdueJob := &jobs.OverdueScanJob{Receivables: receivableService, Payables: payableService, Logger: logger}
	recurrenceJob := &jobs.RecurrenceRunJob{Receivables: receivableService, Logger: logger}
	alertJob := &jobs.AlertGenerateJob{Alerts: alertService, Logger: logger}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: redisOpts,
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskOverdueScan, Handler: overdueJob.Handle},
			{Type: jobs.TaskRecurrenceRun, Handler: recurrenceJob.Handle},
			{Type: jobs.TaskAlertGenerate, Handler: alertJob.Handle},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}
	go func() {
		if err := worker.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("worker run", slog.Any("error", err))
		}
	}()

	// A fresh process may have missed the hourly scan, so one is enqueued at
	// boot to bring statuses up to date.
	if _, err := queue.EnqueueOverdueScan(ctx, jobs.ScanPayload{}); err != nil {
		logger.Warn("enqueue boot scan", slog.Any("error", err))
	}

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
