package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/visionday/hub/internal/app"
	"github.com/visionday/hub/jobs"
)

func main() {
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

	overdueTask, err := jobs.NewOverdueScanTask(jobs.ScanPayload{})
	if err != nil {
		logger.Error("build overdue task", slog.Any("error", err))
		os.Exit(1)
	}
	recurrenceTask, err := jobs.NewRecurrenceRunTask(jobs.ScanPayload{})
	if err != nil {
		logger.Error("build recurrence task", slog.Any("error", err))
		os.Exit(1)
	}
	alertTask, err := jobs.NewAlertGenerateTask(jobs.ScanPayload{})
	if err != nil {
		logger.Error("build alert task", slog.Any("error", err))
		os.Exit(1)
	}

	scheduler, err := jobs.NewScheduler(asynq.RedisClientOpt{Addr: cfg.RedisAddr}, logger, []jobs.CronRegistration{
		{Spec: "0 * * * *", Task: overdueTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		{Spec: "30 0 * * *", Task: recurrenceTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		{Spec: "*/30 * * * *", Task: alertTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
	})
	if err != nil {
		logger.Error("init scheduler", slog.Any("error", err))
		os.Exit(1)
	}

	if err := scheduler.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("scheduler run", slog.Any("error", err))
		os.Exit(1)
	}
}
