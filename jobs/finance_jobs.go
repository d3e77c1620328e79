package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// OverdueMarker flips unpaid records past their due date.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context, now time.Time) (int, error)
}

// RecurrenceRunner spawns the next occurrence of recurring records.
type RecurrenceRunner interface {
	RunRecurrence(ctx context.Context, now time.Time) (int, error)
}

// AlertGenerator produces dashboard alerts.
type AlertGenerator interface {
	Generate(ctx context.Context, now time.Time) (int, error)
}

// OverdueScanJob runs the overdue scan over receivables and payables.
type OverdueScanJob struct {
	Receivables OverdueMarker
	Payables    OverdueMarker
	Logger      *slog.Logger
}

func (j *OverdueScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	now := scanTime(t)
	recs, err := j.Receivables.MarkOverdue(ctx, now)
	if err != nil {
		return err
	}
	pays, err := j.Payables.MarkOverdue(ctx, now)
	if err != nil {
		return err
	}
	j.Logger.Info("overdue scan done",
		slog.Int("receivables", recs),
		slog.Int("payables", pays))
	return nil
}

// RecurrenceRunJob spawns due recurring receivables.
type RecurrenceRunJob struct {
	Receivables RecurrenceRunner
	Logger      *slog.Logger
}

func (j *RecurrenceRunJob) Handle(ctx context.Context, t *asynq.Task) error {
	now := scanTime(t)
	created, err := j.Receivables.RunRecurrence(ctx, now)
	if err != nil {
		return err
	}
	j.Logger.Info("recurrence run done", slog.Int("created", created))
	return nil
}

// AlertGenerateJob produces alerts from the current finance data.
type AlertGenerateJob struct {
	Alerts AlertGenerator
	Logger *slog.Logger
}

func (j *AlertGenerateJob) Handle(ctx context.Context, t *asynq.Task) error {
	now := scanTime(t)
	created, err := j.Alerts.Generate(ctx, now)
	if err != nil {
		return err
	}
	j.Logger.Info("alert generation done", slog.Int("created", created))
	return nil
}
