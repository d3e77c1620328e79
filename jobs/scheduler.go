package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

// Scheduler enqueues cron-driven tasks without consuming them. The
// consumer runs inside the API process, next to the stores the tasks
// operate on.
type Scheduler struct {
	scheduler *asynq.Scheduler
	logger    *slog.Logger
}

// NewScheduler registers the cron entries on a fresh Asynq scheduler.
func NewScheduler(redisOpts asynq.RedisClientOpt, logger *slog.Logger, cron []CronRegistration) (*Scheduler, error) {
	sched := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{Location: time.UTC})
	for _, entry := range cron {
		if entry.Spec == "" || entry.Task == nil {
			continue
		}
		if _, err := sched.Register(entry.Spec, entry.Task, entry.Options...); err != nil {
			return nil, err
		}
	}
	return &Scheduler{scheduler: sched, logger: logger}, nil
}

// Run starts the scheduler until context cancellation.
func (s *Scheduler) Run(ctx context.Context) error {
	if s == nil {
		return errors.New("scheduler: not configured")
	}
	if err := s.scheduler.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	s.scheduler.Shutdown()
	return ctx.Err()
}
