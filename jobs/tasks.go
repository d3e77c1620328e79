package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"

	// TaskOverdueScan flips unpaid records past their due date to OVERDUE.
	TaskOverdueScan = "finance:overdue_scan"
	// TaskRecurrenceRun spawns the next occurrence of recurring records.
	TaskRecurrenceRun = "finance:recurrence_run"
	// TaskAlertGenerate produces dashboard alerts from the finance data.
	TaskAlertGenerate = "finance:alert_generate"
	// TaskSendEmail delivers a transactional email.
	TaskSendEmail = "mail:send"
)

// ScanPayload carries the reference time for time-driven tasks. A zero
// At means "now" on the worker.
type ScanPayload struct {
	At time.Time `json:"at,omitempty"`
}

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewOverdueScanTask constructs an overdue scan task.
func NewOverdueScanTask(payload ScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOverdueScan, data), nil
}

// NewRecurrenceRunTask constructs a recurrence run task.
func NewRecurrenceRunTask(payload ScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskRecurrenceRun, data), nil
}

// NewAlertGenerateTask constructs an alert generation task.
func NewAlertGenerateTask(payload ScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAlertGenerate, data), nil
}

// NewSendEmailTask constructs a send-email task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSendEmail, data), nil
}

// HandleSendEmailTask processes TaskSendEmail tasks.
func HandleSendEmailTask(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	// Placeholder until an SMTP relay is provisioned.
	fmt.Printf("[jobs] send email to %s subject=%s\n", payload.To, payload.Subject)
	return nil
}

func scanTime(t *asynq.Task) time.Time {
	var payload ScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err == nil && !payload.At.IsZero() {
		return payload.At
	}
	return time.Now()
}
