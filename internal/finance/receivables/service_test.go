package receivables

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

func newTestService() *Service {
	return NewService(NewRepository(), nil, nil, nil)
}

func baseInput(total float64, due time.Time) models.ReceivableInput {
	return models.ReceivableInput{
		Description: "Consulting retainer",
		TotalAmount: total,
		IssueDate:   due.AddDate(0, 0, -15),
		DueDate:     due,
	}
}

func TestCreateStartsPending(t *testing.T) {
	svc := newTestService()
	due := time.Now().AddDate(0, 0, 10)

	rec, err := svc.Create(context.Background(), baseInput(1500, due))
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, rec.Status)
	require.Equal(t, 1500.0, rec.TotalAmount)
	require.Equal(t, 0.0, rec.PaidAmount)
	require.Equal(t, 1500.0, rec.PendingAmount)
}

func TestCreateWithInstallmentsSumsToTotal(t *testing.T) {
	svc := newTestService()
	due := time.Now().AddDate(0, 0, 10)

	input := baseInput(1000, due)
	input.InstallmentCount = 3
	rec, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, rec.Installments, 3)

	sum := 0.0
	for i, inst := range rec.Installments {
		require.Equal(t, i+1, inst.Number)
		require.Equal(t, models.StatusPending, inst.Status)
		sum += inst.Amount
	}
	require.InDelta(t, 1000.0, sum, 0.001)
	// Monthly schedule starting at the due date.
	require.Equal(t, due.AddDate(0, 2, 0).Format("2006-01-02"), rec.Installments[2].DueDate.Format("2006-01-02"))
}

func TestPartialPaymentKeepsInvariant(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	rec, err := svc.Create(ctx, baseInput(1000, time.Now().AddDate(0, 0, 10)))
	require.NoError(t, err)

	rec, err = svc.RegisterPayment(ctx, rec.ID, models.PaymentInput{Amount: 400, PaymentDate: time.Now()})
	require.NoError(t, err)
	require.Equal(t, models.StatusPartiallyPaid, rec.Status)
	require.Equal(t, 400.0, rec.PaidAmount)
	require.Equal(t, 600.0, rec.PendingAmount)
	require.InDelta(t, rec.TotalAmount-rec.PaidAmount, rec.PendingAmount, 0.001)
	require.Nil(t, rec.PaymentDate)
}

func TestFullPaymentMarksPaid(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	rec, err := svc.Create(ctx, baseInput(1000, time.Now().AddDate(0, 0, 10)))
	require.NoError(t, err)

	paidAt := time.Now()
	rec, err = svc.RegisterPayment(ctx, rec.ID, models.PaymentInput{Amount: 1000, PaymentDate: paidAt})
	require.NoError(t, err)
	require.Equal(t, models.StatusPaid, rec.Status)
	require.Equal(t, 0.0, rec.PendingAmount)
	require.NotNil(t, rec.PaymentDate)
}

func TestPaymentRejectsOverpayAndZero(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	rec, err := svc.Create(ctx, baseInput(500, time.Now().AddDate(0, 0, 10)))
	require.NoError(t, err)

	_, err = svc.RegisterPayment(ctx, rec.ID, models.PaymentInput{Amount: 500.01, PaymentDate: time.Now()})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.RegisterPayment(ctx, rec.ID, models.PaymentInput{Amount: 0, PaymentDate: time.Now()})
	require.ErrorIs(t, err, httpx.ErrValidation)

	// Record untouched by the rejected attempts.
	rec, err = svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, 0.0, rec.PaidAmount)
	require.Equal(t, models.StatusPending, rec.Status)
}

func TestPaymentSettlesInstallmentsInOrder(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	input := baseInput(900, time.Now().AddDate(0, 0, 10))
	input.InstallmentCount = 3
	rec, err := svc.Create(ctx, input)
	require.NoError(t, err)

	rec, err = svc.RegisterPayment(ctx, rec.ID, models.PaymentInput{Amount: 300, PaymentDate: time.Now()})
	require.NoError(t, err)
	require.Equal(t, models.StatusPaid, rec.Installments[0].Status)
	require.Equal(t, models.StatusPending, rec.Installments[1].Status)
}

func TestMarkOverdue(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	_, err := svc.Create(ctx, baseInput(100, time.Now().AddDate(0, 0, 5)))
	require.NoError(t, err)
	late, err := svc.Create(ctx, baseInput(200, time.Now().AddDate(0, 0, 5)))
	require.NoError(t, err)

	changed, err := svc.MarkOverdue(ctx, time.Now().AddDate(0, 0, 6))
	require.NoError(t, err)
	require.Equal(t, 2, changed)

	rec, err := svc.Get(ctx, late.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusOverdue, rec.Status)
}

func TestSummaryIgnoresFilters(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	now := time.Now()

	rec, err := svc.Create(ctx, baseInput(1000, now.AddDate(0, 0, 5)))
	require.NoError(t, err)
	_, err = svc.Create(ctx, baseInput(400, now.AddDate(0, 0, 8)))
	require.NoError(t, err)
	_, err = svc.RegisterPayment(ctx, rec.ID, models.PaymentInput{Amount: 1000, PaymentDate: now})
	require.NoError(t, err)

	sum, err := svc.Summary(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1000.0, sum.TotalPaid)
	require.Equal(t, 400.0, sum.TotalPending)
	require.Equal(t, 1, sum.PaidCount)
	require.Equal(t, 1, sum.PendingCount)
	require.Len(t, sum.Upcoming, 1)
}

func TestRunRecurrenceSpawnsNextOccurrence(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	now := time.Now()

	input := baseInput(250, now.AddDate(0, 0, -1))
	input.Recurring = true
	input.RecurrenceFrequency = "MONTHLY"
	rec, err := svc.Create(ctx, input)
	require.NoError(t, err)

	created, err := svc.RunRecurrence(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, created)

	items, err := svc.List(ctx, models.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Running again before the new due date creates nothing.
	created, err = svc.RunRecurrence(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 0, created)

	next := items[0]
	if next.ID == rec.ID {
		next = items[1]
	}
	require.True(t, next.DueDate.After(rec.DueDate))
	require.Equal(t, 0.0, next.PaidAmount)
	require.Equal(t, models.StatusPending, next.Status)
}

func TestUpdateKeepsPayments(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	rec, err := svc.Create(ctx, baseInput(1000, time.Now().AddDate(0, 0, 10)))
	require.NoError(t, err)
	_, err = svc.RegisterPayment(ctx, rec.ID, models.PaymentInput{Amount: 300, PaymentDate: time.Now()})
	require.NoError(t, err)

	input := baseInput(1200, time.Now().AddDate(0, 0, 20))
	updated, err := svc.Update(ctx, rec.ID, input)
	require.NoError(t, err)
	require.Equal(t, 300.0, updated.PaidAmount)
	require.Equal(t, 900.0, updated.PendingAmount)
	require.Equal(t, models.StatusPartiallyPaid, updated.Status)
}

func TestRecurringRequiresFrequency(t *testing.T) {
	svc := newTestService()
	input := baseInput(100, time.Now().AddDate(0, 0, 5))
	input.Recurring = true

	_, err := svc.Create(context.Background(), input)
	require.ErrorIs(t, err, httpx.ErrValidation)
}
