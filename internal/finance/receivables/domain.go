package receivables

import (
	"math"
	"time"

	"github.com/visionday/hub/pkg/models"
)

// paidTolerance absorbs float drift when comparing paid against total.
const paidTolerance = 0.005

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// recalc derives the pending amount and status from the paid amount and
// due date. The pending amount is always total minus paid.
func recalc(rec *models.Receivable, now time.Time) {
	rec.PendingAmount = round2(rec.TotalAmount - rec.PaidAmount)
	switch {
	case rec.PendingAmount <= paidTolerance:
		rec.PendingAmount = 0
		rec.Status = models.StatusPaid
	case rec.DueDate.Before(startOfDay(now)):
		rec.Status = models.StatusOverdue
	case rec.PaidAmount > 0:
		rec.Status = models.StatusPartiallyPaid
	default:
		rec.Status = models.StatusPending
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// buildInstallments splits the total evenly across n parts due one month
// apart. Rounding drift lands on the last installment.
func buildInstallments(total float64, n int, firstDue time.Time) []models.Installment {
	if n <= 1 {
		return nil
	}
	each := round2(total / float64(n))
	out := make([]models.Installment, n)
	running := 0.0
	for i := 0; i < n; i++ {
		amount := each
		if i == n-1 {
			amount = round2(total - running)
		}
		running = round2(running + amount)
		out[i] = models.Installment{
			Number:  i + 1,
			Amount:  amount,
			DueDate: firstDue.AddDate(0, i, 0),
			Status:  models.StatusPending,
		}
	}
	return out
}

// settleInstallments allocates a payment across unpaid installments in
// order, marking each one paid once fully covered.
func settleInstallments(rec *models.Receivable, amount float64, paidAt time.Time) {
	remaining := amount
	for i := range rec.Installments {
		inst := &rec.Installments[i]
		if inst.Status == models.StatusPaid || remaining <= paidTolerance {
			continue
		}
		if remaining+paidTolerance >= inst.Amount {
			remaining = round2(remaining - inst.Amount)
			inst.Status = models.StatusPaid
			t := paidAt
			inst.PaymentDate = &t
		} else {
			inst.Status = models.StatusPartiallyPaid
			remaining = 0
		}
	}
}

// nextOccurrence computes the due date of the next recurring record.
// Monthly and yearly recurrences clamp to dueDay when it is set.
func nextOccurrence(freq string, from time.Time, dueDay int) time.Time {
	switch freq {
	case "WEEKLY":
		return from.AddDate(0, 0, 7)
	case "YEARLY":
		return from.AddDate(1, 0, 0)
	default:
		next := from.AddDate(0, 1, 0)
		if dueDay >= 1 && dueDay <= 28 {
			next = time.Date(next.Year(), next.Month(), dueDay, 0, 0, 0, 0, next.Location())
		}
		return next
	}
}
