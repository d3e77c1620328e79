package payables

import (
	"math"
	"time"

	"github.com/visionday/hub/pkg/models"
)

const paidTolerance = 0.005

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// recalc derives the pending amount and status from the paid amount and
// due date.
func recalc(p *models.Payable, now time.Time) {
	p.PendingAmount = round2(p.TotalAmount - p.PaidAmount)
	switch {
	case p.PendingAmount <= paidTolerance:
		p.PendingAmount = 0
		p.Status = models.StatusPaid
	case p.DueDate.Before(startOfDay(now)):
		p.Status = models.StatusOverdue
	case p.PaidAmount > 0:
		p.Status = models.StatusPartiallyPaid
	default:
		p.Status = models.StatusPending
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

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
