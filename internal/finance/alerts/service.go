package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

// ReceivableSource lists receivables for alert generation.
type ReceivableSource interface {
	List(ctx context.Context, f models.RecordFilter) ([]models.Receivable, error)
}

// PayableSource lists payables for alert generation.
type PayableSource interface {
	List(ctx context.Context, f models.RecordFilter) ([]models.Payable, error)
}

// AccountSource lists bank accounts for the balance floor check.
type AccountSource interface {
	List(ctx context.Context) ([]models.BankAccount, error)
}

// Service manages dashboard alerts and generates them from the current
// state of receivables, payables and bank accounts.
type Service struct {
	repo        *Repository
	receivables ReceivableSource
	payables    PayableSource
	accounts    AccountSource
}

func NewService(repo *Repository, receivables ReceivableSource, payables PayableSource, accounts AccountSource) *Service {
	return &Service{repo: repo, receivables: receivables, payables: payables, accounts: accounts}
}

func (s *Service) List(ctx context.Context, unreadOnly bool) ([]models.Alert, error) {
	return s.repo.List(ctx, unreadOnly)
}

func (s *Service) UnreadCount(ctx context.Context) (models.UnreadCount, error) {
	n, err := s.repo.UnreadCount(ctx)
	return models.UnreadCount{Count: n}, err
}

func (s *Service) MarkRead(ctx context.Context, id int64) error {
	if id <= 0 {
		return httpx.Invalid("invalid alert id")
	}
	return s.repo.MarkRead(ctx, id)
}

func (s *Service) MarkAllRead(ctx context.Context) (int, error) {
	return s.repo.MarkAllRead(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return httpx.Invalid("invalid alert id")
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Config(ctx context.Context) (models.AlertConfig, error) {
	return s.repo.Config(ctx)
}

func (s *Service) PatchConfig(ctx context.Context, patch models.AlertConfigPatch) (models.AlertConfig, error) {
	cfg, err := s.repo.Config(ctx)
	if err != nil {
		return models.AlertConfig{}, err
	}
	if patch.DueSoonEnabled != nil {
		cfg.DueSoonEnabled = *patch.DueSoonEnabled
	}
	if patch.DueSoonDays != nil {
		if *patch.DueSoonDays < 1 || *patch.DueSoonDays > 90 {
			return models.AlertConfig{}, httpx.Invalid("due soon window must be between 1 and 90 days")
		}
		cfg.DueSoonDays = *patch.DueSoonDays
	}
	if patch.OverdueEnabled != nil {
		cfg.OverdueEnabled = *patch.OverdueEnabled
	}
	if patch.BalanceFloorEnabled != nil {
		cfg.BalanceFloorEnabled = *patch.BalanceFloorEnabled
	}
	if patch.BalanceFloorAmount != nil {
		cfg.BalanceFloorAmount = patch.BalanceFloorAmount
	}
	if patch.EmailEnabled != nil {
		cfg.EmailEnabled = *patch.EmailEnabled
	}
	if patch.SystemEnabled != nil {
		cfg.SystemEnabled = *patch.SystemEnabled
	}
	return s.repo.SaveConfig(ctx, cfg)
}

// Generate scans the finance data and produces alerts according to the
// configuration. Records with an open alert of the same kind are
// skipped. It returns how many alerts were created.
func (s *Service) Generate(ctx context.Context, now time.Time) (int, error) {
	cfg, err := s.repo.Config(ctx)
	if err != nil {
		return 0, err
	}
	if !cfg.SystemEnabled {
		return 0, nil
	}
	created := 0
	horizon := now.AddDate(0, 0, cfg.DueSoonDays)

	recs, err := s.receivables.List(ctx, models.RecordFilter{})
	if err != nil {
		return created, err
	}
	for _, rec := range recs {
		if rec.PendingAmount <= 0 {
			continue
		}
		switch {
		case cfg.OverdueEnabled && rec.Status == models.StatusOverdue:
			created += s.open(ctx, models.Alert{
				Kind:     models.AlertOverdue,
				Title:    "Receivable overdue",
				Message:  fmt.Sprintf("%q is overdue since %s", rec.Description, rec.DueDate.Format("2006-01-02")),
				Severity: models.SeverityCritical,
				RecordID: rec.ID,
			})
		case cfg.DueSoonEnabled && !rec.DueDate.Before(now) && !rec.DueDate.After(horizon):
			created += s.open(ctx, models.Alert{
				Kind:     models.AlertDueSoon,
				Title:    "Receivable due soon",
				Message:  fmt.Sprintf("%q is due on %s", rec.Description, rec.DueDate.Format("2006-01-02")),
				Severity: models.SeverityWarning,
				RecordID: rec.ID,
			})
		}
	}

	pays, err := s.payables.List(ctx, models.RecordFilter{})
	if err != nil {
		return created, err
	}
	for _, p := range pays {
		if p.PendingAmount <= 0 {
			continue
		}
		switch {
		case cfg.OverdueEnabled && p.Status == models.StatusOverdue:
			created += s.open(ctx, models.Alert{
				Kind:     models.AlertOverdue,
				Title:    "Payable overdue",
				Message:  fmt.Sprintf("%q is overdue since %s", p.Description, p.DueDate.Format("2006-01-02")),
				Severity: models.SeverityCritical,
				RecordID: p.ID,
			})
		case cfg.DueSoonEnabled && !p.DueDate.Before(now) && !p.DueDate.After(horizon):
			created += s.open(ctx, models.Alert{
				Kind:     models.AlertDueSoon,
				Title:    "Payable due soon",
				Message:  fmt.Sprintf("%q is due on %s", p.Description, p.DueDate.Format("2006-01-02")),
				Severity: models.SeverityWarning,
				RecordID: p.ID,
			})
		}
	}

	if cfg.BalanceFloorEnabled && cfg.BalanceFloorAmount != nil && s.accounts != nil {
		accounts, err := s.accounts.List(ctx)
		if err != nil {
			return created, err
		}
		for _, a := range accounts {
			if a.CurrentBalance < *cfg.BalanceFloorAmount {
				created += s.open(ctx, models.Alert{
					Kind:     models.AlertBalanceFloor,
					Title:    "Account balance below floor",
					Message:  fmt.Sprintf("%s %s balance is %.2f, below the %.2f floor", a.Bank, a.Number, a.CurrentBalance, *cfg.BalanceFloorAmount),
					Severity: models.SeverityWarning,
					RecordID: a.ID,
				})
			}
		}
	}
	return created, nil
}

func (s *Service) open(ctx context.Context, a models.Alert) int {
	if s.repo.HasOpen(ctx, a.Kind, a.RecordID) {
		return 0
	}
	if _, err := s.repo.Create(ctx, a); err != nil {
		return 0
	}
	return 1
}
