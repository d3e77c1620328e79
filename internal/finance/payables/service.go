package payables

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

// SupplierSource resolves supplier references for hydration.
type SupplierSource interface {
	Get(ctx context.Context, id int64) (models.Supplier, error)
}

// CategorySource resolves category references for hydration.
type CategorySource interface {
	Get(ctx context.Context, id int64) (models.Category, error)
}

// BalanceAdjuster moves money on a bank account when payments go out.
type BalanceAdjuster interface {
	AdjustBalance(ctx context.Context, id int64, delta float64) error
}

// Service implements payable business rules.
type Service struct {
	repo       *Repository
	suppliers  SupplierSource
	categories CategorySource
	accounts   BalanceAdjuster
}

func NewService(repo *Repository, suppliers SupplierSource, categories CategorySource, accounts BalanceAdjuster) *Service {
	return &Service{repo: repo, suppliers: suppliers, categories: categories, accounts: accounts}
}

func (s *Service) List(ctx context.Context, f models.RecordFilter) ([]models.Payable, error) {
	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range items {
		s.hydrate(ctx, &items[i])
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id int64) (models.Payable, error) {
	if id <= 0 {
		return models.Payable{}, httpx.Invalid("invalid payable id")
	}
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Payable{}, err
	}
	s.hydrate(ctx, &p)
	return p, nil
}

func (s *Service) Create(ctx context.Context, input models.PayableInput) (models.Payable, error) {
	if strings.TrimSpace(input.Description) == "" {
		return models.Payable{}, httpx.Invalid("description is required")
	}
	if input.TotalAmount <= 0 {
		return models.Payable{}, httpx.Invalid("total amount must be greater than zero")
	}
	count := input.InstallmentCount
	if count < 1 {
		count = 1
	}
	p := models.Payable{
		Description:         strings.TrimSpace(input.Description),
		TotalAmount:         input.TotalAmount,
		IssueDate:           input.IssueDate,
		DueDate:             input.DueDate,
		InstallmentCount:    count,
		Recurring:           input.Recurring,
		RecurrenceFrequency: input.RecurrenceFrequency,
		Notes:               input.Notes,
		SupplierID:          input.SupplierID,
		CategoryID:          input.CategoryID,
		BankAccountID:       input.BankAccountID,
		PaymentMethodID:     input.PaymentMethodID,
		Installments:        buildInstallments(input.TotalAmount, count, input.DueDate),
	}
	recalc(&p, time.Now())
	p, err := s.repo.Create(ctx, p)
	if err != nil {
		return models.Payable{}, err
	}
	s.hydrate(ctx, &p)
	return p, nil
}

// Patch applies a partial update to a payable. Amount changes force a
// status recalculation.
func (s *Service) Patch(ctx context.Context, id int64, patch models.PayablePatch) (models.Payable, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return models.Payable{}, err
	}
	if patch.Description != nil {
		if strings.TrimSpace(*patch.Description) == "" {
			return models.Payable{}, httpx.Invalid("description is required")
		}
		p.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.TotalAmount != nil {
		if *patch.TotalAmount <= 0 {
			return models.Payable{}, httpx.Invalid("total amount must be greater than zero")
		}
		if *patch.TotalAmount < p.PaidAmount {
			return models.Payable{}, httpx.Invalid("total amount cannot be below the paid amount")
		}
		p.TotalAmount = *patch.TotalAmount
	}
	if patch.IssueDate != nil {
		p.IssueDate = *patch.IssueDate
	}
	if patch.DueDate != nil {
		p.DueDate = *patch.DueDate
	}
	if patch.Notes != nil {
		p.Notes = *patch.Notes
	}
	if patch.SupplierID != nil {
		p.SupplierID = patch.SupplierID
	}
	if patch.CategoryID != nil {
		p.CategoryID = patch.CategoryID
	}
	if patch.BankAccountID != nil {
		p.BankAccountID = patch.BankAccountID
	}
	if patch.PaymentMethodID != nil {
		p.PaymentMethodID = patch.PaymentMethodID
	}
	p.Supplier = nil
	p.Category = nil
	recalc(&p, time.Now())
	p, err = s.repo.Update(ctx, p)
	if err != nil {
		return models.Payable{}, err
	}
	s.hydrate(ctx, &p)
	return p, nil
}

// RegisterPayment applies a full or partial payment against a payable.
// The paid amount lowers the linked bank account balance.
func (s *Service) RegisterPayment(ctx context.Context, id int64, input models.PaymentInput) (models.Payable, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return models.Payable{}, err
	}
	if input.Amount <= 0 {
		return models.Payable{}, httpx.Invalid("payment amount must be greater than zero")
	}
	if input.Amount > p.PendingAmount+paidTolerance {
		return models.Payable{}, httpx.Invalid("payment amount exceeds pending amount")
	}
	paidAt := input.PaymentDate
	if paidAt.IsZero() {
		paidAt = time.Now()
	}
	p.PaidAmount = round2(p.PaidAmount + input.Amount)
	recalc(&p, time.Now())
	if p.Status == models.StatusPaid {
		p.PaymentDate = &paidAt
	}
	if input.PaymentMethodID != nil {
		p.PaymentMethodID = input.PaymentMethodID
	}
	accountID := p.BankAccountID
	if input.BankAccountID != nil {
		accountID = input.BankAccountID
		p.BankAccountID = input.BankAccountID
	}
	p, err = s.repo.Update(ctx, p)
	if err != nil {
		return models.Payable{}, err
	}
	if accountID != nil && s.accounts != nil {
		if err := s.accounts.AdjustBalance(ctx, *accountID, -input.Amount); err != nil && !errors.Is(err, httpx.ErrNotFound) {
			return models.Payable{}, err
		}
	}
	s.hydrate(ctx, &p)
	return p, nil
}

// Summary aggregates over the full payable set.
func (s *Service) Summary(ctx context.Context, now time.Time) (models.PayableSummary, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return models.PayableSummary{}, err
	}
	var sum models.PayableSummary
	for _, p := range items {
		if p.DueDate.Year() == now.Year() && p.DueDate.Month() == now.Month() {
			sum.TotalDue = round2(sum.TotalDue + p.TotalAmount)
		}
		sum.TotalPaid = round2(sum.TotalPaid + p.PaidAmount)
		switch p.Status {
		case models.StatusOverdue:
			sum.TotalOverdue = round2(sum.TotalOverdue + p.PendingAmount)
		case models.StatusPending, models.StatusPartiallyPaid:
			sum.TotalPending = round2(sum.TotalPending + p.PendingAmount)
		}
	}
	return sum, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return httpx.Invalid("invalid payable id")
	}
	return s.repo.Delete(ctx, id)
}

// MarkOverdue flips unpaid payables past their due date to OVERDUE.
func (s *Service) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	changed := 0
	for _, p := range items {
		before := p.Status
		recalc(&p, now)
		if p.Status != before {
			if _, err := s.repo.Update(ctx, p); err != nil {
				return changed, err
			}
			changed++
		}
	}
	return changed, nil
}

func (s *Service) hydrate(ctx context.Context, p *models.Payable) {
	if p.SupplierID != nil && s.suppliers != nil {
		if sup, err := s.suppliers.Get(ctx, *p.SupplierID); err == nil {
			p.Supplier = &sup
		}
	}
	if p.CategoryID != nil && s.categories != nil {
		if c, err := s.categories.Get(ctx, *p.CategoryID); err == nil {
			p.Category = &c
		}
	}
}
