package receivables

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

// ClientSource resolves client references for hydration.
type ClientSource interface {
	Get(ctx context.Context, id int64) (models.Client, error)
}

// CategorySource resolves category references for hydration.
type CategorySource interface {
	Get(ctx context.Context, id int64) (models.Category, error)
}

// BalanceAdjuster moves money on a bank account when payments land.
type BalanceAdjuster interface {
	AdjustBalance(ctx context.Context, id int64, delta float64) error
}

// Service implements receivable business rules.
type Service struct {
	repo       *Repository
	clients    ClientSource
	categories CategorySource
	accounts   BalanceAdjuster
}

func NewService(repo *Repository, clients ClientSource, categories CategorySource, accounts BalanceAdjuster) *Service {
	return &Service{repo: repo, clients: clients, categories: categories, accounts: accounts}
}

// List returns receivables matching the filter with client and category
// references resolved.
func (s *Service) List(ctx context.Context, f models.RecordFilter) ([]models.Receivable, error) {
	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range items {
		s.hydrate(ctx, &items[i])
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id int64) (models.Receivable, error) {
	if id <= 0 {
		return models.Receivable{}, httpx.Invalid("invalid receivable id")
	}
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Receivable{}, err
	}
	s.hydrate(ctx, &rec)
	return rec, nil
}

// Create registers a new receivable. Multi-installment records get their
// installment schedule generated up front.
func (s *Service) Create(ctx context.Context, input models.ReceivableInput) (models.Receivable, error) {
	if err := validateInput(input); err != nil {
		return models.Receivable{}, err
	}
	rec := fromInput(input)
	recalc(&rec, time.Now())
	rec, err := s.repo.Create(ctx, rec)
	if err != nil {
		return models.Receivable{}, err
	}
	s.hydrate(ctx, &rec)
	return rec, nil
}

// Update fully replaces the editable fields of a receivable. Payments
// already registered are kept; the installment schedule is rebuilt only
// while nothing has been paid.
func (s *Service) Update(ctx context.Context, id int64, input models.ReceivableInput) (models.Receivable, error) {
	if err := validateInput(input); err != nil {
		return models.Receivable{}, err
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return models.Receivable{}, err
	}
	rec := fromInput(input)
	rec.ID = current.ID
	rec.PaidAmount = current.PaidAmount
	rec.PaymentDate = current.PaymentDate
	rec.CreatedAt = current.CreatedAt
	if current.PaidAmount > 0 {
		rec.Installments = current.Installments
		rec.InstallmentCount = current.InstallmentCount
	}
	recalc(&rec, time.Now())
	rec, err = s.repo.Update(ctx, rec)
	if err != nil {
		return models.Receivable{}, err
	}
	s.hydrate(ctx, &rec)
	return rec, nil
}

// RegisterPayment applies a full or partial payment. The amount must be
// positive and cannot exceed the pending balance.
func (s *Service) RegisterPayment(ctx context.Context, id int64, input models.PaymentInput) (models.Receivable, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return models.Receivable{}, err
	}
	if input.Amount <= 0 {
		return models.Receivable{}, httpx.Invalid("payment amount must be greater than zero")
	}
	if input.Amount > rec.PendingAmount+paidTolerance {
		return models.Receivable{}, httpx.Invalid("payment amount exceeds pending amount")
	}
	paidAt := input.PaymentDate
	if paidAt.IsZero() {
		paidAt = time.Now()
	}
	rec.PaidAmount = round2(rec.PaidAmount + input.Amount)
	settleInstallments(&rec, input.Amount, paidAt)
	recalc(&rec, time.Now())
	if rec.Status == models.StatusPaid {
		rec.PaymentDate = &paidAt
	}
	if input.PaymentMethodID != nil {
		rec.PaymentMethodID = input.PaymentMethodID
	}
	accountID := rec.BankAccountID
	if input.BankAccountID != nil {
		accountID = input.BankAccountID
		rec.BankAccountID = input.BankAccountID
	}
	rec, err = s.repo.Update(ctx, rec)
	if err != nil {
		return models.Receivable{}, err
	}
	if accountID != nil && s.accounts != nil {
		if err := s.accounts.AdjustBalance(ctx, *accountID, input.Amount); err != nil && !errors.Is(err, httpx.ErrNotFound) {
			return models.Receivable{}, err
		}
	}
	s.hydrate(ctx, &rec)
	return rec, nil
}

// Summary aggregates over the full receivable set regardless of any
// active list filter.
func (s *Service) Summary(ctx context.Context, now time.Time) (models.ReceivableSummary, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return models.ReceivableSummary{}, err
	}
	var sum models.ReceivableSummary
	today := startOfDay(now)
	for _, rec := range items {
		if rec.DueDate.Year() == now.Year() && rec.DueDate.Month() == now.Month() {
			sum.TotalMonth = round2(sum.TotalMonth + rec.TotalAmount)
		}
		sum.TotalPaid = round2(sum.TotalPaid + rec.PaidAmount)
		switch rec.Status {
		case models.StatusPaid:
			sum.PaidCount++
		case models.StatusOverdue:
			sum.TotalOverdue = round2(sum.TotalOverdue + rec.PendingAmount)
			sum.OverdueCount++
		default:
			sum.TotalPending = round2(sum.TotalPending + rec.PendingAmount)
			sum.PendingCount++
		}
		if rec.PendingAmount > 0 && !rec.DueDate.Before(today) {
			sum.Upcoming = append(sum.Upcoming, rec)
		}
	}
	sort.Slice(sum.Upcoming, func(i, j int) bool {
		return sum.Upcoming[i].DueDate.Before(sum.Upcoming[j].DueDate)
	})
	if len(sum.Upcoming) > 5 {
		sum.Upcoming = sum.Upcoming[:5]
	}
	return sum, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return httpx.Invalid("invalid receivable id")
	}
	return s.repo.Delete(ctx, id)
}

// MarkOverdue flips unpaid receivables past their due date to OVERDUE.
// It returns how many records changed status.
func (s *Service) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	changed := 0
	for _, rec := range items {
		before := rec.Status
		recalc(&rec, now)
		if rec.Status != before {
			if _, err := s.repo.Update(ctx, rec); err != nil {
				return changed, err
			}
			changed++
		}
	}
	return changed, nil
}

// RunRecurrence spawns the next occurrence of each recurring series
// whose latest record is already due. It returns how many records were
// created.
func (s *Service) RunRecurrence(ctx context.Context, now time.Time) (int, error) {
	items, err := s.repo.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	latest := map[string]models.Receivable{}
	for _, rec := range items {
		if !rec.Recurring {
			continue
		}
		key := seriesKey(rec)
		if cur, ok := latest[key]; !ok || rec.DueDate.After(cur.DueDate) {
			latest[key] = rec
		}
	}
	created := 0
	for _, rec := range latest {
		if rec.DueDate.After(now) {
			continue
		}
		next := rec
		next.ID = 0
		next.PaidAmount = 0
		next.PaymentDate = nil
		next.Installments = nil
		next.InstallmentCount = 1
		next.IssueDate = now
		next.DueDate = nextOccurrence(rec.RecurrenceFrequency, rec.DueDate, rec.RecurrenceDueDay)
		recalc(&next, now)
		if _, err := s.repo.Create(ctx, next); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *Service) hydrate(ctx context.Context, rec *models.Receivable) {
	if rec.ClientID != nil && s.clients != nil {
		if c, err := s.clients.Get(ctx, *rec.ClientID); err == nil {
			rec.Client = &c
		}
	}
	if rec.CategoryID != nil && s.categories != nil {
		if c, err := s.categories.Get(ctx, *rec.CategoryID); err == nil {
			rec.Category = &c
		}
	}
}

func validateInput(input models.ReceivableInput) error {
	if strings.TrimSpace(input.Description) == "" {
		return httpx.Invalid("description is required")
	}
	if input.TotalAmount <= 0 {
		return httpx.Invalid("total amount must be greater than zero")
	}
	if input.Recurring && input.RecurrenceFrequency == "" {
		return httpx.Invalid("recurrence frequency is required for recurring records")
	}
	return nil
}

func fromInput(input models.ReceivableInput) models.Receivable {
	count := input.InstallmentCount
	if count < 1 {
		count = 1
	}
	return models.Receivable{
		Kind:                input.Kind,
		Description:         strings.TrimSpace(input.Description),
		TotalAmount:         input.TotalAmount,
		IssueDate:           input.IssueDate,
		DueDate:             input.DueDate,
		InstallmentCount:    count,
		DocumentNumber:      input.DocumentNumber,
		Recurring:           input.Recurring,
		RecurrenceFrequency: input.RecurrenceFrequency,
		RecurrenceDueDay:    input.RecurrenceDueDay,
		Notes:               input.Notes,
		ClientID:            input.ClientID,
		CategoryID:          input.CategoryID,
		BankAccountID:       input.BankAccountID,
		PaymentMethodID:     input.PaymentMethodID,
		Installments:        buildInstallments(input.TotalAmount, count, input.DueDate),
	}
}

func seriesKey(rec models.Receivable) string {
	key := strings.ToLower(strings.TrimSpace(rec.Description))
	if rec.ClientID != nil {
		key += "|" + strconv.FormatInt(*rec.ClientID, 10)
	}
	return key
}
