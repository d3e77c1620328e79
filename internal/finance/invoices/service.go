package invoices

import (
	"context"
	"fmt"
	"math"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

// ClientSource resolves client references for hydration.
type ClientSource interface {
	Get(ctx context.Context, id int64) (models.Client, error)
}

// Service implements invoice business rules.
type Service struct {
	repo    *Repository
	clients ClientSource
}

func NewService(repo *Repository, clients ClientSource) *Service {
	return &Service{repo: repo, clients: clients}
}

func (s *Service) List(ctx context.Context, f models.RecordFilter) ([]models.Invoice, error) {
	items, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range items {
		s.hydrate(ctx, &items[i])
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id int64) (models.Invoice, error) {
	if id <= 0 {
		return models.Invoice{}, httpx.Invalid("invalid invoice id")
	}
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.Invoice{}, err
	}
	s.hydrate(ctx, &inv)
	return inv, nil
}

// Create issues a new invoice. Item totals and the final amount are
// derived server-side, never taken from the payload.
func (s *Service) Create(ctx context.Context, input models.InvoiceInput) (models.Invoice, error) {
	if len(input.Items) == 0 {
		return models.Invoice{}, httpx.Invalid("invoice needs at least one item")
	}
	if s.clients != nil {
		if _, err := s.clients.Get(ctx, input.ClientID); err != nil {
			return models.Invoice{}, httpx.Invalid("invoice client does not exist")
		}
	}
	items, total, err := priceItems(input.Items)
	if err != nil {
		return models.Invoice{}, err
	}
	inv := models.Invoice{
		Number:          fmt.Sprintf("INV-%d-%04d", input.IssueDate.Year(), s.repo.NextNumber()),
		IssueDate:       input.IssueDate,
		DueDate:         input.DueDate,
		TotalAmount:     total,
		Discount:        input.Discount,
		Surcharge:       input.Surcharge,
		FinalAmount:     finalAmount(total, input.Discount, input.Surcharge),
		Status:          models.StatusPending,
		Notes:           input.Notes,
		ClientID:        input.ClientID,
		CategoryID:      input.CategoryID,
		BankAccountID:   input.BankAccountID,
		PaymentMethodID: input.PaymentMethodID,
		Items:           items,
	}
	if inv.FinalAmount <= 0 {
		return models.Invoice{}, httpx.Invalid("discount cannot reach or exceed the invoice total")
	}
	inv, err = s.repo.Create(ctx, inv)
	if err != nil {
		return models.Invoice{}, err
	}
	s.hydrate(ctx, &inv)
	return inv, nil
}

// Patch applies a partial update and reprices the invoice when items,
// discount or surcharge changed.
func (s *Service) Patch(ctx context.Context, id int64, patch models.InvoicePatch) (models.Invoice, error) {
	inv, err := s.Get(ctx, id)
	if err != nil {
		return models.Invoice{}, err
	}
	if inv.Status == models.StatusPaid && patch.Status == nil {
		return models.Invoice{}, httpx.Invalid("paid invoices cannot be edited")
	}
	if patch.DueDate != nil {
		inv.DueDate = *patch.DueDate
	}
	if patch.Discount != nil {
		inv.Discount = *patch.Discount
	}
	if patch.Surcharge != nil {
		inv.Surcharge = *patch.Surcharge
	}
	if patch.Status != nil {
		inv.Status = *patch.Status
	}
	if patch.Notes != nil {
		inv.Notes = *patch.Notes
	}
	if len(patch.Items) > 0 {
		items, total, err := priceItems(patch.Items)
		if err != nil {
			return models.Invoice{}, err
		}
		inv.Items = items
		inv.TotalAmount = total
	}
	inv.FinalAmount = finalAmount(inv.TotalAmount, inv.Discount, inv.Surcharge)
	if inv.FinalAmount <= 0 {
		return models.Invoice{}, httpx.Invalid("discount cannot reach or exceed the invoice total")
	}
	inv.Client = nil
	inv, err = s.repo.Update(ctx, inv)
	if err != nil {
		return models.Invoice{}, err
	}
	s.hydrate(ctx, &inv)
	return inv, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return httpx.Invalid("invalid invoice id")
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) hydrate(ctx context.Context, inv *models.Invoice) {
	if s.clients == nil {
		return
	}
	if c, err := s.clients.Get(ctx, inv.ClientID); err == nil {
		inv.Client = &c
	}
}

func priceItems(items []models.InvoiceItem) ([]models.InvoiceItem, float64, error) {
	out := make([]models.InvoiceItem, len(items))
	total := 0.0
	for i, item := range items {
		if item.Quantity <= 0 || item.UnitPrice <= 0 {
			return nil, 0, httpx.Invalid("item quantity and unit price must be greater than zero")
		}
		item.TotalAmount = round2(item.Quantity * item.UnitPrice)
		total = round2(total + item.TotalAmount)
		out[i] = item
	}
	return out, total, nil
}

func finalAmount(total, discount, surcharge float64) float64 {
	return round2(total - discount + surcharge)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
