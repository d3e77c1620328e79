package invoices

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

// Repository keeps invoices in memory.
type Repository struct {
	mu     sync.RWMutex
	items  map[int64]models.Invoice
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{items: make(map[int64]models.Invoice)}
}

// List returns invoices matching the filter, newest issue date first.
func (r *Repository) List(ctx context.Context, f models.RecordFilter) ([]models.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Invoice
	for _, inv := range r.items {
		if matches(inv, f) {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IssueDate.After(out[j].IssueDate) })
	return out, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (models.Invoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	inv, ok := r.items[id]
	if !ok {
		return models.Invoice{}, httpx.ErrNotFound
	}
	return inv, nil
}

// NextNumber reserves the next sequential invoice number.
func (r *Repository) NextNumber() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextID + 1
}

func (r *Repository) Create(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now()
	inv.ID = r.nextID
	inv.CreatedAt = now
	inv.UpdatedAt = now
	r.items[inv.ID] = inv
	return inv, nil
}

func (r *Repository) Update(ctx context.Context, inv models.Invoice) (models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[inv.ID]; !ok {
		return models.Invoice{}, httpx.ErrNotFound
	}
	inv.UpdatedAt = time.Now()
	r.items[inv.ID] = inv
	return inv, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func matches(inv models.Invoice, f models.RecordFilter) bool {
	if f.Status != "" && inv.Status != f.Status {
		return false
	}
	if f.PartyID != 0 && inv.ClientID != f.PartyID {
		return false
	}
	if f.CategoryID != 0 && (inv.CategoryID == nil || *inv.CategoryID != f.CategoryID) {
		return false
	}
	if !f.DateFrom.IsZero() && inv.IssueDate.Before(f.DateFrom) {
		return false
	}
	if !f.DateTo.IsZero() && inv.IssueDate.After(f.DateTo) {
		return false
	}
	return true
}
