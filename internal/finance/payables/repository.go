package payables

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

// Repository keeps payables in memory.
type Repository struct {
	mu     sync.RWMutex
	items  map[int64]models.Payable
	nextID int64
	instID int64
}

func NewRepository() *Repository {
	return &Repository{items: make(map[int64]models.Payable)}
}

func (r *Repository) List(ctx context.Context, f models.RecordFilter) ([]models.Payable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Payable
	for _, p := range r.items {
		if matches(p, f) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

func (r *Repository) ListAll(ctx context.Context) ([]models.Payable, error) {
	return r.List(ctx, models.RecordFilter{})
}

func (r *Repository) Get(ctx context.Context, id int64) (models.Payable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return models.Payable{}, httpx.ErrNotFound
	}
	return p, nil
}

func (r *Repository) Create(ctx context.Context, p models.Payable) (models.Payable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now()
	p.ID = r.nextID
	p.CreatedAt = now
	p.UpdatedAt = now
	for i := range p.Installments {
		r.instID++
		p.Installments[i].ID = r.instID
	}
	r.items[p.ID] = p
	return p, nil
}

func (r *Repository) Update(ctx context.Context, p models.Payable) (models.Payable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return models.Payable{}, httpx.ErrNotFound
	}
	for i := range p.Installments {
		if p.Installments[i].ID == 0 {
			r.instID++
			p.Installments[i].ID = r.instID
		}
	}
	p.UpdatedAt = time.Now()
	r.items[p.ID] = p
	return p, nil
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

func matches(p models.Payable, f models.RecordFilter) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.PartyID != 0 && (p.SupplierID == nil || *p.SupplierID != f.PartyID) {
		return false
	}
	if f.CategoryID != 0 && (p.CategoryID == nil || *p.CategoryID != f.CategoryID) {
		return false
	}
	if !f.DateFrom.IsZero() && p.DueDate.Before(f.DateFrom) {
		return false
	}
	if !f.DateTo.IsZero() && p.DueDate.After(f.DateTo) {
		return false
	}
	return true
}
