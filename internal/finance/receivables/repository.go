package receivables

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

// Repository keeps receivables in memory.
type Repository struct {
	mu     sync.RWMutex
	items  map[int64]models.Receivable
	nextID int64
	instID int64
}

func NewRepository() *Repository {
	return &Repository{items: make(map[int64]models.Receivable)}
}

// List returns receivables matching the filter, oldest due first.
func (r *Repository) List(ctx context.Context, f models.RecordFilter) ([]models.Receivable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Receivable
	for _, rec := range r.items {
		if matches(rec, f) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

// ListAll returns every receivable without filtering.
func (r *Repository) ListAll(ctx context.Context) ([]models.Receivable, error) {
	return r.List(ctx, models.RecordFilter{})
}

func (r *Repository) Get(ctx context.Context, id int64) (models.Receivable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.items[id]
	if !ok {
		return models.Receivable{}, httpx.ErrNotFound
	}
	return rec, nil
}

func (r *Repository) Create(ctx context.Context, rec models.Receivable) (models.Receivable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now()
	rec.ID = r.nextID
	rec.CreatedAt = now
	rec.UpdatedAt = now
	for i := range rec.Installments {
		r.instID++
		rec.Installments[i].ID = r.instID
	}
	r.items[rec.ID] = rec
	return rec, nil
}

func (r *Repository) Update(ctx context.Context, rec models.Receivable) (models.Receivable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[rec.ID]; !ok {
		return models.Receivable{}, httpx.ErrNotFound
	}
	for i := range rec.Installments {
		if rec.Installments[i].ID == 0 {
			r.instID++
			rec.Installments[i].ID = r.instID
		}
	}
	rec.UpdatedAt = time.Now()
	r.items[rec.ID] = rec
	return rec, nil
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

func matches(rec models.Receivable, f models.RecordFilter) bool {
	if f.Status != "" && rec.Status != f.Status {
		return false
	}
	if f.PartyID != 0 && (rec.ClientID == nil || *rec.ClientID != f.PartyID) {
		return false
	}
	if f.CategoryID != 0 && (rec.CategoryID == nil || *rec.CategoryID != f.CategoryID) {
		return false
	}
	if !f.DateFrom.IsZero() && rec.DueDate.Before(f.DateFrom) {
		return false
	}
	if !f.DateTo.IsZero() && rec.DueDate.After(f.DateTo) {
		return false
	}
	return true
}
