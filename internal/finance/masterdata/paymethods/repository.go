package paymethods

import (
	"context"
	"sort"
	"sync"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

// Repository keeps payment methods in memory.
type Repository struct {
	mu     sync.RWMutex
	items  map[int64]models.PaymentMethod
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{items: make(map[int64]models.PaymentMethod)}
}

// SeedDefaults loads the common settlement options.
func (r *Repository) SeedDefaults() {
	defaults := []models.PaymentMethod{
		{Name: "Pix", Kind: models.PaymentUpfront, Active: true},
		{Name: "Cash", Kind: models.PaymentUpfront, Active: true},
		{Name: "Bank transfer", Kind: models.PaymentUpfront, Active: true},
		{Name: "Credit card", Kind: models.PaymentInstallment, Active: true},
		{Name: "Boleto", Kind: models.PaymentInstallment, Active: true},
		{Name: "Direct debit", Kind: models.PaymentRecurring, Active: true},
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range defaults {
		r.nextID++
		m.ID = r.nextID
		r.items[m.ID] = m
	}
}

func (r *Repository) List(ctx context.Context) ([]models.PaymentMethod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.PaymentMethod, 0, len(r.items))
	for _, m := range r.items {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (models.PaymentMethod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.items[id]
	if !ok {
		return models.PaymentMethod{}, httpx.ErrNotFound
	}
	return m, nil
}

func (r *Repository) Create(ctx context.Context, m models.PaymentMethod) (models.PaymentMethod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	m.ID = r.nextID
	r.items[m.ID] = m
	return m, nil
}

func (r *Repository) Update(ctx context.Context, m models.PaymentMethod) (models.PaymentMethod, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[m.ID]; !ok {
		return models.PaymentMethod{}, httpx.ErrNotFound
	}
	r.items[m.ID] = m
	return m, nil
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
