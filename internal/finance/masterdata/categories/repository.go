package categories

import (
	"context"
	"sort"
	"sync"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

// Repository keeps categories in memory.
type Repository struct {
	mu     sync.RWMutex
	items  map[int64]models.Category
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{items: make(map[int64]models.Category)}
}

// SeedDefaults loads a starter set of revenue and expense categories.
func (r *Repository) SeedDefaults() {
	defaults := []models.Category{
		{Name: "Sales", Kind: models.CategoryRevenue, Color: "#22c55e", Icon: "trending-up"},
		{Name: "Services", Kind: models.CategoryRevenue, Color: "#3b82f6", Icon: "briefcase"},
		{Name: "Subscriptions", Kind: models.CategoryRevenue, Color: "#8b5cf6", Icon: "repeat"},
		{Name: "Rent", Kind: models.CategoryExpense, Color: "#ef4444", Icon: "home"},
		{Name: "Payroll", Kind: models.CategoryExpense, Color: "#f97316", Icon: "users"},
		{Name: "Utilities", Kind: models.CategoryExpense, Color: "#eab308", Icon: "zap"},
		{Name: "Taxes", Kind: models.CategoryExpense, Color: "#64748b", Icon: "landmark"},
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range defaults {
		r.nextID++
		c.ID = r.nextID
		r.items[c.ID] = c
	}
}

// List returns categories, optionally filtered by kind.
func (r *Repository) List(ctx context.Context, kind models.CategoryKind) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Category, 0, len(r.items))
	for _, c := range r.items {
		if kind != "" && c.Kind != kind {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return models.Category{}, httpx.ErrNotFound
	}
	return c, nil
}

func (r *Repository) Create(ctx context.Context, c models.Category) (models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	r.items[c.ID] = c
	return c, nil
}

func (r *Repository) Update(ctx context.Context, c models.Category) (models.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		return models.Category{}, httpx.ErrNotFound
	}
	r.items[c.ID] = c
	return c, nil
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
