package suppliers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

// Repository stores suppliers in memory behind a mutex.
type Repository struct {
	mu     sync.RWMutex
	items  map[int64]models.Supplier
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{items: make(map[int64]models.Supplier)}
}

func (r *Repository) List(ctx context.Context) ([]models.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Supplier, 0, len(r.items))
	for _, s := range r.items {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Repository) Search(ctx context.Context, q string) ([]models.Supplier, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Supplier
	for _, s := range r.items {
		if strings.Contains(strings.ToLower(s.Name), q) ||
			strings.Contains(strings.ToLower(s.Email), q) ||
			strings.Contains(strings.ToLower(s.TaxID), q) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (models.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.items[id]
	if !ok {
		return models.Supplier{}, httpx.ErrNotFound
	}
	return s, nil
}

func (r *Repository) Create(ctx context.Context, s models.Supplier) (models.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now()
	s.ID = r.nextID
	s.CreatedAt = now
	s.UpdatedAt = now
	r.items[s.ID] = s
	return s, nil
}

func (r *Repository) Update(ctx context.Context, s models.Supplier) (models.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[s.ID]; !ok {
		return models.Supplier{}, httpx.ErrNotFound
	}
	s.UpdatedAt = time.Now()
	r.items[s.ID] = s
	return s, nil
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
