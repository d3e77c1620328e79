package alerts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

// Repository keeps alerts and the generator configuration in memory.
type Repository struct {
	mu     sync.RWMutex
	items  map[int64]models.Alert
	nextID int64
	config models.AlertConfig
}

func NewRepository() *Repository {
	return &Repository{
		items: make(map[int64]models.Alert),
		config: models.AlertConfig{
			DueSoonEnabled: true,
			DueSoonDays:    3,
			OverdueEnabled: true,
			SystemEnabled:  true,
		},
	}
}

// List returns alerts newest first, optionally only unread ones.
func (r *Repository) List(ctx context.Context, unreadOnly bool) ([]models.Alert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Alert
	for _, a := range r.items {
		if unreadOnly && a.Read {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *Repository) UnreadCount(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, a := range r.items {
		if !a.Read {
			n++
		}
	}
	return n, nil
}

// HasOpen reports whether an unread alert of this kind already exists
// for the record.
func (r *Repository) HasOpen(ctx context.Context, kind string, recordID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.items {
		if !a.Read && a.Kind == kind && a.RecordID == recordID {
			return true
		}
	}
	return false
}

func (r *Repository) Create(ctx context.Context, a models.Alert) (models.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = r.nextID
	a.CreatedAt = time.Now()
	r.items[a.ID] = a
	return a, nil
}

func (r *Repository) MarkRead(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return httpx.ErrNotFound
	}
	a.Read = true
	r.items[id] = a
	return nil
}

func (r *Repository) MarkAllRead(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, a := range r.items {
		if !a.Read {
			a.Read = true
			r.items[id] = a
			n++
		}
	}
	return n, nil
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

func (r *Repository) Config(ctx context.Context) (models.AlertConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.config, nil
}

func (r *Repository) SaveConfig(ctx context.Context, cfg models.AlertConfig) (models.AlertConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.config = cfg
	return cfg, nil
}
