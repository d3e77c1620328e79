package clients

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

// Repository stores clients in memory behind a mutex. Durable persistence is
// the remote API's concern; this implements the bundled backend contract.
type Repository struct {
	mu     sync.RWMutex
	items  map[int64]models.Client
	nextID int64
}

// NewRepository constructs an empty Repository.
func NewRepository() *Repository {
	return &Repository{items: make(map[int64]models.Client)}
}

// List returns clients sorted by name. Inactive clients are included only
// when includeInactive is set.
func (r *Repository) List(ctx context.Context, includeInactive bool) ([]models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Client, 0, len(r.items))
	for _, c := range r.items {
		if !includeInactive && !c.Active {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Search returns active clients whose name, email or tax id contains q.
func (r *Repository) Search(ctx context.Context, q string) ([]models.Client, error) {
	q = strings.ToLower(strings.TrimSpace(q))
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Client
	for _, c := range r.items {
		if !c.Active {
			continue
		}
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Email), q) ||
			strings.Contains(strings.ToLower(c.TaxID), q) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Get returns a client by id.
func (r *Repository) Get(ctx context.Context, id int64) (models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return models.Client{}, httpx.ErrNotFound
	}
	return c, nil
}

// Create inserts a client and assigns its id and timestamps.
func (r *Repository) Create(ctx context.Context, c models.Client) (models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now()
	c.ID = r.nextID
	c.CreatedAt = now
	c.UpdatedAt = now
	r.items[c.ID] = c
	return c, nil
}

// Update replaces a stored client, bumping its updated timestamp.
func (r *Repository) Update(ctx context.Context, c models.Client) (models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		return models.Client{}, httpx.ErrNotFound
	}
	c.UpdatedAt = time.Now()
	r.items[c.ID] = c
	return c, nil
}

// Delete removes a client.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.items, id)
	return nil
}
