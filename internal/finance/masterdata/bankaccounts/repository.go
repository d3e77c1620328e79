package bankaccounts

import (
	"context"
	"sort"
	"sync"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

// Repository keeps bank accounts in memory.
type Repository struct {
	mu     sync.RWMutex
	items  map[int64]models.BankAccount
	nextID int64
}

func NewRepository() *Repository {
	return &Repository{items: make(map[int64]models.BankAccount)}
}

// SeedDefaults loads one primary checking account so payments have a
// destination out of the box.
func (r *Repository) SeedDefaults() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.items[r.nextID] = models.BankAccount{
		ID:             r.nextID,
		Bank:           "Banco do Brasil",
		Branch:         "1234-5",
		Number:         "67890-1",
		Kind:           models.AccountChecking,
		InitialBalance: 10000,
		CurrentBalance: 10000,
		Primary:        true,
	}
}

func (r *Repository) List(ctx context.Context) ([]models.BankAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.BankAccount, 0, len(r.items))
	for _, a := range r.items {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repository) Get(ctx context.Context, id int64) (models.BankAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	if !ok {
		return models.BankAccount{}, httpx.ErrNotFound
	}
	return a, nil
}

// Primary returns the account flagged as primary.
func (r *Repository) Primary(ctx context.Context) (models.BankAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.items {
		if a.Primary {
			return a, nil
		}
	}
	return models.BankAccount{}, httpx.ErrNotFound
}

// Create inserts an account. Marking it primary clears the flag on
// every other account.
func (r *Repository) Create(ctx context.Context, a models.BankAccount) (models.BankAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = r.nextID
	if a.Primary {
		r.demoteOthers(a.ID)
	}
	r.items[a.ID] = a
	return a, nil
}

func (r *Repository) Update(ctx context.Context, a models.BankAccount) (models.BankAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[a.ID]; !ok {
		return models.BankAccount{}, httpx.ErrNotFound
	}
	if a.Primary {
		r.demoteOthers(a.ID)
	}
	r.items[a.ID] = a
	return a, nil
}

// AdjustBalance shifts the current balance by delta. Payments received
// add, payments made subtract.
func (r *Repository) AdjustBalance(ctx context.Context, id int64, delta float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return httpx.ErrNotFound
	}
	a.CurrentBalance += delta
	r.items[id] = a
	return nil
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

func (r *Repository) demoteOthers(keep int64) {
	for id, other := range r.items {
		if id != keep && other.Primary {
			other.Primary = false
			r.items[id] = other
		}
	}
}
