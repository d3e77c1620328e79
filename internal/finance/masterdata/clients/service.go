package clients

import (
	"context"
	"strings"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

// Service handles client business rules.
type Service struct {
	repo *Repository
}

// NewService constructs a Service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// List returns clients, hiding inactive ones unless asked.
func (s *Service) List(ctx context.Context, includeInactive bool) ([]models.Client, error) {
	return s.repo.List(ctx, includeInactive)
}

// Search finds active clients matching q.
func (s *Service) Search(ctx context.Context, q string) ([]models.Client, error) {
	return s.repo.Search(ctx, q)
}

// Get returns a client by id.
func (s *Service) Get(ctx context.Context, id int64) (models.Client, error) {
	if id <= 0 {
		return models.Client{}, httpx.Invalid("invalid client id")
	}
	return s.repo.Get(ctx, id)
}

// Create registers a new client. New clients are active unless the input
// says otherwise.
func (s *Service) Create(ctx context.Context, input models.ClientInput) (models.Client, error) {
	if strings.TrimSpace(input.Name) == "" {
		return models.Client{}, httpx.Invalid("client name is required")
	}
	c := models.Client{
		Name:    strings.TrimSpace(input.Name),
		TaxID:   input.TaxID,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
		Notes:   input.Notes,
		Active:  true,
	}
	if input.Active != nil {
		c.Active = *input.Active
	}
	return s.repo.Create(ctx, c)
}

// Patch applies a partial update to a client. Deactivation happens here
// rather than through delete, so history stays linked.
func (s *Service) Patch(ctx context.Context, id int64, input models.ClientInput) (models.Client, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return models.Client{}, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		c.Name = name
	}
	if input.TaxID != "" {
		c.TaxID = input.TaxID
	}
	if input.Email != "" {
		c.Email = input.Email
	}
	if input.Phone != "" {
		c.Phone = input.Phone
	}
	if input.Address != "" {
		c.Address = input.Address
	}
	if input.Notes != "" {
		c.Notes = input.Notes
	}
	if input.Active != nil {
		c.Active = *input.Active
	}
	return s.repo.Update(ctx, c)
}

// Delete removes a client permanently.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return httpx.Invalid("invalid client id")
	}
	return s.repo.Delete(ctx, id)
}
