package suppliers

import (
	"context"
	"strings"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]models.Supplier, error) {
	return s.repo.List(ctx)
}

func (s *Service) Search(ctx context.Context, q string) ([]models.Supplier, error) {
	return s.repo.Search(ctx, q)
}

func (s *Service) Get(ctx context.Context, id int64) (models.Supplier, error) {
	if id <= 0 {
		return models.Supplier{}, httpx.Invalid("invalid supplier id")
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, input models.SupplierInput) (models.Supplier, error) {
	if strings.TrimSpace(input.Name) == "" {
		return models.Supplier{}, httpx.Invalid("supplier name is required")
	}
	sup := models.Supplier{
		Name:    strings.TrimSpace(input.Name),
		TaxID:   input.TaxID,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
		Notes:   input.Notes,
		Active:  true,
	}
	if input.Active != nil {
		sup.Active = *input.Active
	}
	return s.repo.Create(ctx, sup)
}

func (s *Service) Patch(ctx context.Context, id int64, input models.SupplierInput) (models.Supplier, error) {
	sup, err := s.Get(ctx, id)
	if err != nil {
		return models.Supplier{}, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		sup.Name = name
	}
	if input.TaxID != "" {
		sup.TaxID = input.TaxID
	}
	if input.Email != "" {
		sup.Email = input.Email
	}
	if input.Phone != "" {
		sup.Phone = input.Phone
	}
	if input.Address != "" {
		sup.Address = input.Address
	}
	if input.Notes != "" {
		sup.Notes = input.Notes
	}
	if input.Active != nil {
		sup.Active = *input.Active
	}
	return s.repo.Update(ctx, sup)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return httpx.Invalid("invalid supplier id")
	}
	return s.repo.Delete(ctx, id)
}
