package paymethods

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

func (s *Service) List(ctx context.Context) ([]models.PaymentMethod, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (models.PaymentMethod, error) {
	if id <= 0 {
		return models.PaymentMethod{}, httpx.Invalid("invalid payment method id")
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, input models.PaymentMethodInput) (models.PaymentMethod, error) {
	m := models.PaymentMethod{
		Name:   strings.TrimSpace(input.Name),
		Kind:   input.Kind,
		Active: input.Active,
	}
	return s.repo.Create(ctx, m)
}

func (s *Service) Patch(ctx context.Context, id int64, input models.PaymentMethodInput) (models.PaymentMethod, error) {
	m, err := s.Get(ctx, id)
	if err != nil {
		return models.PaymentMethod{}, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		m.Name = name
	}
	if input.Kind != "" {
		m.Kind = input.Kind
	}
	m.Active = input.Active
	return s.repo.Update(ctx, m)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return httpx.Invalid("invalid payment method id")
	}
	return s.repo.Delete(ctx, id)
}
