package categories

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

func (s *Service) List(ctx context.Context, kind models.CategoryKind) ([]models.Category, error) {
	if kind != "" && kind != models.CategoryRevenue && kind != models.CategoryExpense {
		return nil, httpx.Invalid("invalid category kind")
	}
	return s.repo.List(ctx, kind)
}

func (s *Service) Get(ctx context.Context, id int64) (models.Category, error) {
	if id <= 0 {
		return models.Category{}, httpx.Invalid("invalid category id")
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, input models.CategoryInput) (models.Category, error) {
	c := models.Category{
		Name:  strings.TrimSpace(input.Name),
		Kind:  input.Kind,
		Color: input.Color,
		Icon:  input.Icon,
		Notes: input.Notes,
	}
	return s.repo.Create(ctx, c)
}

// Patch updates a category in place. Kind never changes after creation,
// records already posted against it would flip sides in the summary.
func (s *Service) Patch(ctx context.Context, id int64, input models.CategoryInput) (models.Category, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return models.Category{}, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		c.Name = name
	}
	if input.Color != "" {
		c.Color = input.Color
	}
	if input.Icon != "" {
		c.Icon = input.Icon
	}
	if input.Notes != "" {
		c.Notes = input.Notes
	}
	return s.repo.Update(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return httpx.Invalid("invalid category id")
	}
	return s.repo.Delete(ctx, id)
}
