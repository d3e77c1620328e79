package bankaccounts

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

func (s *Service) List(ctx context.Context) ([]models.BankAccount, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (models.BankAccount, error) {
	if id <= 0 {
		return models.BankAccount{}, httpx.Invalid("invalid bank account id")
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Primary(ctx context.Context) (models.BankAccount, error) {
	return s.repo.Primary(ctx)
}

func (s *Service) Create(ctx context.Context, input models.BankAccountInput) (models.BankAccount, error) {
	a := models.BankAccount{
		Bank:           strings.TrimSpace(input.Bank),
		Branch:         input.Branch,
		Number:         input.Number,
		Kind:           input.Kind,
		InitialBalance: input.InitialBalance,
		CurrentBalance: input.InitialBalance,
		PixKey:         input.PixKey,
		Primary:        input.Primary,
	}
	return s.repo.Create(ctx, a)
}

// Patch applies a partial update. The initial balance is immutable once
// set, the current balance only moves through payments.
func (s *Service) Patch(ctx context.Context, id int64, input models.BankAccountInput) (models.BankAccount, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return models.BankAccount{}, err
	}
	if bank := strings.TrimSpace(input.Bank); bank != "" {
		a.Bank = bank
	}
	if input.Branch != "" {
		a.Branch = input.Branch
	}
	if input.Number != "" {
		a.Number = input.Number
	}
	if input.Kind != "" {
		a.Kind = input.Kind
	}
	if input.PixKey != "" {
		a.PixKey = input.PixKey
	}
	if input.Primary {
		a.Primary = true
	}
	return s.repo.Update(ctx, a)
}

func (s *Service) AdjustBalance(ctx context.Context, id int64, delta float64) error {
	return s.repo.AdjustBalance(ctx, id, delta)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return httpx.Invalid("invalid bank account id")
	}
	return s.repo.Delete(ctx, id)
}
