package bankaccounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

func TestSeedDefaultsCreatesPrimaryAccount(t *testing.T) {
	repo := NewRepository()
	repo.SeedDefaults()
	svc := NewService(repo)

	primary, err := svc.Primary(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Banco do Brasil", primary.Bank)
	require.True(t, primary.Primary)
	require.Equal(t, primary.InitialBalance, primary.CurrentBalance)
}

func TestPromotingAnAccountDemotesTheRest(t *testing.T) {
	repo := NewRepository()
	repo.SeedDefaults()
	svc := NewService(repo)
	ctx := context.Background()

	second, err := svc.Create(ctx, models.BankAccountInput{Bank: "Itau", Number: "4411-2", Kind: "CHECKING", InitialBalance: 2500})
	require.NoError(t, err)
	require.False(t, second.Primary)

	_, err = svc.Patch(ctx, second.ID, models.BankAccountInput{Primary: true})
	require.NoError(t, err)

	primary, err := svc.Primary(ctx)
	require.NoError(t, err)
	require.Equal(t, second.ID, primary.ID)

	// The old primary lost the flag, there is never more than one.
	accounts, err := svc.List(ctx)
	require.NoError(t, err)
	primaries := 0
	for _, a := range accounts {
		if a.Primary {
			primaries++
		}
	}
	require.Equal(t, 1, primaries)
}

func TestAdjustBalanceMovesCurrentOnly(t *testing.T) {
	svc := NewService(NewRepository())
	ctx := context.Background()

	a, err := svc.Create(ctx, models.BankAccountInput{Bank: "Nubank", Number: "777", Kind: "CHECKING", InitialBalance: 1000})
	require.NoError(t, err)

	require.NoError(t, svc.AdjustBalance(ctx, a.ID, 250))
	require.NoError(t, svc.AdjustBalance(ctx, a.ID, -100))

	got, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, 1150.0, got.CurrentBalance)
	require.Equal(t, 1000.0, got.InitialBalance)
}

func TestPatchKeepsInitialBalance(t *testing.T) {
	svc := NewService(NewRepository())
	ctx := context.Background()

	a, err := svc.Create(ctx, models.BankAccountInput{Bank: "Caixa", Number: "123", Kind: "SAVINGS", InitialBalance: 500})
	require.NoError(t, err)

	patched, err := svc.Patch(ctx, a.ID, models.BankAccountInput{Bank: "Caixa Economica", InitialBalance: 9999})
	require.NoError(t, err)
	require.Equal(t, "Caixa Economica", patched.Bank)
	require.Equal(t, 500.0, patched.InitialBalance)
}

func TestPrimaryMissing(t *testing.T) {
	svc := NewService(NewRepository())

	_, err := svc.Primary(context.Background())
	require.ErrorIs(t, err, httpx.ErrNotFound)
}
