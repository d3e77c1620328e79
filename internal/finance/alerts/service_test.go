package alerts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/visionday/hub/pkg/models"
)

type fakeReceivables struct{ items []models.Receivable }

func (f fakeReceivables) List(ctx context.Context, _ models.RecordFilter) ([]models.Receivable, error) {
	return f.items, nil
}

type fakePayables struct{ items []models.Payable }

func (f fakePayables) List(ctx context.Context, _ models.RecordFilter) ([]models.Payable, error) {
	return f.items, nil
}

type fakeAccounts struct{ items []models.BankAccount }

func (f fakeAccounts) List(ctx context.Context) ([]models.BankAccount, error) {
	return f.items, nil
}

func TestGenerateDueSoonAndOverdue(t *testing.T) {
	now := time.Now()
	recs := fakeReceivables{items: []models.Receivable{
		{ID: 1, Description: "Due tomorrow", DueDate: now.AddDate(0, 0, 1), PendingAmount: 100, Status: models.StatusPending},
		{ID: 2, Description: "Long overdue", DueDate: now.AddDate(0, 0, -5), PendingAmount: 50, Status: models.StatusOverdue},
		{ID: 3, Description: "Settled", DueDate: now.AddDate(0, 0, 1), PendingAmount: 0, Status: models.StatusPaid},
	}}
	pays := fakePayables{items: []models.Payable{
		{ID: 9, Description: "Rent", DueDate: now.AddDate(0, 0, 2), PendingAmount: 900, Status: models.StatusPending},
	}}
	svc := NewService(NewRepository(), recs, pays, fakeAccounts{})

	created, err := svc.Generate(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, 3, created)

	items, err := svc.List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, items, 3)

	kinds := map[string]int{}
	for _, a := range items {
		kinds[a.Kind]++
		require.False(t, a.Read)
	}
	require.Equal(t, 2, kinds[models.AlertDueSoon])
	require.Equal(t, 1, kinds[models.AlertOverdue])
}

func TestGenerateDeduplicatesOpenAlerts(t *testing.T) {
	now := time.Now()
	recs := fakeReceivables{items: []models.Receivable{
		{ID: 1, Description: "Overdue", DueDate: now.AddDate(0, 0, -1), PendingAmount: 10, Status: models.StatusOverdue},
	}}
	svc := NewService(NewRepository(), recs, fakePayables{}, fakeAccounts{})
	ctx := context.Background()

	created, err := svc.Generate(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, created)

	created, err = svc.Generate(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 0, created)

	// Once read, the next scan raises it again.
	items, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.NoError(t, svc.MarkRead(ctx, items[0].ID))
	created, err = svc.Generate(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, created)
}

func TestBalanceFloorAlert(t *testing.T) {
	now := time.Now()
	floor := 1000.0
	accounts := fakeAccounts{items: []models.BankAccount{
		{ID: 1, Bank: "Banco do Brasil", Number: "123", CurrentBalance: 400},
		{ID: 2, Bank: "Itau", Number: "456", CurrentBalance: 5000},
	}}
	svc := NewService(NewRepository(), fakeReceivables{}, fakePayables{}, accounts)
	ctx := context.Background()

	enabled := true
	_, err := svc.PatchConfig(ctx, models.AlertConfigPatch{
		BalanceFloorEnabled: &enabled,
		BalanceFloorAmount:  &floor,
	})
	require.NoError(t, err)

	created, err := svc.Generate(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, created)

	items, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Equal(t, models.AlertBalanceFloor, items[0].Kind)
	require.Equal(t, int64(1), items[0].RecordID)
}

func TestUnreadCountAndMarkAll(t *testing.T) {
	now := time.Now()
	recs := fakeReceivables{items: []models.Receivable{
		{ID: 1, Description: "A", DueDate: now.AddDate(0, 0, 1), PendingAmount: 1, Status: models.StatusPending},
		{ID: 2, Description: "B", DueDate: now.AddDate(0, 0, -1), PendingAmount: 1, Status: models.StatusOverdue},
	}}
	svc := NewService(NewRepository(), recs, fakePayables{}, fakeAccounts{})
	ctx := context.Background()

	_, err := svc.Generate(ctx, now)
	require.NoError(t, err)

	count, err := svc.UnreadCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count.Count)

	n, err := svc.MarkAllRead(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	count, err = svc.UnreadCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, count.Count)
}

func TestGenerateDisabled(t *testing.T) {
	now := time.Now()
	recs := fakeReceivables{items: []models.Receivable{
		{ID: 1, Description: "Overdue", DueDate: now.AddDate(0, 0, -1), PendingAmount: 10, Status: models.StatusOverdue},
	}}
	svc := NewService(NewRepository(), recs, fakePayables{}, fakeAccounts{})
	ctx := context.Background()

	disabled := false
	_, err := svc.PatchConfig(ctx, models.AlertConfigPatch{SystemEnabled: &disabled})
	require.NoError(t, err)

	created, err := svc.Generate(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 0, created)
}
