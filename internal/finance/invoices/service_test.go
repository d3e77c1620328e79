package invoices

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

func newTestService() *Service {
	return NewService(NewRepository(), nil)
}

func baseInput() models.InvoiceInput {
	return models.InvoiceInput{
		ClientID:  1,
		IssueDate: time.Now(),
		DueDate:   time.Now().AddDate(0, 0, 30),
		Items: []models.InvoiceItem{
			{Description: "Design work", Quantity: 10, UnitPrice: 150},
			{Description: "Hosting", Quantity: 2, UnitPrice: 49.9},
		},
	}
}

func TestCreateDerivesTotals(t *testing.T) {
	svc := newTestService()

	inv, err := svc.Create(context.Background(), baseInput())
	require.NoError(t, err)
	require.Equal(t, 1500.0, inv.Items[0].TotalAmount)
	require.Equal(t, 99.8, inv.Items[1].TotalAmount)
	require.Equal(t, 1599.8, inv.TotalAmount)
	require.Equal(t, inv.TotalAmount, inv.FinalAmount)
	require.Equal(t, models.StatusPending, inv.Status)
	require.Contains(t, inv.Number, "INV-")
}

func TestCreateAppliesDiscountAndSurcharge(t *testing.T) {
	svc := newTestService()
	input := baseInput()
	input.Discount = 100
	input.Surcharge = 20.5

	inv, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, 1520.3, inv.FinalAmount)
}

func TestCreateRejectsDiscountSwallowingTotal(t *testing.T) {
	svc := newTestService()
	input := baseInput()
	input.Discount = 5000

	_, err := svc.Create(context.Background(), input)
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestNumbersAreSequential(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, baseInput())
	require.NoError(t, err)
	second, err := svc.Create(ctx, baseInput())
	require.NoError(t, err)
	require.NotEqual(t, first.Number, second.Number)
}

func TestPatchRepricesItems(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	inv, err := svc.Create(ctx, baseInput())
	require.NoError(t, err)

	patched, err := svc.Patch(ctx, inv.ID, models.InvoicePatch{
		Items: []models.InvoiceItem{{Description: "Design work", Quantity: 5, UnitPrice: 100}},
	})
	require.NoError(t, err)
	require.Equal(t, 500.0, patched.TotalAmount)
	require.Equal(t, 500.0, patched.FinalAmount)
}

func TestPaidInvoiceLocked(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	inv, err := svc.Create(ctx, baseInput())
	require.NoError(t, err)

	paid := models.StatusPaid
	_, err = svc.Patch(ctx, inv.ID, models.InvoicePatch{Status: &paid})
	require.NoError(t, err)

	discount := 10.0
	_, err = svc.Patch(ctx, inv.ID, models.InvoicePatch{Discount: &discount})
	require.ErrorIs(t, err, httpx.ErrValidation)
}
