package console

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/visionday/hub/pkg/models"
)

type fakePayableGateway struct {
	records []models.Payable
	summary models.PayableSummary

	listCalls  atomic.Int64
	patchCalls atomic.Int64
}

func (f *fakePayableGateway) List(ctx context.Context, _ models.RecordFilter) ([]models.Payable, error) {
	f.listCalls.Add(1)
	return f.records, nil
}

func (f *fakePayableGateway) Summary(ctx context.Context) (models.PayableSummary, error) {
	return f.summary, nil
}

func (f *fakePayableGateway) Create(ctx context.Context, input models.PayableInput) (models.Payable, error) {
	p := models.Payable{ID: int64(len(f.records) + 1), Description: input.Description, TotalAmount: input.TotalAmount, PendingAmount: input.TotalAmount, Status: models.StatusPending}
	f.records = append(f.records, p)
	return p, nil
}

func (f *fakePayableGateway) Patch(ctx context.Context, id int64, patch models.PayablePatch) (models.Payable, error) {
	f.patchCalls.Add(1)
	for i := range f.records {
		if f.records[i].ID == id {
			if patch.Description != nil {
				f.records[i].Description = *patch.Description
			}
			return f.records[i], nil
		}
	}
	return models.Payable{}, nil
}

func (f *fakePayableGateway) RegisterPayment(ctx context.Context, id int64, input models.PaymentInput) (models.Payable, error) {
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].PaidAmount += input.Amount
			f.records[i].PendingAmount -= input.Amount
			return f.records[i], nil
		}
	}
	return models.Payable{}, nil
}

func (f *fakePayableGateway) Delete(ctx context.Context, id int64) error { return nil }

type fakeSuppliers struct{ calls atomic.Int64 }

func (f *fakeSuppliers) List(ctx context.Context) ([]models.Supplier, error) {
	f.calls.Add(1)
	return []models.Supplier{{ID: 1, Name: "Office LLC"}}, nil
}

func TestPayablesLoadAndFilterLocally(t *testing.T) {
	supplierOne := int64(1)
	gw := &fakePayableGateway{
		records: []models.Payable{
			{ID: 1, Description: "Rent", Status: models.StatusPending, PendingAmount: 900, SupplierID: &supplierOne, DueDate: time.Now().AddDate(0, 0, 3)},
			{ID: 2, Description: "Taxes", Status: models.StatusOverdue, PendingAmount: 150, DueDate: time.Now().AddDate(0, 0, -2)},
		},
		summary: models.PayableSummary{TotalPending: 1050},
	}
	sups := &fakeSuppliers{}
	view := NewPayablesView(gw, &fakeCategories{}, sups)

	require.NoError(t, view.Load(context.Background()))
	require.Equal(t, int64(1), sups.calls.Load())
	require.Len(t, view.Visible(), 2)
	require.Len(t, view.Suppliers(), 1)

	view.SetFilter(models.RecordFilter{PartyID: 1})
	require.Len(t, view.Visible(), 1)
	require.Equal(t, "Rent", view.Visible()[0].Description)
	require.Equal(t, int64(1), gw.listCalls.Load())
	require.Equal(t, 1050.0, view.Summary().TotalPending)
}

func TestPayablesPatchRefreshesList(t *testing.T) {
	gw := &fakePayableGateway{
		records: []models.Payable{{ID: 1, Description: "Rent", Status: models.StatusPending, PendingAmount: 900, DueDate: time.Now()}},
	}
	view := NewPayablesView(gw, &fakeCategories{}, &fakeSuppliers{})
	require.NoError(t, view.Load(context.Background()))

	desc := "Rent, September"
	p, err := view.PatchRecord(context.Background(), 1, models.PayablePatch{Description: &desc})
	require.NoError(t, err)
	require.Equal(t, desc, p.Description)
	require.Equal(t, int64(1), gw.patchCalls.Load())
	require.Equal(t, int64(2), gw.listCalls.Load())
	require.Equal(t, desc, view.Visible()[0].Description)
}
