package console

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

type fakeGateway struct {
	records []models.Receivable
	summary models.ReceivableSummary

	listCalls    atomic.Int64
	summaryCalls atomic.Int64
	payCalls     atomic.Int64
	deleteCalls  atomic.Int64
}

func (f *fakeGateway) List(ctx context.Context, _ models.RecordFilter) ([]models.Receivable, error) {
	f.listCalls.Add(1)
	return f.records, nil
}

func (f *fakeGateway) Summary(ctx context.Context) (models.ReceivableSummary, error) {
	f.summaryCalls.Add(1)
	return f.summary, nil
}

func (f *fakeGateway) Create(ctx context.Context, input models.ReceivableInput) (models.Receivable, error) {
	rec := models.Receivable{ID: int64(len(f.records) + 1), Description: input.Description, TotalAmount: input.TotalAmount, PendingAmount: input.TotalAmount, DueDate: input.DueDate, Status: models.StatusPending}
	f.records = append(f.records, rec)
	return rec, nil
}

func (f *fakeGateway) Update(ctx context.Context, id int64, input models.ReceivableInput) (models.Receivable, error) {
	return models.Receivable{ID: id, Description: input.Description}, nil
}

func (f *fakeGateway) RegisterPayment(ctx context.Context, id int64, input models.PaymentInput) (models.Receivable, error) {
	f.payCalls.Add(1)
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].PaidAmount += input.Amount
			f.records[i].PendingAmount -= input.Amount
			return f.records[i], nil
		}
	}
	return models.Receivable{}, httpx.ErrNotFound
}

func (f *fakeGateway) Delete(ctx context.Context, id int64) error {
	f.deleteCalls.Add(1)
	return nil
}

type fakeCategories struct{ calls atomic.Int64 }

func (f *fakeCategories) List(ctx context.Context, _ models.CategoryKind) ([]models.Category, error) {
	f.calls.Add(1)
	return []models.Category{{ID: 1, Name: "Sales", Kind: models.CategoryRevenue}}, nil
}

type fakeClients struct{ calls atomic.Int64 }

func (f *fakeClients) List(ctx context.Context, _ bool) ([]models.Client, error) {
	f.calls.Add(1)
	return []models.Client{{ID: 1, Name: "Acme"}}, nil
}

func seededGateway() *fakeGateway {
	clientOne := int64(1)
	return &fakeGateway{
		records: []models.Receivable{
			{ID: 1, Description: "Retainer", Status: models.StatusPending, PendingAmount: 500, TotalAmount: 500, ClientID: &clientOne, DueDate: time.Now().AddDate(0, 0, 5)},
			{ID: 2, Description: "Old invoice", Status: models.StatusOverdue, PendingAmount: 200, TotalAmount: 200, DueDate: time.Now().AddDate(0, 0, -5)},
			{ID: 3, Description: "Settled", Status: models.StatusPaid, PendingAmount: 0, TotalAmount: 100, DueDate: time.Now()},
		},
		summary: models.ReceivableSummary{TotalPending: 700, PendingCount: 2},
	}
}

func TestLoadFetchesEverythingOnce(t *testing.T) {
	gw := seededGateway()
	cats := &fakeCategories{}
	cls := &fakeClients{}
	view := NewReceivablesView(gw, cats, cls)

	require.NoError(t, view.Load(context.Background()))
	require.Equal(t, int64(1), gw.listCalls.Load())
	require.Equal(t, int64(1), gw.summaryCalls.Load())
	require.Equal(t, int64(1), cats.calls.Load())
	require.Equal(t, int64(1), cls.calls.Load())
	require.Len(t, view.Visible(), 3)
	require.Len(t, view.Categories(), 1)
	require.Len(t, view.Clients(), 1)
}

func TestFilterChangesNeverRefetch(t *testing.T) {
	gw := seededGateway()
	view := NewReceivablesView(gw, &fakeCategories{}, &fakeClients{})
	require.NoError(t, view.Load(context.Background()))

	view.SetFilter(models.RecordFilter{Status: models.StatusOverdue})
	require.Len(t, view.Visible(), 1)
	view.SetFilter(models.RecordFilter{PartyID: 1})
	require.Len(t, view.Visible(), 1)
	view.SetFilter(models.RecordFilter{})
	require.Len(t, view.Visible(), 3)

	require.Equal(t, int64(1), gw.listCalls.Load(), "filters are applied locally")
	// The summary is not affected by filtering either.
	require.Equal(t, 700.0, view.Summary().TotalPending)
}

func TestPayValidatesAgainstPendingBeforeCalling(t *testing.T) {
	gw := seededGateway()
	view := NewReceivablesView(gw, &fakeCategories{}, &fakeClients{})
	require.NoError(t, view.Load(context.Background()))

	_, err := view.Pay(context.Background(), 1, PaymentForm{Amount: 600, PaymentDate: time.Now()})
	require.ErrorIs(t, err, httpx.ErrValidation)
	require.Equal(t, int64(0), gw.payCalls.Load(), "overpay must be rejected locally")

	_, err = view.Pay(context.Background(), 1, PaymentForm{Amount: 500, PaymentDate: time.Now()})
	require.NoError(t, err)
	require.Equal(t, int64(1), gw.payCalls.Load())
	// Mutation triggers a refetch of list and summary.
	require.Equal(t, int64(2), gw.listCalls.Load())
	require.Equal(t, int64(2), gw.summaryCalls.Load())
}

func TestDeleteRespectsConfirmation(t *testing.T) {
	gw := seededGateway()
	view := NewReceivablesView(gw, &fakeCategories{}, &fakeClients{})
	require.NoError(t, view.Load(context.Background()))

	deleted, err := view.DeleteRecord(context.Background(), 1, func(models.Receivable) bool { return false })
	require.NoError(t, err)
	require.False(t, deleted)
	require.Equal(t, int64(0), gw.deleteCalls.Load())

	var asked models.Receivable
	deleted, err = view.DeleteRecord(context.Background(), 1, func(rec models.Receivable) bool {
		asked = rec
		return true
	})
	require.NoError(t, err)
	require.True(t, deleted)
	require.Equal(t, "Retainer", asked.Description)
	require.Equal(t, int64(1), gw.deleteCalls.Load())
}

func TestCreateRecordValidatesForm(t *testing.T) {
	gw := seededGateway()
	view := NewReceivablesView(gw, &fakeCategories{}, &fakeClients{})
	require.NoError(t, view.Load(context.Background()))

	_, err := view.CreateRecord(context.Background(), RecordForm{Description: "", TotalAmount: 10})
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = view.CreateRecord(context.Background(), RecordForm{
		Description: "New sale",
		TotalAmount: 250,
		IssueDate:   time.Now(),
		DueDate:     time.Now().AddDate(0, 0, 30),
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), gw.listCalls.Load())
}

func TestSearchVisible(t *testing.T) {
	view := NewReceivablesView(seededGateway(), &fakeCategories{}, &fakeClients{})
	require.NoError(t, view.Load(context.Background()))

	require.Len(t, view.SearchVisible("retainer"), 1)
	require.Len(t, view.SearchVisible("nothing matches"), 0)
	require.Len(t, view.SearchVisible(""), 3)
}
