package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/visionday/hub/pkg/models"
)

// ReceivablesAPI wraps the /finance/contas-receber endpoints.
type ReceivablesAPI struct {
	c *Client
}

// List returns receivables, narrowed by the filter. Zero filter fields
// are left off the query string.
func (r *ReceivablesAPI) List(ctx context.Context, f models.RecordFilter) ([]models.Receivable, error) {
	var out []models.Receivable
	err := r.c.get(ctx, "/finance/contas-receber", receivableQuery(f), &out)
	return out, err
}

// Summary returns the dashboard aggregate. The server always computes
// it over the unfiltered set.
func (r *ReceivablesAPI) Summary(ctx context.Context) (models.ReceivableSummary, error) {
	var out models.ReceivableSummary
	err := r.c.get(ctx, "/finance/contas-receber/resumo", nil, &out)
	return out, err
}

func (r *ReceivablesAPI) Get(ctx context.Context, id int64) (models.Receivable, error) {
	var out models.Receivable
	err := r.c.get(ctx, fmt.Sprintf("/finance/contas-receber/%d", id), nil, &out)
	return out, err
}

func (r *ReceivablesAPI) Create(ctx context.Context, input models.ReceivableInput) (models.Receivable, error) {
	var out models.Receivable
	err := r.c.post(ctx, "/finance/contas-receber", input, &out)
	return out, err
}

func (r *ReceivablesAPI) Update(ctx context.Context, id int64, input models.ReceivableInput) (models.Receivable, error) {
	var out models.Receivable
	err := r.c.put(ctx, fmt.Sprintf("/finance/contas-receber/%d", id), input, &out)
	return out, err
}

// RegisterPayment posts a full or partial payment against a receivable.
func (r *ReceivablesAPI) RegisterPayment(ctx context.Context, id int64, input models.PaymentInput) (models.Receivable, error) {
	var out models.Receivable
	err := r.c.post(ctx, fmt.Sprintf("/finance/contas-receber/%d/pagamento", id), input, &out)
	return out, err
}

func (r *ReceivablesAPI) Delete(ctx context.Context, id int64) error {
	return r.c.delete(ctx, fmt.Sprintf("/finance/contas-receber/%d", id))
}

func receivableQuery(f models.RecordFilter) url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.PartyID != 0 {
		q.Set("clienteId", strconv.FormatInt(f.PartyID, 10))
	}
	if f.CategoryID != 0 {
		q.Set("categoriaId", strconv.FormatInt(f.CategoryID, 10))
	}
	if !f.DateFrom.IsZero() {
		q.Set("dataInicio", f.DateFrom.Format("2006-01-02"))
	}
	if !f.DateTo.IsZero() {
		q.Set("dataFim", f.DateTo.Format("2006-01-02"))
	}
	return q
}
