package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/visionday/hub/pkg/models"
)

// InvoicesAPI wraps the /finance/faturas endpoints.
type InvoicesAPI struct {
	c *Client
}

func (a *InvoicesAPI) List(ctx context.Context, f models.RecordFilter) ([]models.Invoice, error) {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.PartyID != 0 {
		q.Set("clienteId", strconv.FormatInt(f.PartyID, 10))
	}
	if !f.DateFrom.IsZero() {
		q.Set("dataInicio", f.DateFrom.Format("2006-01-02"))
	}
	if !f.DateTo.IsZero() {
		q.Set("dataFim", f.DateTo.Format("2006-01-02"))
	}
	var out []models.Invoice
	err := a.c.get(ctx, "/finance/faturas", q, &out)
	return out, err
}

func (a *InvoicesAPI) Get(ctx context.Context, id int64) (models.Invoice, error) {
	var out models.Invoice
	err := a.c.get(ctx, fmt.Sprintf("/finance/faturas/%d", id), nil, &out)
	return out, err
}

func (a *InvoicesAPI) Create(ctx context.Context, input models.InvoiceInput) (models.Invoice, error) {
	var out models.Invoice
	err := a.c.post(ctx, "/finance/faturas", input, &out)
	return out, err
}

func (a *InvoicesAPI) Patch(ctx context.Context, id int64, patch models.InvoicePatch) (models.Invoice, error) {
	var out models.Invoice
	err := a.c.patch(ctx, fmt.Sprintf("/finance/faturas/%d", id), patch, &out)
	return out, err
}

func (a *InvoicesAPI) Delete(ctx context.Context, id int64) error {
	return a.c.delete(ctx, fmt.Sprintf("/finance/faturas/%d", id))
}
