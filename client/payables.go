package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/visionday/hub/pkg/models"
)

// PayablesAPI wraps the /finance/contas-pagar endpoints.
type PayablesAPI struct {
	c *Client
}

func (p *PayablesAPI) List(ctx context.Context, f models.RecordFilter) ([]models.Payable, error) {
	var out []models.Payable
	err := p.c.get(ctx, "/finance/contas-pagar", payableQuery(f), &out)
	return out, err
}

func (p *PayablesAPI) Summary(ctx context.Context) (models.PayableSummary, error) {
	var out models.PayableSummary
	err := p.c.get(ctx, "/finance/contas-pagar/resumo", nil, &out)
	return out, err
}

func (p *PayablesAPI) Get(ctx context.Context, id int64) (models.Payable, error) {
	var out models.Payable
	err := p.c.get(ctx, fmt.Sprintf("/finance/contas-pagar/%d", id), nil, &out)
	return out, err
}

func (p *PayablesAPI) Create(ctx context.Context, input models.PayableInput) (models.Payable, error) {
	var out models.Payable
	err := p.c.post(ctx, "/finance/contas-pagar", input, &out)
	return out, err
}

func (p *PayablesAPI) Patch(ctx context.Context, id int64, patch models.PayablePatch) (models.Payable, error) {
	var out models.Payable
	err := p.c.patch(ctx, fmt.Sprintf("/finance/contas-pagar/%d", id), patch, &out)
	return out, err
}

func (p *PayablesAPI) RegisterPayment(ctx context.Context, id int64, input models.PaymentInput) (models.Payable, error) {
	var out models.Payable
	err := p.c.post(ctx, fmt.Sprintf("/finance/contas-pagar/%d/pagamento", id), input, &out)
	return out, err
}

func (p *PayablesAPI) Delete(ctx context.Context, id int64) error {
	return p.c.delete(ctx, fmt.Sprintf("/finance/contas-pagar/%d", id))
}

func payableQuery(f models.RecordFilter) url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.PartyID != 0 {
		q.Set("fornecedorId", strconv.FormatInt(f.PartyID, 10))
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
