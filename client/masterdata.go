package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/visionday/hub/pkg/models"
)

// ClientsAPI wraps the /finance/clientes endpoints.
type ClientsAPI struct {
	c *Client
}

// List returns active clients. includeInactive adds deactivated ones.
func (a *ClientsAPI) List(ctx context.Context, includeInactive bool) ([]models.Client, error) {
	q := url.Values{}
	if includeInactive {
		q.Set("todos", "true")
	}
	var out []models.Client
	err := a.c.get(ctx, "/finance/clientes", q, &out)
	return out, err
}

// Search finds active clients by name, email or tax id.
func (a *ClientsAPI) Search(ctx context.Context, term string) ([]models.Client, error) {
	q := url.Values{"q": []string{term}}
	var out []models.Client
	err := a.c.get(ctx, "/finance/clientes/buscar", q, &out)
	return out, err
}

func (a *ClientsAPI) Get(ctx context.Context, id int64) (models.Client, error) {
	var out models.Client
	err := a.c.get(ctx, fmt.Sprintf("/finance/clientes/%d", id), nil, &out)
	return out, err
}

func (a *ClientsAPI) Create(ctx context.Context, input models.ClientInput) (models.Client, error) {
	var out models.Client
	err := a.c.post(ctx, "/finance/clientes", input, &out)
	return out, err
}

func (a *ClientsAPI) Patch(ctx context.Context, id int64, input models.ClientInput) (models.Client, error) {
	var out models.Client
	err := a.c.patch(ctx, fmt.Sprintf("/finance/clientes/%d", id), input, &out)
	return out, err
}

func (a *ClientsAPI) Delete(ctx context.Context, id int64) error {
	return a.c.delete(ctx, fmt.Sprintf("/finance/clientes/%d", id))
}

// SuppliersAPI wraps the /finance/fornecedores endpoints.
type SuppliersAPI struct {
	c *Client
}

func (a *SuppliersAPI) List(ctx context.Context) ([]models.Supplier, error) {
	var out []models.Supplier
	err := a.c.get(ctx, "/finance/fornecedores", nil, &out)
	return out, err
}

func (a *SuppliersAPI) Search(ctx context.Context, term string) ([]models.Supplier, error) {
	q := url.Values{"q": []string{term}}
	var out []models.Supplier
	err := a.c.get(ctx, "/finance/fornecedores/buscar", q, &out)
	return out, err
}

func (a *SuppliersAPI) Get(ctx context.Context, id int64) (models.Supplier, error) {
	var out models.Supplier
	err := a.c.get(ctx, fmt.Sprintf("/finance/fornecedores/%d", id), nil, &out)
	return out, err
}

func (a *SuppliersAPI) Create(ctx context.Context, input models.SupplierInput) (models.Supplier, error) {
	var out models.Supplier
	err := a.c.post(ctx, "/finance/fornecedores", input, &out)
	return out, err
}

func (a *SuppliersAPI) Patch(ctx context.Context, id int64, input models.SupplierInput) (models.Supplier, error) {
	var out models.Supplier
	err := a.c.patch(ctx, fmt.Sprintf("/finance/fornecedores/%d", id), input, &out)
	return out, err
}

func (a *SuppliersAPI) Delete(ctx context.Context, id int64) error {
	return a.c.delete(ctx, fmt.Sprintf("/finance/fornecedores/%d", id))
}

// CategoriesAPI wraps the /finance/categorias endpoints.
type CategoriesAPI struct {
	c *Client
}

// List returns categories, optionally narrowed to one kind.
func (a *CategoriesAPI) List(ctx context.Context, kind models.CategoryKind) ([]models.Category, error) {
	q := url.Values{}
	if kind != "" {
		q.Set("tipo", string(kind))
	}
	var out []models.Category
	err := a.c.get(ctx, "/finance/categorias", q, &out)
	return out, err
}

func (a *CategoriesAPI) Get(ctx context.Context, id int64) (models.Category, error) {
	var out models.Category
	err := a.c.get(ctx, fmt.Sprintf("/finance/categorias/%d", id), nil, &out)
	return out, err
}

func (a *CategoriesAPI) Create(ctx context.Context, input models.CategoryInput) (models.Category, error) {
	var out models.Category
	err := a.c.post(ctx, "/finance/categorias", input, &out)
	return out, err
}

func (a *CategoriesAPI) Patch(ctx context.Context, id int64, input models.CategoryInput) (models.Category, error) {
	var out models.Category
	err := a.c.patch(ctx, fmt.Sprintf("/finance/categorias/%d", id), input, &out)
	return out, err
}

func (a *CategoriesAPI) Delete(ctx context.Context, id int64) error {
	return a.c.delete(ctx, fmt.Sprintf("/finance/categorias/%d", id))
}

// AccountsAPI wraps the /finance/contas-bancarias endpoints.
type AccountsAPI struct {
	c *Client
}

func (a *AccountsAPI) List(ctx context.Context) ([]models.BankAccount, error) {
	var out []models.BankAccount
	err := a.c.get(ctx, "/finance/contas-bancarias", nil, &out)
	return out, err
}

// Primary returns the account flagged as the main one.
func (a *AccountsAPI) Primary(ctx context.Context) (models.BankAccount, error) {
	var out models.BankAccount
	err := a.c.get(ctx, "/finance/contas-bancarias/principal", nil, &out)
	return out, err
}

func (a *AccountsAPI) Get(ctx context.Context, id int64) (models.BankAccount, error) {
	var out models.BankAccount
	err := a.c.get(ctx, fmt.Sprintf("/finance/contas-bancarias/%d", id), nil, &out)
	return out, err
}

func (a *AccountsAPI) Create(ctx context.Context, input models.BankAccountInput) (models.BankAccount, error) {
	var out models.BankAccount
	err := a.c.post(ctx, "/finance/contas-bancarias", input, &out)
	return out, err
}

func (a *AccountsAPI) Patch(ctx context.Context, id int64, input models.BankAccountInput) (models.BankAccount, error) {
	var out models.BankAccount
	err := a.c.patch(ctx, fmt.Sprintf("/finance/contas-bancarias/%d", id), input, &out)
	return out, err
}

func (a *AccountsAPI) Delete(ctx context.Context, id int64) error {
	return a.c.delete(ctx, fmt.Sprintf("/finance/contas-bancarias/%d", id))
}

// PayMethodsAPI wraps the /finance/formas-pagamento endpoints.
type PayMethodsAPI struct {
	c *Client
}

func (a *PayMethodsAPI) List(ctx context.Context) ([]models.PaymentMethod, error) {
	var out []models.PaymentMethod
	err := a.c.get(ctx, "/finance/formas-pagamento", nil, &out)
	return out, err
}

func (a *PayMethodsAPI) Get(ctx context.Context, id int64) (models.PaymentMethod, error) {
	var out models.PaymentMethod
	err := a.c.get(ctx, fmt.Sprintf("/finance/formas-pagamento/%d", id), nil, &out)
	return out, err
}

func (a *PayMethodsAPI) Create(ctx context.Context, input models.PaymentMethodInput) (models.PaymentMethod, error) {
	var out models.PaymentMethod
	err := a.c.post(ctx, "/finance/formas-pagamento", input, &out)
	return out, err
}

func (a *PayMethodsAPI) Patch(ctx context.Context, id int64, input models.PaymentMethodInput) (models.PaymentMethod, error) {
	var out models.PaymentMethod
	err := a.c.patch(ctx, fmt.Sprintf("/finance/formas-pagamento/%d", id), input, &out)
	return out, err
}

func (a *PayMethodsAPI) Delete(ctx context.Context, id int64) error {
	return a.c.delete(ctx, fmt.Sprintf("/finance/formas-pagamento/%d", id))
}
