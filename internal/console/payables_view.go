package console

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/visionday/hub/pkg/models"
)

// PayablesGateway is the slice of the API client the payables screen
// needs.
type PayablesGateway interface {
	List(ctx context.Context, f models.RecordFilter) ([]models.Payable, error)
	Summary(ctx context.Context) (models.PayableSummary, error)
	Create(ctx context.Context, input models.PayableInput) (models.Payable, error)
	Patch(ctx context.Context, id int64, patch models.PayablePatch) (models.Payable, error)
	RegisterPayment(ctx context.Context, id int64, input models.PaymentInput) (models.Payable, error)
	Delete(ctx context.Context, id int64) error
}

// SuppliersGateway lists suppliers for the filter dropdowns.
type SuppliersGateway interface {
	List(ctx context.Context) ([]models.Supplier, error)
}

// PayablesView holds the state behind the payables screen.
type PayablesView struct {
	gateway    PayablesGateway
	categories CategoriesGateway
	suppliers  SuppliersGateway

	mu         sync.RWMutex
	records    []models.Payable
	summary    models.PayableSummary
	categoryXs []models.Category
	supplierXs []models.Supplier
	filter     models.RecordFilter
}

func NewPayablesView(gateway PayablesGateway, categories CategoriesGateway, suppliers SuppliersGateway) *PayablesView {
	return &PayablesView{gateway: gateway, categories: categories, suppliers: suppliers}
}

// Load fetches the record list, summary and dropdown data in parallel.
func (v *PayablesView) Load(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	var (
		records []models.Payable
		summary models.PayableSummary
		cats    []models.Category
		sups    []models.Supplier
	)
	g.Go(func() error {
		var err error
		records, err = v.gateway.List(ctx, models.RecordFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = v.gateway.Summary(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		cats, err = v.categories.List(ctx, models.CategoryExpense)
		return err
	})
	g.Go(func() error {
		var err error
		sups, err = v.suppliers.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	v.mu.Lock()
	v.records = records
	v.summary = summary
	v.categoryXs = cats
	v.supplierXs = sups
	v.mu.Unlock()
	return nil
}

func (v *PayablesView) refresh(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	var (
		records []models.Payable
		summary models.PayableSummary
	)
	g.Go(func() error {
		var err error
		records, err = v.gateway.List(ctx, models.RecordFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		summary, err = v.gateway.Summary(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	v.mu.Lock()
	v.records = records
	v.summary = summary
	v.mu.Unlock()
	return nil
}

// SetFilter narrows the visible records locally.
func (v *PayablesView) SetFilter(f models.RecordFilter) {
	v.mu.Lock()
	v.filter = f
	v.mu.Unlock()
}

// Visible returns the cached records that pass the active filter.
func (v *PayablesView) Visible() []models.Payable {
	v.mu.RLock()
	defer v.mu.RUnlock()
	var out []models.Payable
	for _, p := range v.records {
		if visiblePayable(p, v.filter) {
			out = append(out, p)
		}
	}
	return out
}

// Summary returns the cached aggregate over the full data set.
func (v *PayablesView) Summary() models.PayableSummary {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.summary
}

// Categories returns the cached dropdown categories.
func (v *PayablesView) Categories() []models.Category {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.categoryXs
}

// Suppliers returns the cached dropdown suppliers.
func (v *PayablesView) Suppliers() []models.Supplier {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.supplierXs
}

// CreateRecord submits the form and refreshes the screen.
func (v *PayablesView) CreateRecord(ctx context.Context, form RecordForm) (models.Payable, error) {
	if err := form.Validate(); err != nil {
		return models.Payable{}, err
	}
	p, err := v.gateway.Create(ctx, form.PayableInput())
	if err != nil {
		return models.Payable{}, err
	}
	if err := v.refresh(ctx); err != nil {
		return p, err
	}
	return p, nil
}

// PatchRecord applies a partial update and refreshes the screen.
func (v *PayablesView) PatchRecord(ctx context.Context, id int64, patch models.PayablePatch) (models.Payable, error) {
	p, err := v.gateway.Patch(ctx, id, patch)
	if err != nil {
		return models.Payable{}, err
	}
	if err := v.refresh(ctx); err != nil {
		return p, err
	}
	return p, nil
}

// DeleteRecord removes a record after the confirm callback approves it.
func (v *PayablesView) DeleteRecord(ctx context.Context, id int64, confirm func(models.Payable) bool) (bool, error) {
	v.mu.RLock()
	var target *models.Payable
	for i := range v.records {
		if v.records[i].ID == id {
			target = &v.records[i]
			break
		}
	}
	v.mu.RUnlock()
	if target == nil {
		return false, nil
	}
	if confirm != nil && !confirm(*target) {
		return false, nil
	}
	if err := v.gateway.Delete(ctx, id); err != nil {
		return false, err
	}
	if err := v.refresh(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// Pay validates the payment form against the record's pending amount,
// posts it and refreshes the screen.
func (v *PayablesView) Pay(ctx context.Context, id int64, form PaymentForm) (models.Payable, error) {
	// Records missing from the cache only get the basic form checks; the
	// server re-validates the bound either way.
	v.mu.RLock()
	pending := form.Amount
	for _, p := range v.records {
		if p.ID == id {
			pending = p.PendingAmount
			break
		}
	}
	v.mu.RUnlock()
	if err := form.Validate(pending); err != nil {
		return models.Payable{}, err
	}
	p, err := v.gateway.RegisterPayment(ctx, id, form.Input())
	if err != nil {
		return models.Payable{}, err
	}
	if err := v.refresh(ctx); err != nil {
		return p, err
	}
	return p, nil
}

func visiblePayable(p models.Payable, f models.RecordFilter) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.PartyID != 0 && (p.SupplierID == nil || *p.SupplierID != f.PartyID) {
		return false
	}
	if f.CategoryID != 0 && (p.CategoryID == nil || *p.CategoryID != f.CategoryID) {
		return false
	}
	if !f.DateFrom.IsZero() && p.DueDate.Before(f.DateFrom) {
		return false
	}
	if !f.DateTo.IsZero() && p.DueDate.After(f.DateTo) {
		return false
	}
	return true
}
