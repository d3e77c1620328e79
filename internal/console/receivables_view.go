package console

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/visionday/hub/pkg/models"
)

// ReceivablesGateway is the slice of the API client the receivables
// screen needs.
type ReceivablesGateway interface {
	List(ctx context.Context, f models.RecordFilter) ([]models.Receivable, error)
	Summary(ctx context.Context) (models.ReceivableSummary, error)
	Create(ctx context.Context, input models.ReceivableInput) (models.Receivable, error)
	Update(ctx context.Context, id int64, input models.ReceivableInput) (models.Receivable, error)
	RegisterPayment(ctx context.Context, id int64, input models.PaymentInput) (models.Receivable, error)
	Delete(ctx context.Context, id int64) error
}

// CategoriesGateway lists categories for the filter dropdowns.
type CategoriesGateway interface {
	List(ctx context.Context, kind models.CategoryKind) ([]models.Category, error)
}

// ClientsGateway lists clients for the filter dropdowns.
type ClientsGateway interface {
	List(ctx context.Context, includeInactive bool) ([]models.Client, error)
}

// ReceivablesView holds the state behind the receivables screen. The
// record list, summary and dropdown data are fetched together; filter
// changes only narrow the cached list and never hit the network.
type ReceivablesView struct {
	gateway    ReceivablesGateway
	categories CategoriesGateway
	clients    ClientsGateway

	mu         sync.RWMutex
	records    []models.Receivable
	summary    models.ReceivableSummary
	categoryXs []models.Category
	clientXs   []models.Client
	filter     models.RecordFilter
	loaded     bool
}

func NewReceivablesView(gateway ReceivablesGateway, categories CategoriesGateway, clients ClientsGateway) *ReceivablesView {
	return &ReceivablesView{gateway: gateway, categories: categories, clients: clients}
}

// Load fetches the record list, the summary and the dropdown data in
// parallel. One failing fetch fails the whole load.
func (v *ReceivablesView) Load(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	var (
		records []models.Receivable
		summary models.ReceivableSummary
		cats    []models.Category
		cls     []models.Client
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
		cats, err = v.categories.List(ctx, models.CategoryRevenue)
		return err
	})
	g.Go(func() error {
		var err error
		cls, err = v.clients.List(ctx, false)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	v.mu.Lock()
	v.records = records
	v.summary = summary
	v.categoryXs = cats
	v.clientXs = cls
	v.loaded = true
	v.mu.Unlock()
	return nil
}

// refresh re-fetches the record list and summary after a mutation. The
// dropdown data is left alone.
func (v *ReceivablesView) refresh(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	var (
		records []models.Receivable
		summary models.ReceivableSummary
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

// SetFilter narrows the visible records. It is purely local.
func (v *ReceivablesView) SetFilter(f models.RecordFilter) {
	v.mu.Lock()
	v.filter = f
	v.mu.Unlock()
}

// Visible returns the cached records that pass the active filter.
func (v *ReceivablesView) Visible() []models.Receivable {
	v.mu.RLock()
	defer v.mu.RUnlock()
	var out []models.Receivable
	for _, rec := range v.records {
		if visibleReceivable(rec, v.filter) {
			out = append(out, rec)
		}
	}
	return out
}

// Summary returns the cached aggregate. It ignores the filter on
// purpose: the dashboard cards always describe the full data set.
func (v *ReceivablesView) Summary() models.ReceivableSummary {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.summary
}

// Categories returns the cached dropdown categories.
func (v *ReceivablesView) Categories() []models.Category {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.categoryXs
}

// Clients returns the cached dropdown clients.
func (v *ReceivablesView) Clients() []models.Client {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.clientXs
}

// CreateRecord submits the form and refreshes the screen.
func (v *ReceivablesView) CreateRecord(ctx context.Context, form RecordForm) (models.Receivable, error) {
	if err := form.Validate(); err != nil {
		return models.Receivable{}, err
	}
	rec, err := v.gateway.Create(ctx, form.ReceivableInput())
	if err != nil {
		return models.Receivable{}, err
	}
	if err := v.refresh(ctx); err != nil {
		return rec, err
	}
	return rec, nil
}

// UpdateRecord replaces a record and refreshes the screen.
func (v *ReceivablesView) UpdateRecord(ctx context.Context, id int64, form RecordForm) (models.Receivable, error) {
	if err := form.Validate(); err != nil {
		return models.Receivable{}, err
	}
	rec, err := v.gateway.Update(ctx, id, form.ReceivableInput())
	if err != nil {
		return models.Receivable{}, err
	}
	if err := v.refresh(ctx); err != nil {
		return rec, err
	}
	return rec, nil
}

// DeleteRecord removes a record after the confirm callback approves it.
// Declining the confirmation is not an error, the record just stays.
func (v *ReceivablesView) DeleteRecord(ctx context.Context, id int64, confirm func(models.Receivable) bool) (bool, error) {
	v.mu.RLock()
	var target *models.Receivable
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
func (v *ReceivablesView) Pay(ctx context.Context, id int64, form PaymentForm) (models.Receivable, error) {
	// Records missing from the cache only get the basic form checks; the
	// server re-validates the bound either way.
	v.mu.RLock()
	pending := form.Amount
	for _, rec := range v.records {
		if rec.ID == id {
			pending = rec.PendingAmount
			break
		}
	}
	v.mu.RUnlock()
	if err := form.Validate(pending); err != nil {
		return models.Receivable{}, err
	}
	rec, err := v.gateway.RegisterPayment(ctx, id, form.Input())
	if err != nil {
		return models.Receivable{}, err
	}
	if err := v.refresh(ctx); err != nil {
		return rec, err
	}
	return rec, nil
}

func visibleReceivable(rec models.Receivable, f models.RecordFilter) bool {
	if f.Status != "" && rec.Status != f.Status {
		return false
	}
	if f.PartyID != 0 && (rec.ClientID == nil || *rec.ClientID != f.PartyID) {
		return false
	}
	if f.CategoryID != 0 && (rec.CategoryID == nil || *rec.CategoryID != f.CategoryID) {
		return false
	}
	if !f.DateFrom.IsZero() && rec.DueDate.Before(f.DateFrom) {
		return false
	}
	if !f.DateTo.IsZero() && rec.DueDate.After(f.DateTo) {
		return false
	}
	return true
}

// SearchVisible narrows the visible records further by a free-text term
// over description and document number.
func (v *ReceivablesView) SearchVisible(term string) []models.Receivable {
	term = strings.ToLower(strings.TrimSpace(term))
	items := v.Visible()
	if term == "" {
		return items
	}
	var out []models.Receivable
	for _, rec := range items {
		if strings.Contains(strings.ToLower(rec.Description), term) ||
			strings.Contains(strings.ToLower(rec.DocumentNumber), term) {
			out = append(out, rec)
		}
	}
	return out
}
