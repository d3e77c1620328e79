package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/visionday/hub/internal/auth"
	"github.com/visionday/hub/internal/finance/alerts"
	"github.com/visionday/hub/internal/finance/invoices"
	"github.com/visionday/hub/internal/finance/masterdata/bankaccounts"
	"github.com/visionday/hub/internal/finance/masterdata/categories"
	"github.com/visionday/hub/internal/finance/masterdata/clients"
	"github.com/visionday/hub/internal/finance/masterdata/paymethods"
	"github.com/visionday/hub/internal/finance/masterdata/suppliers"
	"github.com/visionday/hub/internal/finance/payables"
	"github.com/visionday/hub/internal/finance/receivables"
	"github.com/visionday/hub/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger *slog.Logger
	Config *Config

	AuthHandler    *auth.Handler
	AuthMiddleware func(http.Handler) http.Handler

	ClientsHandler      *clients.Handler
	SuppliersHandler    *suppliers.Handler
	CategoriesHandler   *categories.Handler
	BankAccountsHandler *bankaccounts.Handler
	PayMethodsHandler   *paymethods.Handler
	ReceivablesHandler  *receivables.Handler
	PayablesHandler     *payables.Handler
	InvoicesHandler     *invoices.Handler
	AlertsHandler       *alerts.Handler

	JobsHandler *jobs.Handler
}

// NewRouter constructs the chi.Router with hub defaults. All API routes live
// under /api; everything below /api/finance requires a bearer token.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)

		r.Route("/finance", func(r chi.Router) {
			r.Use(params.AuthMiddleware)
			r.Route("/clientes", params.ClientsHandler.MountRoutes)
			r.Route("/fornecedores", params.SuppliersHandler.MountRoutes)
			r.Route("/categorias", params.CategoriesHandler.MountRoutes)
			r.Route("/contas-bancarias", params.BankAccountsHandler.MountRoutes)
			r.Route("/formas-pagamento", params.PayMethodsHandler.MountRoutes)
			r.Route("/contas-receber", params.ReceivablesHandler.MountRoutes)
			r.Route("/contas-pagar", params.PayablesHandler.MountRoutes)
			r.Route("/faturas", params.InvoicesHandler.MountRoutes)
			r.Route("/alertas", params.AlertsHandler.MountRoutes)
		})

		if params.JobsHandler != nil {
			r.Route("/jobs", func(r chi.Router) {
				r.Use(params.AuthMiddleware)
				params.JobsHandler.MountRoutes(r)
			})
		}
	})

	return r
}
