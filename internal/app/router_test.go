package app_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/visionday/hub/internal/app"
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
	"github.com/visionday/hub/pkg/models"
)

// newTestServer wires the full router against an embedded redis, the
// same way cmd/hubd does.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &app.Config{AppEnv: "test", AppRequestTimeout: 30 * time.Second}

	authStore := auth.NewStore()
	require.NoError(t, authStore.SeedDefault())
	tokenStore := auth.NewTokenStore(redisClient, time.Hour, 24*time.Hour)
	authService := auth.NewService(authStore, tokenStore, nil, time.Hour)

	clientRepo := clients.NewRepository()
	supplierRepo := suppliers.NewRepository()
	categoryRepo := categories.NewRepository()
	accountRepo := bankaccounts.NewRepository()
	methodRepo := paymethods.NewRepository()
	categoryRepo.SeedDefaults()
	accountRepo.SeedDefaults()
	methodRepo.SeedDefaults()

	clientService := clients.NewService(clientRepo)
	supplierService := suppliers.NewService(supplierRepo)
	categoryService := categories.NewService(categoryRepo)
	accountService := bankaccounts.NewService(accountRepo)
	methodService := paymethods.NewService(methodRepo)

	receivableService := receivables.NewService(receivables.NewRepository(), clientService, categoryService, accountService)
	payableService := payables.NewService(payables.NewRepository(), supplierService, categoryService, accountService)
	invoiceService := invoices.NewService(invoices.NewRepository(), clientService)
	alertService := alerts.NewService(alerts.NewRepository(), receivableService, payableService, accountService)

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		AuthHandler:         auth.NewHandler(logger, authService),
		AuthMiddleware:      auth.RequireAuth(tokenStore),
		ClientsHandler:      clients.NewHandler(logger, clientService),
		SuppliersHandler:    suppliers.NewHandler(logger, supplierService),
		CategoriesHandler:   categories.NewHandler(logger, categoryService),
		BankAccountsHandler: bankaccounts.NewHandler(logger, accountService),
		PayMethodsHandler:   paymethods.NewHandler(logger, methodService),
		ReceivablesHandler:  receivables.NewHandler(logger, receivableService),
		PayablesHandler:     payables.NewHandler(logger, payableService),
		InvoicesHandler:     invoices.NewHandler(logger, invoiceService),
		AlertsHandler:       alerts.NewHandler(logger, alertService),
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func login(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	body, _ := json.Marshal(map[string]any{
		"email":    auth.SeedEmail,
		"password": auth.SeedPassword,
	})
	resp, err := http.Post(srv.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out models.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	return out.Token
}

func doJSON(t *testing.T, srv *httptest.Server, token, method, path string, payload any) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, srv.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestFinanceRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/finance/clientes")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, "not authenticated, please log in again", out["message"])
}

func TestLoginThenListSeedData(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	resp := doJSON(t, srv, token, http.MethodGet, "/api/finance/categorias", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var cats []models.Category
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&cats))
	require.Len(t, cats, 7)
}

func TestReceivableLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	resp := doJSON(t, srv, token, http.MethodPost, "/api/finance/clientes", models.ClientInput{Name: "Acme"})
	var client models.Client
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&client))
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, srv, token, http.MethodPost, "/api/finance/contas-receber", models.ReceivableInput{
		Description: "Consulting",
		TotalAmount: 800,
		IssueDate:   time.Now(),
		DueDate:     time.Now().AddDate(0, 0, 15),
		ClientID:    &client.ID,
	})
	var rec models.Receivable
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, models.StatusPending, rec.Status)
	require.Equal(t, 800.0, rec.PendingAmount)

	resp = doJSON(t, srv, token, http.MethodPost, fmt.Sprintf("/api/finance/contas-receber/%d/pagamento", rec.ID), models.PaymentInput{
		Amount:      800,
		PaymentDate: time.Now(),
	})
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rec))
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, models.StatusPaid, rec.Status)

	// Overpaying a settled record is rejected with the service message.
	resp = doJSON(t, srv, token, http.MethodPost, fmt.Sprintf("/api/finance/contas-receber/%d/pagamento", rec.ID), models.PaymentInput{
		Amount:      1,
		PaymentDate: time.Now(),
	})
	var errBody map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "payment amount exceeds pending amount", errBody["message"])
}

func TestSummaryIgnoresQueryFilters(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	for _, desc := range []string{"One", "Two"} {
		resp := doJSON(t, srv, token, http.MethodPost, "/api/finance/contas-receber", models.ReceivableInput{
			Description: desc,
			TotalAmount: 100,
			IssueDate:   time.Now(),
			DueDate:     time.Now().AddDate(0, 0, 10),
		})
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := doJSON(t, srv, token, http.MethodGet, "/api/finance/contas-receber/resumo?status=PAID", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summary models.ReceivableSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	require.Equal(t, 200.0, summary.TotalPending)
	require.Equal(t, 2, summary.PendingCount)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}
