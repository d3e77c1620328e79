package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/visionday/hub/internal/session"
	"github.com/visionday/hub/pkg/models"
)

func newTestClient(t *testing.T, handler http.Handler, timeout time.Duration) (*Client, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := session.Open(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err)
	return New(Config{APIURL: srv.URL, Timeout: timeout}, store), store
}

func TestProtectedCallFailsFastWithoutToken(t *testing.T) {
	called := false
	api, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}), time.Second)

	_, err := api.Receivables.List(context.Background(), models.RecordFilter{})
	require.ErrorIs(t, err, ErrNotAuthenticated)
	require.False(t, called, "no request should leave the client without a token")
}

func TestBearerTokenInjected(t *testing.T) {
	var gotAuth string
	api, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}), time.Second)
	require.NoError(t, store.Save(session.State{Token: "tok-123"}))

	_, err := api.Receivables.List(context.Background(), models.RecordFilter{})
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", gotAuth)
}

func TestServerErrorMessageSurfaces(t *testing.T) {
	api, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"payment amount exceeds pending amount"}`))
	}), time.Second)
	require.NoError(t, store.Save(session.State{Token: "tok"}))

	_, err := api.Receivables.RegisterPayment(context.Background(), 1, models.PaymentInput{Amount: 10, PaymentDate: time.Now()})
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Equal(t, "payment amount exceeds pending amount", apiErr.Error())
}

func TestUnauthorizedMapsToNotAuthenticated(t *testing.T) {
	api, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"not authenticated, please log in again"}`))
	}), time.Second)
	require.NoError(t, store.Save(session.State{Token: "stale"}))

	_, err := api.Receivables.List(context.Background(), models.RecordFilter{})
	require.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLoginSurfacesCredentialMessage(t *testing.T) {
	api, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"incorrect email or password"}`))
	}), time.Second)

	_, err := api.Auth.Login(context.Background(), models.LoginRequest{Email: "who@example.com", Password: "nope"})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotAuthenticated)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "incorrect email or password", apiErr.Error())
}

func TestSlowServerTimesOut(t *testing.T) {
	api, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}), 50*time.Millisecond)
	require.NoError(t, store.Save(session.State{Token: "tok"}))

	_, err := api.Receivables.List(context.Background(), models.RecordFilter{})
	require.ErrorIs(t, err, ErrTimeout)
}

func TestQueryFiltersOmitZeroFields(t *testing.T) {
	var gotQuery string
	api, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}), time.Second)
	require.NoError(t, store.Save(session.State{Token: "tok"}))

	_, err := api.Receivables.List(context.Background(), models.RecordFilter{Status: models.StatusPending, PartyID: 7})
	require.NoError(t, err)
	require.Contains(t, gotQuery, "status=PENDING")
	require.Contains(t, gotQuery, "clienteId=7")
	require.NotContains(t, gotQuery, "categoriaId")
	require.NotContains(t, gotQuery, "dataInicio")
}

func TestLoginStoresSession(t *testing.T) {
	api, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-9","refreshToken":"ref-9","user":{"id":"1","name":"Dayane Paz","email":"dayane_paz@gmail.com","role":"admin","systems":["digital","finance","academy"]}}`))
	}), time.Second)

	user, err := api.Auth.Login(context.Background(), models.LoginRequest{Email: "dayane_paz@gmail.com", Password: "Pazygor080@", RememberMe: true})
	require.NoError(t, err)
	require.Equal(t, "Dayane Paz", user.Name)
	require.Equal(t, "tok-9", store.Token())
	require.Equal(t, "ref-9", store.RefreshToken())
	require.True(t, user.HasSystem(models.SystemFinance))
}

func TestLogoutSwallowsRemoteFailure(t *testing.T) {
	api, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"boom"}`))
	}), time.Second)
	require.NoError(t, store.Save(session.State{Token: "tok", User: &models.User{ID: "1"}}))

	require.NoError(t, api.Auth.Logout(context.Background()))
	require.False(t, store.Authenticated())
	require.Nil(t, store.User())
}

func TestForgotPasswordAlwaysSucceeds(t *testing.T) {
	api, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"if the email exists, a reset link was sent"}`))
	}), time.Second)

	require.NoError(t, api.Auth.ForgotPassword(context.Background(), "ghost@example.com"))
}
