// Package client is the typed SDK for the hub REST API. Every call goes
// through a shared gateway that injects the bearer token, enforces the
// request timeout and translates error bodies.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/visionday/hub/internal/session"
)

// Config controls how the SDK reaches the API.
type Config struct {
	APIURL  string        `envconfig:"API_URL" default:"http://localhost:3000/api"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"30s"`
}

// LoadConfig reads the SDK configuration from HUB_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("hub", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Client talks to the hub API on behalf of the stored session.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	session *session.Store

	Auth        *AuthAPI
	Receivables *ReceivablesAPI
	Payables    *PayablesAPI
	Clients     *ClientsAPI
	Suppliers   *SuppliersAPI
	Categories  *CategoriesAPI
	Accounts    *AccountsAPI
	PayMethods  *PayMethodsAPI
	Invoices    *InvoicesAPI
	Alerts      *AlertsAPI
}

// New builds a Client bound to a session store.
func New(cfg Config, store *session.Store) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		timeout: cfg.Timeout,
		http:    &http.Client{},
		session: store,
	}
	c.Auth = &AuthAPI{c: c}
	c.Receivables = &ReceivablesAPI{c: c}
	c.Payables = &PayablesAPI{c: c}
	c.Clients = &ClientsAPI{c: c}
	c.Suppliers = &SuppliersAPI{c: c}
	c.Categories = &CategoriesAPI{c: c}
	c.Accounts = &AccountsAPI{c: c}
	c.PayMethods = &PayMethodsAPI{c: c}
	c.Invoices = &InvoicesAPI{c: c}
	c.Alerts = &AlertsAPI{c: c}
	return c
}

// Session exposes the bound session store.
func (c *Client) Session() *session.Store {
	return c.session
}

// do performs one API call. Protected calls fail fast with
// ErrNotAuthenticated before touching the network when no token is
// stored. out may be nil for calls without a response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any, protected bool) error {
	token := ""
	if protected {
		token = c.session.Token()
		if token == "" {
			return ErrNotAuthenticated
		}
	} else if c.session != nil {
		token = c.session.Token()
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return translateTransport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp, protected)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, true)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out, true)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out, true)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out, true)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil, true)
}
