package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/visionday/hub/pkg/models"
)

// AlertsAPI wraps the /finance/alertas endpoints.
type AlertsAPI struct {
	c *Client
}

// List returns alerts, optionally only unread ones.
func (a *AlertsAPI) List(ctx context.Context, unreadOnly bool) ([]models.Alert, error) {
	q := url.Values{}
	if unreadOnly {
		q.Set("apenasNaoLidos", "true")
	}
	var out []models.Alert
	err := a.c.get(ctx, "/finance/alertas", q, &out)
	return out, err
}

func (a *AlertsAPI) UnreadCount(ctx context.Context) (int, error) {
	var out models.UnreadCount
	err := a.c.get(ctx, "/finance/alertas/contador-nao-lidos", nil, &out)
	return out.Count, err
}

func (a *AlertsAPI) MarkRead(ctx context.Context, id int64) error {
	return a.c.patch(ctx, fmt.Sprintf("/finance/alertas/%d/marcar-lido", id), nil, nil)
}

func (a *AlertsAPI) MarkAllRead(ctx context.Context) error {
	return a.c.patch(ctx, "/finance/alertas/marcar-todos-lidos", nil, nil)
}

func (a *AlertsAPI) Delete(ctx context.Context, id int64) error {
	return a.c.delete(ctx, fmt.Sprintf("/finance/alertas/%d", id))
}

func (a *AlertsAPI) Config(ctx context.Context) (models.AlertConfig, error) {
	var out models.AlertConfig
	err := a.c.get(ctx, "/finance/alertas/configuracao", nil, &out)
	return out, err
}

func (a *AlertsAPI) PatchConfig(ctx context.Context, patch models.AlertConfigPatch) (models.AlertConfig, error) {
	var out models.AlertConfig
	err := a.c.patch(ctx, "/finance/alertas/configuracao", patch, &out)
	return out, err
}

// Generate asks the server to produce alerts now instead of waiting for
// the scheduled job.
func (a *AlertsAPI) Generate(ctx context.Context) (int, error) {
	var out struct {
		Created int `json:"created"`
	}
	err := a.c.post(ctx, "/finance/alertas/gerar", nil, &out)
	return out.Created, err
}
