package clients

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/visionday/hub/internal/platform/httpx"
	"github.com/visionday/hub/pkg/models"
)

func TestCreateDefaultsToActive(t *testing.T) {
	svc := NewService(NewRepository())

	c, err := svc.Create(context.Background(), models.ClientInput{Name: "  Acme Ltda  ", Email: "billing@acme.com"})
	require.NoError(t, err)
	require.Equal(t, "Acme Ltda", c.Name)
	require.True(t, c.Active)

	_, err = svc.Create(context.Background(), models.ClientInput{Name: "   "})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestListHidesInactiveByDefault(t *testing.T) {
	svc := NewService(NewRepository())
	ctx := context.Background()

	_, err := svc.Create(ctx, models.ClientInput{Name: "Active Co"})
	require.NoError(t, err)
	inactive := false
	_, err = svc.Create(ctx, models.ClientInput{Name: "Gone Co", Active: &inactive})
	require.NoError(t, err)

	visible, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	require.Equal(t, "Active Co", visible[0].Name)

	all, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestPatchDeactivatesWithoutLosingHistory(t *testing.T) {
	svc := NewService(NewRepository())
	ctx := context.Background()

	c, err := svc.Create(ctx, models.ClientInput{Name: "Acme", Phone: "11 99999-0000"})
	require.NoError(t, err)

	inactive := false
	patched, err := svc.Patch(ctx, c.ID, models.ClientInput{Active: &inactive})
	require.NoError(t, err)
	require.False(t, patched.Active)
	require.Equal(t, "Acme", patched.Name)
	require.Equal(t, "11 99999-0000", patched.Phone)

	// The record is still reachable by id.
	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	require.False(t, got.Active)
}

func TestSearchMatchesActiveOnly(t *testing.T) {
	svc := NewService(NewRepository())
	ctx := context.Background()

	_, err := svc.Create(ctx, models.ClientInput{Name: "Padaria do Bairro"})
	require.NoError(t, err)
	inactive := false
	_, err = svc.Create(ctx, models.ClientInput{Name: "Padaria Antiga", Active: &inactive})
	require.NoError(t, err)

	found, err := svc.Search(ctx, "padaria")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "Padaria do Bairro", found[0].Name)
}

func TestDeleteMissingClient(t *testing.T) {
	svc := NewService(NewRepository())
	require.ErrorIs(t, svc.Delete(context.Background(), 42), httpx.ErrNotFound)
}
