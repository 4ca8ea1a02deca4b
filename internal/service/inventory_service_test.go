package service

import (
	"context"
	"testing"

	"go-parts-inventory/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryComponentLifecycle(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	actor := seedActor(t, db, "clerk@example.com")
	inventory := NewInventoryService(repository.NewComponentRepo(db), repository.NewTransactionRepo(db), nil, nil)
	ledger := NewLedgerService(db, nil, nil, nil)

	created, err := inventory.CreateComponent(ctx, &ComponentRequest{SKU: " 12345 ", Description: "widget"}, actor)
	require.NoError(t, err)
	assert.Equal(t, "12345", created.SKU)
	assert.Equal(t, 0, created.Quantity)
	assert.Equal(t, actor.ID.String(), created.CreatedBy)

	_, err = inventory.CreateComponent(ctx, &ComponentRequest{SKU: "12345", Description: "another widget"}, actor)
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = ledger.CheckIn(ctx, created.ID, 8, "", actor)
	require.NoError(t, err)

	got, err := inventory.GetComponent(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Quantity)
	assert.Equal(t, "widget", got.Description)

	updated, err := inventory.UpdateComponent(ctx, created.ID, &ComponentRequest{SKU: "12345-A", Description: "widget, rev A"}, actor)
	require.NoError(t, err)
	assert.Equal(t, "12345-A", updated.SKU)
	assert.Equal(t, 8, updated.Quantity)

	other, err := inventory.CreateComponent(ctx, &ComponentRequest{SKU: "99999", Description: "gizmo"}, actor)
	require.NoError(t, err)
	_, err = inventory.UpdateComponent(ctx, other.ID, &ComponentRequest{SKU: "12345-A", Description: "gizmo"}, actor)
	assert.ErrorIs(t, err, ErrDuplicate)

	all, err := inventory.GetAllComponents(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "12345-A", all[0].SKU)
	assert.Equal(t, 8, all[0].Quantity)
	assert.Equal(t, 0, all[1].Quantity)
}

func TestInventoryValidation(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	inventory := NewInventoryService(repository.NewComponentRepo(db), repository.NewTransactionRepo(db), nil, nil)

	_, err := inventory.CreateComponent(ctx, &ComponentRequest{SKU: "   ", Description: "blank sku"}, Actor{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "sku", verr.Field)

	_, err = inventory.GetComponent(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = inventory.UpdateComponent(ctx, uuid.New(), &ComponentRequest{SKU: "1", Description: "x"}, Actor{})
	assert.ErrorIs(t, err, ErrNotFound)
}
