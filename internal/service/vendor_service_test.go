package service

import (
	"context"
	"strings"
	"testing"

	"go-parts-inventory/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorCreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	actor := seedActor(t, db, "buyer@example.com")
	vendors := NewVendorService(repository.NewVendorRepo(db), nil)

	acme, err := vendors.CreateVendor(ctx, &VendorRequest{
		Name:    " Acme Supply ",
		Contact: "Wile E.",
		Phone:   "555-0100",
		Line1:   "1 Canyon Rd",
		City:    "Tucson",
		State:   "az",
		Zipcode: "85701",
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, "Acme Supply", acme.Name)
	require.NotNil(t, acme.Address)
	assert.Equal(t, "AZ", acme.Address.State)

	_, err = vendors.CreateVendor(ctx, &VendorRequest{Name: "Acme Supply"}, actor)
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = vendors.CreateVendor(ctx, &VendorRequest{Name: "Bad State", State: "ZZ"}, actor)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "state", verr.Field)

	updated, err := vendors.UpdateVendor(ctx, acme.ID, &VendorRequest{
		Name:  "Acme Supply Co",
		City:  "Phoenix",
		State: "AZ",
	}, actor)
	require.NoError(t, err)
	assert.Equal(t, "Acme Supply Co", updated.Name)
	require.NotNil(t, updated.Address)
	assert.Equal(t, "Phoenix", updated.Address.City)

	other, err := vendors.CreateVendor(ctx, &VendorRequest{Name: "Roadrunner Parts"}, actor)
	require.NoError(t, err)
	_, err = vendors.UpdateVendor(ctx, other.ID, &VendorRequest{Name: "Acme Supply Co"}, actor)
	assert.ErrorIs(t, err, ErrDuplicate)

	all, err := vendors.GetAllVendors(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = vendors.GetVendor(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPurchaseOrderCreate(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	actor := seedActor(t, db, "buyer@example.com")
	widget := seedComponent(t, db, "12345", "widget")
	gadget := seedComponent(t, db, "67890", "gadget")
	vendors := NewVendorService(repository.NewVendorRepo(db), nil)
	orders := NewPurchaseOrderService(db, nil)

	vendor, err := vendors.CreateVendor(ctx, &VendorRequest{Name: "Acme Supply"}, actor)
	require.NoError(t, err)

	order, err := orders.CreatePurchaseOrder(ctx, vendor.ID, &PurchaseOrderRequest{LineItems: []LineItemRequest{
		{ComponentID: widget.ID, Quantity: 4, UnitPrice: 250},
		{ComponentID: gadget.ID, Quantity: 1, UnitPrice: 1999},
	}}, actor)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.Code, "PO-"))
	assert.Len(t, order.Code, len("PO-")+10)
	require.Len(t, order.LineItems, 2)
	assert.EqualValues(t, 4*250+1999, order.Total())
	require.NotNil(t, order.Vendor)
	assert.Equal(t, "Acme Supply", order.Vendor.Name)

	withOrders, err := vendors.GetVendor(ctx, vendor.ID)
	require.NoError(t, err)
	require.Len(t, withOrders.PurchaseOrders, 1)
	assert.Equal(t, order.Code, withOrders.PurchaseOrders[0].Code)

	all, err := orders.GetAllPurchaseOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPurchaseOrderRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	actor := seedActor(t, db, "buyer@example.com")
	widget := seedComponent(t, db, "12345", "widget")
	vendors := NewVendorService(repository.NewVendorRepo(db), nil)
	orders := NewPurchaseOrderService(db, nil)

	vendor, err := vendors.CreateVendor(ctx, &VendorRequest{Name: "Acme Supply"}, actor)
	require.NoError(t, err)

	_, err = orders.CreatePurchaseOrder(ctx, vendor.ID, &PurchaseOrderRequest{}, actor)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = orders.CreatePurchaseOrder(ctx, uuid.New(), &PurchaseOrderRequest{LineItems: []LineItemRequest{
		{ComponentID: widget.ID, Quantity: 1},
	}}, actor)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = orders.CreatePurchaseOrder(ctx, vendor.ID, &PurchaseOrderRequest{LineItems: []LineItemRequest{
		{ComponentID: uuid.New(), Quantity: 1},
	}}, actor)
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := orders.GetAllPurchaseOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
