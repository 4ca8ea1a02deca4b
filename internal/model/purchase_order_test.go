package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPurchaseOrderTotal(t *testing.T) {
	po := PurchaseOrder{LineItems: []LineItem{
		{Quantity: 10, UnitPrice: 299},
		{Quantity: 3, UnitPrice: 1500},
	}}
	assert.Equal(t, int64(2990), po.LineItems[0].TotalPrice())
	assert.Equal(t, int64(2990+4500), po.Total())
	assert.Zero(t, (&PurchaseOrder{}).Total())
}

func TestTransactionDirection(t *testing.T) {
	in := Transaction{Qty: 6}
	out := Transaction{Qty: -2}
	assert.Equal(t, TxIn, in.direction())
	assert.Equal(t, TxOut, out.direction())
}

func TestUserPassword(t *testing.T) {
	u := User{}
	assert.NoError(t, u.SetPassword("admin_user"))
	assert.NotEqual(t, "admin_user", u.Password)
	assert.True(t, u.CheckPassword("admin_user"))
	assert.False(t, u.CheckPassword("wrong"))
}
