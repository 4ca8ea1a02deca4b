package model

// All lists every persisted model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Address{},
		&Vendor{},
		&Component{},
		&Tag{},
		&TagCategory{},
		&Transaction{},
		&PurchaseOrder{},
		&LineItem{},
	}
}
