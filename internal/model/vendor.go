package model

import "github.com/google/uuid"

type Address struct {
	BaseModel
	Line1   string `gorm:"type:varchar(120)" json:"line1"`
	Line2   string `gorm:"type:varchar(120)" json:"line2"`
	City    string `gorm:"type:varchar(120)" json:"city"`
	State   string `gorm:"type:varchar(2)" json:"state" validate:"omitempty,us_state"`
	Zipcode string `gorm:"type:varchar(16)" json:"zipcode" validate:"max=16"`
}

type Vendor struct {
	BaseModel
	Name    string `gorm:"type:varchar(120);uniqueIndex;not null" json:"name" validate:"required,max=120"`
	Contact string `gorm:"type:varchar(120)" json:"contact" validate:"max=120"`
	Phone   string `gorm:"type:varchar(15)" json:"phone" validate:"max=15"`
	Website string `gorm:"type:varchar(120)" json:"website" validate:"max=120"`

	AddressID *uuid.UUID `gorm:"type:uuid" json:"address_id,omitempty"`
	Address   *Address   `json:"address,omitempty"`

	PurchaseOrders []PurchaseOrder `json:"purchase_orders,omitempty" validate:"-"`
}
