package model

import (
	"time"

	"github.com/google/uuid"
)

type PurchaseOrder struct {
	BaseModel
	Code      string     `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"`
	VendorID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Vendor    *Vendor    `json:"vendor,omitempty"`
	CreatedOn time.Time  `gorm:"not null" json:"created_on"`
	LineItems []LineItem `json:"line_items"`
}

// Total sums the line totals in minor currency units.
func (po *PurchaseOrder) Total() int64 {
	var total int64
	for i := range po.LineItems {
		total += po.LineItems[i].TotalPrice()
	}
	return total
}

type LineItem struct {
	BaseModel
	PurchaseOrderID uuid.UUID  `gorm:"type:uuid;not null;index" json:"purchase_order_id"`
	ComponentID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"component_id"`
	Component       *Component `json:"component,omitempty"`
	Quantity        int        `gorm:"not null" json:"quantity"`
	UnitPrice       int64      `gorm:"not null" json:"unit_price"` // minor units (cents)
}

func (li *LineItem) TotalPrice() int64 {
	return int64(li.Quantity) * li.UnitPrice
}
