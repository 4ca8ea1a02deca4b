package model

// Component is a stockable part. Its quantity is never stored; it is the sum
// of the qty column over the component's transactions.
type Component struct {
	BaseModel
	SKU         string `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required,max=50"`
	Description string `gorm:"type:varchar(255);not null" json:"description" validate:"required,max=255"`

	Tags         []Tag         `gorm:"many2many:component_tags;" json:"tags,omitempty" validate:"-"`
	Transactions []Transaction `json:"transactions,omitempty" validate:"-"`
}

// ComponentView pairs a component with its derived quantity.
type ComponentView struct {
	Component
	Quantity int `json:"quantity"`
}
