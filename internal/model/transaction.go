package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TxIn  TransactionType = "IN"
	TxOut TransactionType = "OUT"
)

// Transaction is one immutable ledger row. Qty is signed: positive for a
// check-in, negative for a check-out.
type Transaction struct {
	BaseModel
	ComponentID uuid.UUID  `gorm:"type:uuid;not null;index" json:"component_id"`
	Component   *Component `gorm:"constraint:OnDelete:RESTRICT;" json:"component,omitempty"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User      `json:"user,omitempty"`
	Qty         int        `gorm:"not null" json:"qty"`
	Notes       string     `gorm:"type:text" json:"notes"`

	Direction TransactionType `gorm:"-" json:"type"`
}

func (t *Transaction) direction() TransactionType {
	if t.Qty < 0 {
		return TxOut
	}
	return TxIn
}

func (t *Transaction) AfterCreate(tx *gorm.DB) error {
	t.Direction = t.direction()
	return nil
}

func (t *Transaction) AfterFind(tx *gorm.DB) error {
	t.Direction = t.direction()
	return nil
}
