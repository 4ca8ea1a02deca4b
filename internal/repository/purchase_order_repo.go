package repository

import (
	"context"

	"go-parts-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *model.PurchaseOrder) error
	FindAll(ctx context.Context) ([]model.PurchaseOrder, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error)
}

type purchaseOrderRepo struct {
	db *gorm.DB
}

func NewPurchaseOrderRepo(db *gorm.DB) PurchaseOrderRepository {
	return &purchaseOrderRepo{db}
}

// Create inserts the order header and its line items.
func (r *purchaseOrderRepo) Create(ctx context.Context, order *model.PurchaseOrder) error {
	return r.db.WithContext(ctx).Omit("Vendor").Create(order).Error
}

func (r *purchaseOrderRepo) FindAll(ctx context.Context) ([]model.PurchaseOrder, error) {
	var orders []model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		Preload("LineItems").
		Order("created_on DESC").
		Find(&orders).Error
	return orders, err
}

func (r *purchaseOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PurchaseOrder, error) {
	var order model.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		Preload("Vendor.Address").
		Preload("LineItems.Component").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}
