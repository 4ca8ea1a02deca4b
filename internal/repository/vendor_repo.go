package repository

import (
	"context"

	"go-parts-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VendorRepository interface {
	Create(ctx context.Context, vendor *model.Vendor) error
	FindAll(ctx context.Context) ([]model.Vendor, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error)
	FindByName(ctx context.Context, name string) (*model.Vendor, error)
	Update(ctx context.Context, vendor *model.Vendor) error
}

type vendorRepo struct {
	db *gorm.DB
}

func NewVendorRepo(db *gorm.DB) VendorRepository {
	return &vendorRepo{db}
}

func (r *vendorRepo) Create(ctx context.Context, vendor *model.Vendor) error {
	return r.db.WithContext(ctx).Omit("PurchaseOrders").Create(vendor).Error
}

func (r *vendorRepo) FindAll(ctx context.Context) ([]model.Vendor, error) {
	var vendors []model.Vendor
	err := r.db.WithContext(ctx).Preload("Address").Order("name ASC").Find(&vendors).Error
	return vendors, err
}

func (r *vendorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	var vendor model.Vendor
	err := r.db.WithContext(ctx).
		Preload("Address").
		Preload("PurchaseOrders", func(db *gorm.DB) *gorm.DB { return db.Order("created_on DESC") }).
		Preload("PurchaseOrders.LineItems").
		First(&vendor, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepo) FindByName(ctx context.Context, name string) (*model.Vendor, error) {
	var vendor model.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// Update saves the vendor and its address in one transaction.
func (r *vendorRepo) Update(ctx context.Context, vendor *model.Vendor) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if vendor.Address != nil {
			if err := tx.Save(vendor.Address).Error; err != nil {
				return err
			}
			vendor.AddressID = &vendor.Address.ID
		}
		return tx.Omit("Address", "PurchaseOrders").Save(vendor).Error
	})
}
