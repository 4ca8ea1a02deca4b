package repository

import (
	"context"

	"go-parts-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ComponentRepository interface {
	Create(ctx context.Context, component *model.Component) error
	FindAll(ctx context.Context) ([]model.Component, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Component, error)
	FindBySKU(ctx context.Context, sku string) (*model.Component, error)
	// LockByID loads the component with a row lock held until the surrounding transaction ends.
	LockByID(ctx context.Context, id uuid.UUID) (*model.Component, error)
	Update(ctx context.Context, component *model.Component) error
}

type componentRepo struct {
	db *gorm.DB
}

func NewComponentRepo(db *gorm.DB) ComponentRepository {
	return &componentRepo{db}
}

func (r *componentRepo) Create(ctx context.Context, component *model.Component) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(component).Error
}

func (r *componentRepo) FindAll(ctx context.Context) ([]model.Component, error) {
	var components []model.Component
	err := r.db.WithContext(ctx).Preload("Tags", orderByName).Order("sku ASC").Find(&components).Error
	return components, err
}

func (r *componentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Component, error) {
	var component model.Component
	if err := r.db.WithContext(ctx).Preload("Tags", orderByName).First(&component, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &component, nil
}

func (r *componentRepo) FindBySKU(ctx context.Context, sku string) (*model.Component, error) {
	var component model.Component
	if err := r.db.WithContext(ctx).First(&component, "sku = ?", sku).Error; err != nil {
		return nil, err
	}
	return &component, nil
}

func (r *componentRepo) LockByID(ctx context.Context, id uuid.UUID) (*model.Component, error) {
	var component model.Component
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&component, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &component, nil
}

func (r *componentRepo) Update(ctx context.Context, component *model.Component) error {
	return r.db.WithContext(ctx).Model(component).
		Select("sku", "description", "updated_by").
		Updates(component).Error
}

func orderByName(db *gorm.DB) *gorm.DB {
	return db.Order("name ASC")
}
