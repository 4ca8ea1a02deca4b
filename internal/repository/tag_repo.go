package repository

import (
	"context"

	"go-parts-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepository interface {
	// FindOrCreate returns the tag with the given canonical name, inserting it
	// first if needed. The unique index on name makes concurrent callers
	// converge on a single row.
	FindOrCreate(ctx context.Context, name string) (*model.Tag, error)
	FindOrCreateCategory(ctx context.Context, name string) (*model.TagCategory, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tag, error)
	FindByName(ctx context.Context, name string) (*model.Tag, error)
	FindAll(ctx context.Context) ([]model.Tag, error)
	FindUncategorized(ctx context.Context) ([]model.Tag, error)
	FindCategories(ctx context.Context) ([]model.TagCategory, error)
	FindByComponent(ctx context.Context, componentID uuid.UUID) ([]model.Tag, error)

	HasCategory(ctx context.Context, tagID, categoryID uuid.UUID) (bool, error)
	AddCategory(ctx context.Context, tag *model.Tag, category *model.TagCategory) error
	ComponentHasTag(ctx context.Context, componentID, tagID uuid.UUID) (bool, error)
	AddToComponent(ctx context.Context, component *model.Component, tag *model.Tag) error
	RemoveFromComponent(ctx context.Context, component *model.Component, tag *model.Tag) error

	// Delete removes the tag row and every join row that references it.
	Delete(ctx context.Context, tag *model.Tag) error
}

type tagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) TagRepository {
	return &tagRepo{db}
}

func (r *tagRepo) FindOrCreate(ctx context.Context, name string) (*model.Tag, error) {
	db := r.db.WithContext(ctx)
	candidate := model.Tag{Name: name}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Omit(clause.Associations).Create(&candidate).Error
	if err != nil {
		return nil, err
	}
	return r.FindByName(ctx, name)
}

func (r *tagRepo) FindOrCreateCategory(ctx context.Context, name string) (*model.TagCategory, error) {
	db := r.db.WithContext(ctx)
	candidate := model.TagCategory{Name: name}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Omit(clause.Associations).Create(&candidate).Error
	if err != nil {
		return nil, err
	}

	var category model.TagCategory
	if err := db.First(&category, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *tagRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).Preload("Categories").First(&tag, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepo) FindByName(ctx context.Context, name string) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).Preload("Categories").First(&tag, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepo) FindAll(ctx context.Context) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.WithContext(ctx).Preload("Categories").Order("name ASC").Find(&tags).Error
	return tags, err
}

func (r *tagRepo) FindUncategorized(ctx context.Context) ([]model.Tag, error) {
	tags := []model.Tag{}
	err := r.db.WithContext(ctx).
		Where("NOT EXISTS (SELECT 1 FROM category_tags ct WHERE ct.tag_id = tags.id)").
		Order("name ASC").
		Find(&tags).Error
	return tags, err
}

func (r *tagRepo) FindCategories(ctx context.Context) ([]model.TagCategory, error) {
	categories := []model.TagCategory{}
	err := r.db.WithContext(ctx).Preload("Tags", orderByName).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *tagRepo) FindByComponent(ctx context.Context, componentID uuid.UUID) ([]model.Tag, error) {
	tags := []model.Tag{}
	err := r.db.WithContext(ctx).
		Joins("JOIN component_tags ct ON ct.tag_id = tags.id").
		Where("ct.component_id = ?", componentID).
		Order("tags.name ASC").
		Find(&tags).Error
	return tags, err
}

func (r *tagRepo) HasCategory(ctx context.Context, tagID, categoryID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("category_tags").
		Where("tag_id = ? AND tag_category_id = ?", tagID, categoryID).
		Count(&count).Error
	return count > 0, err
}

func (r *tagRepo) AddCategory(ctx context.Context, tag *model.Tag, category *model.TagCategory) error {
	return r.db.WithContext(ctx).Model(tag).Omit("Categories.*").Association("Categories").Append(category)
}

func (r *tagRepo) ComponentHasTag(ctx context.Context, componentID, tagID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("component_tags").
		Where("component_id = ? AND tag_id = ?", componentID, tagID).
		Count(&count).Error
	return count > 0, err
}

func (r *tagRepo) AddToComponent(ctx context.Context, component *model.Component, tag *model.Tag) error {
	return r.db.WithContext(ctx).Model(component).Omit("Tags.*").Association("Tags").Append(tag)
}

func (r *tagRepo) RemoveFromComponent(ctx context.Context, component *model.Component, tag *model.Tag) error {
	return r.db.WithContext(ctx).Model(component).Association("Tags").Delete(tag)
}

func (r *tagRepo) Delete(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(tag).Association("Components").Clear(); err != nil {
			return err
		}
		if err := tx.Model(tag).Association("Categories").Clear(); err != nil {
			return err
		}
		return tx.Unscoped().Delete(tag).Error
	})
}
