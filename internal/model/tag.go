package model

// Tag is a free-text label stored under its canonical (trimmed, upper-cased)
// name. A tag with no categories is "uncategorized".
type Tag struct {
	BaseModel
	Name string `gorm:"type:varchar(120);uniqueIndex;not null" json:"name"`

	Categories []TagCategory `gorm:"many2many:category_tags;" json:"categories,omitempty"`
	Components []Component   `gorm:"many2many:component_tags;" json:"-"`
}

// TagCategory groups tags, e.g. "REGION" groups "WEST COAST".
type TagCategory struct {
	BaseModel
	Name string `gorm:"type:varchar(120);uniqueIndex;not null" json:"name"`

	Tags []Tag `gorm:"many2many:category_tags;" json:"tags"`
}
