package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"go-parts-inventory/internal/metrics"
	"go-parts-inventory/internal/model"
	"go-parts-inventory/internal/repository"
	"go-parts-inventory/internal/ws"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// maxNameLength matches the varchar(120) tag and category name columns.
const maxNameLength = 120

// CanonicalName trims surrounding whitespace and upper-cases the rest with
// full Unicode case mapping. Tag and category names are stored in this form.
func CanonicalName(raw string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(raw))
}

type TagService interface {
	ResolveTag(ctx context.Context, rawName string) (*model.Tag, error)
	// ResolveCategory returns nil, nil for blank input: no category requested.
	ResolveCategory(ctx context.Context, rawName string) (*model.TagCategory, error)
	ApplyTag(ctx context.Context, componentID uuid.UUID, rawTag, rawCategory string, actor Actor) (*model.Tag, error)
	CreateTag(ctx context.Context, rawTag, rawCategory string) (*model.Tag, error)
	RemoveTagFromComponent(ctx context.Context, componentID, tagID uuid.UUID) error
	DeleteTag(ctx context.Context, tagID uuid.UUID) (uuid.UUID, error)
	ListTags(ctx context.Context) ([]model.Tag, error)
	ListUncategorized(ctx context.Context) ([]model.Tag, error)
	ListCategories(ctx context.Context) ([]model.TagCategory, error)
	ComponentTags(ctx context.Context, componentID uuid.UUID) ([]model.Tag, error)
}

type tagService struct {
	db      *gorm.DB
	wsHub   *ws.Hub
	metrics *metrics.Metrics
	log     *slog.Logger
}

func NewTagService(db *gorm.DB, hub *ws.Hub, m *metrics.Metrics, log *slog.Logger) TagService {
	if log == nil {
		log = slog.Default()
	}
	return &tagService{db: db, wsHub: hub, metrics: m, log: log}
}

func (s *tagService) ResolveTag(ctx context.Context, rawName string) (*model.Tag, error) {
	return resolveTag(ctx, repository.NewTagRepo(s.db), rawName)
}

func (s *tagService) ResolveCategory(ctx context.Context, rawName string) (*model.TagCategory, error) {
	return resolveCategory(ctx, repository.NewTagRepo(s.db), rawName)
}

func resolveTag(ctx context.Context, tags repository.TagRepository, rawName string) (*model.Tag, error) {
	name := CanonicalName(rawName)
	if name == "" {
		return nil, invalid("tag_name", "tag name cannot be blank")
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, invalid("tag_name", "tag name is too long")
	}
	return tags.FindOrCreate(ctx, name)
}

func resolveCategory(ctx context.Context, tags repository.TagRepository, rawName string) (*model.TagCategory, error) {
	name := CanonicalName(rawName)
	if name == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, invalid("category", "category name is too long")
	}
	return tags.FindOrCreateCategory(ctx, name)
}

// categorize links tag to category unless the link already exists.
func categorize(ctx context.Context, tags repository.TagRepository, tag *model.Tag, category *model.TagCategory) error {
	if category == nil {
		return nil
	}
	linked, err := tags.HasCategory(ctx, tag.ID, category.ID)
	if err != nil || linked {
		return err
	}
	if err := tags.AddCategory(ctx, tag, category); err != nil {
		return err
	}
	tag.Categories = append(tag.Categories, *category)
	return nil
}

func (s *tagService) ApplyTag(ctx context.Context, componentID uuid.UUID, rawTag, rawCategory string, actor Actor) (*model.Tag, error) {
	var (
		tag       *model.Tag
		component *model.Component
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		component, err = repository.NewComponentRepo(tx).FindByID(ctx, componentID)
		if err != nil {
			return lookupErr(err, "component")
		}

		tags := repository.NewTagRepo(tx)
		if tag, err = resolveTag(ctx, tags, rawTag); err != nil {
			return err
		}
		category, err := resolveCategory(ctx, tags, rawCategory)
		if err != nil {
			return err
		}
		if err := categorize(ctx, tags, tag, category); err != nil {
			return err
		}

		linked, err := tags.ComponentHasTag(ctx, component.ID, tag.ID)
		if err != nil || linked {
			return err
		}
		return tags.AddToComponent(ctx, component, tag)
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ObserveTagApplied()
	s.log.Info("component tagged", "sku", component.SKU, "tag", tag.Name, "user", actor.Email)
	s.wsHub.Publish(ws.Event{
		Type:   "tag_update",
		Action: "tag_applied",
		Data: map[string]interface{}{
			"component_id": component.ID,
			"sku":          component.SKU,
			"tag":          tag,
		},
		User:    actor.summary(),
		Message: fmt.Sprintf("%s has been tagged with %s", component.SKU, tag.Name),
	})
	return tag, nil
}

func (s *tagService) CreateTag(ctx context.Context, rawTag, rawCategory string) (*model.Tag, error) {
	var tag *model.Tag
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags := repository.NewTagRepo(tx)
		var err error
		if tag, err = resolveTag(ctx, tags, rawTag); err != nil {
			return err
		}
		category, err := resolveCategory(ctx, tags, rawCategory)
		if err != nil {
			return err
		}
		return categorize(ctx, tags, tag, category)
	})
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *tagService) RemoveTagFromComponent(ctx context.Context, componentID, tagID uuid.UUID) error {
	component, err := repository.NewComponentRepo(s.db).FindByID(ctx, componentID)
	if err != nil {
		return lookupErr(err, "component")
	}
	tags := repository.NewTagRepo(s.db)
	tag, err := tags.FindByID(ctx, tagID)
	if err != nil {
		return lookupErr(err, "tag")
	}
	if err := tags.RemoveFromComponent(ctx, component, tag); err != nil {
		return err
	}

	s.wsHub.Publish(ws.Event{
		Type:   "tag_update",
		Action: "tag_removed",
		Data:   map[string]interface{}{"component_id": component.ID, "tag_id": tag.ID},
	})
	return nil
}

func (s *tagService) DeleteTag(ctx context.Context, tagID uuid.UUID) (uuid.UUID, error) {
	tags := repository.NewTagRepo(s.db)
	tag, err := tags.FindByID(ctx, tagID)
	if err != nil {
		return uuid.Nil, lookupErr(err, "tag")
	}
	if err := tags.Delete(ctx, tag); err != nil {
		return uuid.Nil, err
	}

	s.metrics.ObserveTagDeleted()
	s.log.Info("tag deleted", "tag", tag.Name, "id", tag.ID)
	s.wsHub.Publish(ws.Event{
		Type:   "tag_update",
		Action: "tag_deleted",
		Data:   map[string]interface{}{"tag_id": tag.ID, "name": tag.Name},
	})
	return tag.ID, nil
}

func (s *tagService) ListTags(ctx context.Context) ([]model.Tag, error) {
	return repository.NewTagRepo(s.db).FindAll(ctx)
}

func (s *tagService) ListUncategorized(ctx context.Context) ([]model.Tag, error) {
	return repository.NewTagRepo(s.db).FindUncategorized(ctx)
}

func (s *tagService) ListCategories(ctx context.Context) ([]model.TagCategory, error) {
	return repository.NewTagRepo(s.db).FindCategories(ctx)
}

func (s *tagService) ComponentTags(ctx context.Context, componentID uuid.UUID) ([]model.Tag, error) {
	if _, err := repository.NewComponentRepo(s.db).FindByID(ctx, componentID); err != nil {
		return nil, lookupErr(err, "component")
	}
	return repository.NewTagRepo(s.db).FindByComponent(ctx, componentID)
}
