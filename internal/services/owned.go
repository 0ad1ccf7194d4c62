package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"clubhouse/internal/events"
	"clubhouse/internal/models"
	"clubhouse/internal/slug"
)

// Ownable is any model embedding models.Owned.
type Ownable interface {
	Meta() *models.Owned
}

// OwnedStore is the generic store for owned content collections
// (events, news, resources). It stamps ownership, attribution and slugs
// on every write; callers are responsible for authorization before the
// mutating call reaches it.
type OwnedStore[T any, PT interface {
	*T
	Ownable
}] struct {
	db         *gorm.DB
	collection string
}

// NewOwnedStore creates a store for one collection. collection is the
// table/collection name used for event topics ("events", "news",
// "resources").
func NewOwnedStore[T any, PT interface {
	*T
	Ownable
}](db *gorm.DB, collection string) *OwnedStore[T, PT] {
	return &OwnedStore[T, PT]{db: db, collection: collection}
}

// List returns the whole collection, newest first. Public read.
func (s *OwnedStore[T, PT]) List(ctx context.Context) ([]T, error) {
	var entities []T
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// ListMine returns the records owned by uid, newest first. Backs the
// "my resources" view editors manage their own content from.
func (s *OwnedStore[T, PT]) ListMine(ctx context.Context, uid string) ([]T, error) {
	var entities []T
	if err := s.db.WithContext(ctx).Where("user_id = ?", uid).Order("created_at DESC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (s *OwnedStore[T, PT]) Get(ctx context.Context, id string) (PT, error) {
	entity := PT(new(T))
	if err := s.db.WithContext(ctx).First(entity, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *OwnedStore[T, PT]) GetBySlug(ctx context.Context, slugValue string) (PT, error) {
	entity := PT(new(T))
	if err := s.db.WithContext(ctx).First(entity, "slug = ?", slugValue).Error; err != nil {
		return nil, err
	}
	return entity, nil
}

// Create stamps the actor as owner and creator, assigns a unique slug
// from the title and inserts the record.
func (s *OwnedStore[T, PT]) Create(ctx context.Context, actor *models.User, entity PT) error {
	meta := entity.Meta()
	meta.ID = ""
	meta.UserID = actor.ID
	meta.CreatedBy = actor.Attribution()
	meta.UpdatedBy = actor.Attribution()

	uniqueSlug, err := s.uniqueSlug(ctx, meta.Title, "")
	if err != nil {
		return err
	}
	meta.Slug = uniqueSlug

	if err := s.db.WithContext(ctx).Create(entity).Error; err != nil {
		return err
	}

	events.Emit(fmt.Sprintf("%s.created", s.collection), entity)
	return nil
}

// Update performs a full-record update. The owner uid, creation
// attribution and creation time always survive from the prior record;
// the slug is regenerated only when the title changed, excluding the
// record's own prior slug from the uniqueness check so a no-op title
// edit keeps the slug stable.
func (s *OwnedStore[T, PT]) Update(ctx context.Context, id string, actor *models.User, entity PT) error {
	prior, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	priorMeta := prior.Meta()

	meta := entity.Meta()
	meta.ID = priorMeta.ID
	meta.UserID = priorMeta.UserID
	meta.CreatedAt = priorMeta.CreatedAt
	meta.CreatedBy = priorMeta.CreatedBy
	meta.UpdatedBy = actor.Attribution()

	if meta.Title != priorMeta.Title {
		uniqueSlug, err := s.uniqueSlug(ctx, meta.Title, id)
		if err != nil {
			return err
		}
		meta.Slug = uniqueSlug
	} else {
		meta.Slug = priorMeta.Slug
	}

	if err := s.db.WithContext(ctx).Save(entity).Error; err != nil {
		return err
	}

	events.Emit(fmt.Sprintf("%s.updated", s.collection), entity)
	return nil
}

// Delete removes the record. Hard removal, no tombstone.
func (s *OwnedStore[T, PT]) Delete(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	events.Emit(fmt.Sprintf("%s.deleted", s.collection), id)
	return nil
}

// uniqueSlug builds a slug from title that is unique within the
// collection. excludeID drops the record's own row from the uniqueness
// snapshot when re-slugging an update.
func (s *OwnedStore[T, PT]) uniqueSlug(ctx context.Context, title, excludeID string) (string, error) {
	var existing []string
	query := s.db.WithContext(ctx).Model(new(T))
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Pluck("slug", &existing).Error; err != nil {
		return "", err
	}
	return slug.MakeUnique(slug.Generate(title), existing), nil
}
