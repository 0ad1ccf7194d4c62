package services

import (
	"context"

	"gorm.io/gorm"

	"clubhouse/internal/events"
	"clubhouse/internal/models"
	"clubhouse/internal/ordering"
)

// GalleryStore manages the single flat, ordered photo gallery. Same
// dense-order contract as info blocks, one partition.
type GalleryStore struct {
	db *gorm.DB
}

func NewGalleryStore(db *gorm.DB) *GalleryStore {
	return &GalleryStore{db: db}
}

func (s *GalleryStore) List(ctx context.Context) ([]*models.GalleryImage, error) {
	var images []*models.GalleryImage
	if err := s.db.WithContext(ctx).Order("sort_order ASC").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

func (s *GalleryStore) Get(ctx context.Context, id string) (*models.GalleryImage, error) {
	image := &models.GalleryImage{}
	if err := s.db.WithContext(ctx).First(image, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return image, nil
}

// Create appends the image at the end of the gallery.
func (s *GalleryStore) Create(ctx context.Context, image *models.GalleryImage) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.GalleryImage{}).Count(&count).Error; err != nil {
			return err
		}
		image.ID = ""
		image.Order = int(count)
		return tx.Create(image).Error
	})
	if err != nil {
		return err
	}

	events.Emit("gallery.created", image)
	return nil
}

// Update replaces the title. The storage path and order are fixed;
// Move is the only path that touches order.
func (s *GalleryStore) Update(ctx context.Context, id string, image *models.GalleryImage) error {
	prior, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	image.ID = prior.ID
	image.StoragePath = prior.StoragePath
	image.Order = prior.Order
	image.CreatedAt = prior.CreatedAt

	if err := s.db.WithContext(ctx).Save(image).Error; err != nil {
		return err
	}

	events.Emit("gallery.updated", image)
	return nil
}

// Delete removes the image record and renumbers the rest of the
// gallery. The stored blob is the caller's to clean up.
func (s *GalleryStore) Delete(ctx context.Context, id string) error {
	image, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.GalleryImage{}, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Model(&models.GalleryImage{}).
			Where("sort_order > ?", image.Order).
			UpdateColumn("sort_order", gorm.Expr("sort_order - 1")).Error
	})
	if err != nil {
		return err
	}

	events.Emit("gallery.deleted", id)
	return nil
}

// Move swaps the image at index with its neighbor, both order writes in
// one transaction with the same stale-read guard as info blocks.
func (s *GalleryStore) Move(ctx context.Context, index int, dir ordering.Direction) ([]*models.GalleryImage, error) {
	images, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	readOrder := make(map[string]int, len(images))
	for _, img := range images {
		readOrder[img.ID] = img.Order
	}

	changed, ok := ordering.MoveOne(images, index, dir)
	if !ok {
		return images, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, img := range changed {
			result := tx.Model(&models.GalleryImage{}).
				Where("id = ? AND sort_order = ?", img.ID, readOrder[img.ID]).
				UpdateColumn("sort_order", img.Order)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return ErrOrderingConflict
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	events.Emit("gallery.reordered", images)
	return images, nil
}
