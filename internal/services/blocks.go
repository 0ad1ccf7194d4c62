package services

import (
	"context"

	"gorm.io/gorm"

	"clubhouse/internal/events"
	"clubhouse/internal/models"
	"clubhouse/internal/ordering"
)

// InfoBlockStore manages the ordered info blocks of the static pages.
// Blocks are ownerless; the API layer only lets admins through to the
// mutating methods.
type InfoBlockStore struct {
	db *gorm.DB
}

func NewInfoBlockStore(db *gorm.DB) *InfoBlockStore {
	return &InfoBlockStore{db: db}
}

// ListPartition returns one (page, sub) partition in display order.
func (s *InfoBlockStore) ListPartition(ctx context.Context, page, sub string) ([]*models.InfoBlock, error) {
	if !models.ValidPartition(page, sub) {
		return nil, ErrInvalidPartition
	}
	var blocks []*models.InfoBlock
	err := s.db.WithContext(ctx).
		Where("page = ? AND sub = ?", page, sub).
		Order("sort_order ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

func (s *InfoBlockStore) Get(ctx context.Context, id string) (*models.InfoBlock, error) {
	block := &models.InfoBlock{}
	if err := s.db.WithContext(ctx).First(block, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return block, nil
}

// Create appends the block at the end of its partition, keeping the
// order values dense.
func (s *InfoBlockStore) Create(ctx context.Context, block *models.InfoBlock) error {
	if !models.ValidPartition(block.Page, block.Sub) {
		return ErrInvalidPartition
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.InfoBlock{}).
			Where("page = ? AND sub = ?", block.Page, block.Sub).
			Count(&count).Error; err != nil {
			return err
		}
		block.ID = ""
		block.Order = int(count)
		return tx.Create(block).Error
	})
	if err != nil {
		return err
	}

	events.Emit("info_blocks.created", block)
	return nil
}

// Update replaces title and body. A block never moves between
// partitions and never changes order through Update; Move is the only
// path that touches order.
func (s *InfoBlockStore) Update(ctx context.Context, id string, block *models.InfoBlock) error {
	prior, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	block.ID = prior.ID
	block.Page = prior.Page
	block.Sub = prior.Sub
	block.Order = prior.Order
	block.CreatedAt = prior.CreatedAt

	if err := s.db.WithContext(ctx).Save(block).Error; err != nil {
		return err
	}

	events.Emit("info_blocks.updated", block)
	return nil
}

// Delete removes the block and renumbers the remainder of its partition
// so the dense invariant holds.
func (s *InfoBlockStore) Delete(ctx context.Context, id string) error {
	block, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.InfoBlock{}, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Model(&models.InfoBlock{}).
			Where("page = ? AND sub = ? AND sort_order > ?", block.Page, block.Sub, block.Order).
			UpdateColumn("sort_order", gorm.Expr("sort_order - 1")).Error
	})
	if err != nil {
		return err
	}

	events.Emit("info_blocks.deleted", id)
	return nil
}

// Move swaps the block at index with its neighbor, writing both order
// fields inside one transaction. Each write asserts the order value it
// read; if another writer got there first the transaction rolls back
// with ErrOrderingConflict and the caller re-fetches canonical order.
func (s *InfoBlockStore) Move(ctx context.Context, page, sub string, index int, dir ordering.Direction) ([]*models.InfoBlock, error) {
	blocks, err := s.ListPartition(ctx, page, sub)
	if err != nil {
		return nil, err
	}

	readOrder := make(map[string]int, len(blocks))
	for _, b := range blocks {
		readOrder[b.ID] = b.Order
	}

	changed, ok := ordering.MoveOne(blocks, index, dir)
	if !ok {
		// Boundary moves are a no-op, not an error.
		return blocks, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, b := range changed {
			result := tx.Model(&models.InfoBlock{}).
				Where("id = ? AND sort_order = ?", b.ID, readOrder[b.ID]).
				UpdateColumn("sort_order", b.Order)
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

	events.Emit("info_blocks.reordered", blocks)
	return blocks, nil
}
