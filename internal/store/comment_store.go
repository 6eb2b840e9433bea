package store

import (
	"context"
	"errors"

	"lirivelle/internal/apperr"
	"lirivelle/internal/models"

	"gorm.io/gorm"
)

// CommentStore persists comments. ListByContent always returns comments
// oldest first (created_at, then id), which is the order threads are built in.
type CommentStore interface {
	ListByContent(ctx context.Context, contentID uint) ([]models.Comment, error)
	Get(ctx context.Context, id uint) (*models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	DeleteCascade(ctx context.Context, id uint) ([]uint, error)
	CountByContent(ctx context.Context, contentIDs []uint) (map[uint]int64, error)
}

type GormCommentStore struct {
	db *gorm.DB
}

func NewCommentStore(db *gorm.DB) *GormCommentStore {
	return &GormCommentStore{db: db}
}

func (s *GormCommentStore) ListByContent(ctx context.Context, contentID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where("content_id = ?", contentID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, apperr.Store("list comments", err)
	}
	return comments, nil
}

func (s *GormCommentStore) Get(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("comment not found")
		}
		return nil, apperr.Store("get comment", err)
	}
	return &comment, nil
}

// Create checks the owning content item and the parent comment, then inserts,
// all in one transaction. A parent under a different content item counts as
// missing.
func (s *GormCommentStore) Create(ctx context.Context, comment *models.Comment) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.ContentItem
		if err := tx.Select("id").First(&item, comment.ContentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("content not found")
			}
			return apperr.Store("find content", err)
		}

		if comment.ParentID != nil {
			var parent models.Comment
			if err := tx.Select("id", "content_id").First(&parent, *comment.ParentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("parent comment not found")
				}
				return apperr.Store("find parent comment", err)
			}
			if parent.ContentID != comment.ContentID {
				return apperr.NotFound("parent comment not found")
			}
		}

		if err := tx.Create(comment).Error; err != nil {
			return apperr.Store("create comment", err)
		}
		return nil
	})
}

// DeleteCascade removes the comment and every transitive reply in a single
// transaction and returns the removed ids, root first.
func (s *GormCommentStore) DeleteCascade(ctx context.Context, id uint) ([]uint, error) {
	var deleted []uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var root models.Comment
		if err := tx.Select("id").First(&root, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("comment not found")
			}
			return apperr.Store("find comment", err)
		}

		ids := []uint{root.ID}
		frontier := []uint{root.ID}
		for len(frontier) > 0 {
			var children []uint
			if err := tx.Model(&models.Comment{}).
				Where("parent_id IN ?", frontier).
				Order("id ASC").
				Pluck("id", &children).Error; err != nil {
				return apperr.Store("collect replies", err)
			}
			ids = append(ids, children...)
			frontier = children
		}

		if err := tx.Where("id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
			return apperr.Store("delete comments", err)
		}
		deleted = ids
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// CountByContent returns comment counts keyed by content id. Items without
// comments are absent from the map.
func (s *GormCommentStore) CountByContent(ctx context.Context, contentIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64)
	if len(contentIDs) == 0 {
		return counts, nil
	}

	type countResult struct {
		ContentID uint
		Count     int64
	}
	var results []countResult
	err := s.db.WithContext(ctx).Model(&models.Comment{}).
		Select("content_id, COUNT(*) as count").
		Where("content_id IN ?", contentIDs).
		Group("content_id").
		Scan(&results).Error
	if err != nil {
		return nil, apperr.Store("count comments", err)
	}

	for _, r := range results {
		counts[r.ContentID] = r.Count
	}
	return counts, nil
}
