package store

import (
	"context"
	"errors"
	"strings"

	"lirivelle/internal/apperr"
	"lirivelle/internal/models"

	"gorm.io/gorm"
)

// ContentFilter narrows List. Zero values mean "any".
type ContentFilter struct {
	Type     models.ContentType
	Category string
}

type ContentStore interface {
	Create(ctx context.Context, item *models.ContentItem) error
	Get(ctx context.Context, id uint) (*models.ContentItem, error)
	List(ctx context.Context, filter ContentFilter, limit, offset int) ([]models.ContentItem, int64, error)
	Search(ctx context.Context, query string, typ models.ContentType, limit int) ([]models.ContentItem, error)
	Update(ctx context.Context, item *models.ContentItem) error
	DeleteCascade(ctx context.Context, id uint) error
}

type GormContentStore struct {
	db *gorm.DB
}

func NewContentStore(db *gorm.DB) *GormContentStore {
	return &GormContentStore{db: db}
}

func (s *GormContentStore) Create(ctx context.Context, item *models.ContentItem) error {
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return apperr.Store("create content", err)
	}
	return nil
}

func (s *GormContentStore) Get(ctx context.Context, id uint) (*models.ContentItem, error) {
	var item models.ContentItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("content not found")
		}
		return nil, apperr.Store("get content", err)
	}
	return &item, nil
}

// List returns one page, newest first, and the total matching the filter.
func (s *GormContentStore) List(ctx context.Context, filter ContentFilter, limit, offset int) ([]models.ContentItem, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.ContentItem{})
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, apperr.Store("count content", err)
	}

	var items []models.ContentItem
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&items).Error; err != nil {
		return nil, 0, apperr.Store("list content", err)
	}
	return items, total, nil
}

// likeEscaper makes LIKE metacharacters in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search does a case-insensitive substring match over title, description,
// category and tags.
func (s *GormContentStore) Search(ctx context.Context, query string, typ models.ContentType, limit int) ([]models.ContentItem, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"

	q := s.db.WithContext(ctx).
		Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\' `+
			`OR LOWER(category) LIKE ? ESCAPE '\' OR LOWER(tags) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern, pattern)
	if typ != "" {
		q = q.Where("type = ?", typ)
	}

	var items []models.ContentItem
	if err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, apperr.Store("search content", err)
	}
	return items, nil
}

// Update writes the editable columns only; type and media URLs other than
// the cover image stay as created.
func (s *GormContentStore) Update(ctx context.Context, item *models.ContentItem) error {
	res := s.db.WithContext(ctx).Model(item).
		Select("title", "description", "image_url", "tags", "category", "updated_at").
		Updates(item)
	if res.Error != nil {
		return apperr.Store("update content", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("content not found")
	}
	return nil
}

// DeleteCascade removes the item and all its comments in one transaction.
func (s *GormContentStore) DeleteCascade(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.ContentItem
		if err := tx.Select("id").First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("content not found")
			}
			return apperr.Store("find content", err)
		}
		if err := tx.Where("content_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return apperr.Store("delete comments", err)
		}
		if err := tx.Delete(&models.ContentItem{}, id).Error; err != nil {
			return apperr.Store("delete content", err)
		}
		return nil
	})
}
