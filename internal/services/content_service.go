package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"lirivelle/internal/apperr"
	"lirivelle/internal/logger"
	"lirivelle/internal/models"
	"lirivelle/internal/store"
	"lirivelle/internal/utils"

	"github.com/go-playground/validator/v10"
)

const (
	ContentPageSize = 30
	SearchLimit     = 20
)

type CreateContentInput struct {
	Type        models.ContentType `json:"type" validate:"required,contenttype"`
	Title       string             `json:"title" validate:"required,max=200"`
	Description string             `json:"description" validate:"max=20000"`
	ImageURL    string             `json:"image_url" validate:"omitempty,url,max=500"`
	VideoURL    string             `json:"video_url" validate:"omitempty,url,max=500"`
	AudioURL    string             `json:"audio_url" validate:"omitempty,url,max=500"`
	Tags        []string           `json:"tags" validate:"max=20,dive,min=1,max=40"`
	Category    string             `json:"category" validate:"omitempty,category"`
}

// UpdateContentInput is a partial edit; nil fields are left as they are.
type UpdateContentInput struct {
	Title       *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=20000"`
	ImageURL    *string   `json:"image_url" validate:"omitempty,url,max=500"`
	Tags        *[]string `json:"tags" validate:"omitempty,max=20,dive,min=1,max=40"`
	Category    *string   `json:"category" validate:"omitempty,category"`
}

type ContentPage struct {
	Items    []models.ContentItem `json:"items"`
	Total    int64                `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

type ContentService struct {
	contents store.ContentStore
	comments store.CommentStore
	cache    utils.Cache
	validate *validator.Validate
}

func NewContentService(contents store.ContentStore, comments store.CommentStore, cache utils.Cache) *ContentService {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("contenttype", func(fl validator.FieldLevel) bool {
		return models.ContentType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return models.ValidCategory(fl.Field().String())
	})
	return &ContentService{contents: contents, comments: comments, cache: cache, validate: v}
}

func (s *ContentService) Get(ctx context.Context, id uint) (*models.ContentItem, error) {
	if id == 0 {
		return nil, apperr.Validation("invalid content id")
	}
	item, err := s.contents.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.fillCommentCounts(ctx, []*models.ContentItem{item}); err != nil {
		return nil, err
	}
	return item, nil
}

// List returns one page, newest first. Pages start at 1.
func (s *ContentService) List(ctx context.Context, filter store.ContentFilter, page int) (*ContentPage, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, apperr.Validation("unknown content type")
	}
	if page < 1 {
		page = 1
	}

	items, total, err := s.contents.List(ctx, filter, ContentPageSize, (page-1)*ContentPageSize)
	if err != nil {
		return nil, err
	}
	if err := s.fillCommentCounts(ctx, itemPtrs(items)); err != nil {
		return nil, err
	}
	return &ContentPage{Items: items, Total: total, Page: page, PageSize: ContentPageSize}, nil
}

func (s *ContentService) Search(ctx context.Context, query string, typ models.ContentType) ([]models.ContentItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.ContentItem{}, nil
	}
	if typ != "" && !typ.Valid() {
		return nil, apperr.Validation("unknown content type")
	}
	items, err := s.contents.Search(ctx, query, typ, SearchLimit)
	if err != nil {
		return nil, err
	}
	if err := s.fillCommentCounts(ctx, itemPtrs(items)); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *ContentService) Create(ctx context.Context, in CreateContentInput) (*models.ContentItem, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Tags = normalizeTags(in.Tags)
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	var v models.Variant
	switch {
	case in.VideoURL != "":
		v = models.VideoVariant{VideoURL: in.VideoURL, CoverURL: in.ImageURL, Caption: in.Description}
	case in.AudioURL != "":
		v = models.AudioVariant{AudioURL: in.AudioURL, CoverURL: in.ImageURL, Notes: in.Description}
	case in.ImageURL != "":
		v = models.ImageVariant{ImageURL: in.ImageURL, Caption: in.Description}
	default:
		v = models.TextVariant{Body: in.Description}
	}

	item := models.NewContentItem(models.Base{Type: in.Type, Title: in.Title, Tags: in.Tags, Category: in.Category}, v)
	item.Description = utils.SanitizeHTML(item.Description)
	if err := s.contents.Create(ctx, item); err != nil {
		return nil, err
	}

	logger.WithContext("contents", "create").WithField("content_id", item.ID).Info("Content created")
	return item, nil
}

func (s *ContentService) Update(ctx context.Context, id uint, in UpdateContentInput) (*models.ContentItem, error) {
	if in.Tags != nil {
		tags := normalizeTags(*in.Tags)
		in.Tags = &tags
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	item, err := s.contents.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, apperr.Validation("title must not be empty")
		}
		item.Title = title
	}
	if in.Description != nil {
		item.Description = utils.SanitizeHTML(*in.Description)
	}
	if in.ImageURL != nil {
		item.ImageURL = *in.ImageURL
	}
	if in.Tags != nil {
		item.Tags = *in.Tags
	}
	if in.Category != nil {
		item.Category = *in.Category
	}

	if err := s.contents.Update(ctx, item); err != nil {
		return nil, err
	}
	logger.WithContext("contents", "update").WithField("content_id", id).Info("Content updated")
	return item, nil
}

// Delete removes the item together with its whole comment thread.
func (s *ContentService) Delete(ctx context.Context, id uint) error {
	if err := s.contents.DeleteCascade(ctx, id); err != nil {
		return err
	}
	invalidateThread(ctx, s.cache, id)
	logger.WithContext("contents", "delete").WithField("content_id", id).Info("Content deleted")
	return nil
}

// fillCommentCounts sets CommentCount on every item with one query.
func (s *ContentService) fillCommentCounts(ctx context.Context, items []*models.ContentItem) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]uint, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	counts, err := s.comments.CountByContent(ctx, ids)
	if err != nil {
		return err
	}
	for _, it := range items {
		it.CommentCount = counts[it.ID]
	}
	return nil
}

func itemPtrs(items []models.ContentItem) []*models.ContentItem {
	out := make([]*models.ContentItem, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}

// normalizeTags trims, drops blanks and duplicates, and never returns nil.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperr.Validation(fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
	}
	return apperr.Validation(err.Error())
}
