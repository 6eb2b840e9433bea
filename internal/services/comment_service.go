package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"lirivelle/internal/apperr"
	"lirivelle/internal/logger"
	"lirivelle/internal/models"
	"lirivelle/internal/store"
	"lirivelle/internal/thread"
	"lirivelle/internal/utils"

	"github.com/sirupsen/logrus"
)

const (
	MaxCommentLength = 5000
	MaxAuthorLength  = 50
)

type PostCommentInput struct {
	ContentID uint
	ParentID  *uint
	Content   string
	Author    string
}

// PostResult carries the created comment and its delete token. The token is
// handed out here once and is not recoverable afterwards.
type PostResult struct {
	Comment     *models.Comment
	DeleteToken string
}

type CommentService struct {
	comments store.CommentStore
	contents store.ContentStore
	tokens   *TokenAuthority
	cache    utils.Cache
	ttl      time.Duration
}

func NewCommentService(comments store.CommentStore, contents store.ContentStore, tokens *TokenAuthority, cache utils.Cache, ttl time.Duration) *CommentService {
	return &CommentService{
		comments: comments,
		contents: contents,
		tokens:   tokens,
		cache:    cache,
		ttl:      ttl,
	}
}

// GetThread returns the reply forest for a content item, oldest first.
func (s *CommentService) GetThread(ctx context.Context, contentID uint) ([]*thread.Node, error) {
	if contentID == 0 {
		return nil, apperr.Validation("invalid contentId")
	}

	key := ThreadCacheKey(contentID)
	var cached []*thread.Node
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	if _, err := s.contents.Get(ctx, contentID); err != nil {
		return nil, err
	}

	version := threadVersion(ctx, s.cache, contentID)
	list, err := s.comments.ListByContent(ctx, contentID)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].ContentHTML = utils.RenderComment(list[i].Content)
	}

	forest := thread.Nest(list, func(orphan models.Comment) {
		logger.WithContext("comments", "get-thread").WithFields(logrus.Fields{
			"content_id": contentID,
			"comment_id": orphan.ID,
			"parent_id":  *orphan.ParentID,
		}).Warn("Comment parent missing, showing as top-level")
	})

	storeThread(ctx, s.cache, contentID, version, forest, s.ttl)
	return forest, nil
}

// ListFlat returns the thread in display order: each comment followed by its
// replies.
func (s *CommentService) ListFlat(ctx context.Context, contentID uint) ([]models.Comment, error) {
	forest, err := s.GetThread(ctx, contentID)
	if err != nil {
		return nil, err
	}
	return thread.Flatten(forest), nil
}

func (s *CommentService) PostComment(ctx context.Context, in PostCommentInput) (*PostResult, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, apperr.Validation("content must not be empty")
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return nil, apperr.Validation(fmt.Sprintf("content must be at most %d characters", MaxCommentLength))
	}
	if in.ContentID == 0 {
		return nil, apperr.Validation("contentId is required")
	}
	if in.ParentID != nil && *in.ParentID == 0 {
		return nil, apperr.Validation("invalid parentId")
	}

	author := strings.TrimSpace(in.Author)
	if author == "" {
		author = models.DefaultAuthor
	}
	if utf8.RuneCountInString(author) > MaxAuthorLength {
		return nil, apperr.Validation(fmt.Sprintf("author must be at most %d characters", MaxAuthorLength))
	}

	token, hash, err := s.tokens.Issue()
	if err != nil {
		return nil, fmt.Errorf("issue delete token: %w", err)
	}

	comment := &models.Comment{
		Content:         content,
		Author:          author,
		ContentID:       in.ContentID,
		ParentID:        in.ParentID,
		DeleteTokenHash: hash,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.ContentHTML = utils.RenderComment(comment.Content)

	invalidateThread(ctx, s.cache, comment.ContentID)

	logger.WithContext("comments", "post").WithFields(logrus.Fields{
		"comment_id": comment.ID,
		"content_id": comment.ContentID,
		"is_reply":   comment.IsReply(),
	}).Info("Comment created")

	return &PostResult{Comment: comment, DeleteToken: token}, nil
}

// DeleteComment removes a comment and all replies under it once the caller
// proves ownership. It returns the removed ids.
func (s *CommentService) DeleteComment(ctx context.Context, commentID uint, author, token string) ([]uint, error) {
	if commentID == 0 {
		return nil, apperr.Validation("invalid commentId")
	}

	comment, err := s.comments.Get(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !s.tokens.Authorize(comment, author, token) {
		logger.WithContext("comments", "delete").WithField("comment_id", commentID).Warn("Delete refused")
		return nil, apperr.Forbidden("not allowed to delete this comment")
	}

	deleted, err := s.comments.DeleteCascade(ctx, commentID)
	if err != nil {
		return nil, err
	}
	invalidateThread(ctx, s.cache, comment.ContentID)

	logger.WithContext("comments", "delete").WithFields(logrus.Fields{
		"comment_id": commentID,
		"content_id": comment.ContentID,
		"removed":    len(deleted),
	}).Info("Comment deleted")

	return deleted, nil
}
