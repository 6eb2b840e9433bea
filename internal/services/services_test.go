package services

import (
	"testing"
	"time"

	"lirivelle/internal/db/dbtest"
	"lirivelle/internal/models"
	"lirivelle/internal/store"
	"lirivelle/internal/utils"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	cache    *utils.LocalCache
	comments *CommentService
	contents *ContentService
}

func newFixture(t *testing.T, allowAuthorMatch bool) *fixture {
	t.Helper()
	conn := dbtest.Open(t)
	cache, err := utils.NewLocalCache(50)
	require.NoError(t, err)

	commentStore := store.NewCommentStore(conn)
	contentStore := store.NewContentStore(conn)
	tokens := NewTokenAuthority(bcrypt.MinCost, allowAuthorMatch)

	return &fixture{
		db:       conn,
		cache:    cache,
		comments: NewCommentService(commentStore, contentStore, tokens, cache, time.Minute),
		contents: NewContentService(contentStore, commentStore, cache),
	}
}

func (f *fixture) seedContent(t *testing.T, id uint) *models.ContentItem {
	t.Helper()
	item := &models.ContentItem{ID: id, Type: models.TypeBlog, Title: "post", Tags: []string{}}
	require.NoError(t, f.db.Create(item).Error)
	return item
}

func (f *fixture) countComments(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.Comment{}).Count(&n).Error)
	return n
}
