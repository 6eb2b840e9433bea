package store_test

import (
	"context"
	"testing"
	"time"

	"lirivelle/internal/apperr"
	"lirivelle/internal/db/dbtest"
	"lirivelle/internal/models"
	"lirivelle/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentStoreCreateGet(t *testing.T) {
	ctx := context.Background()
	s := store.NewContentStore(dbtest.Open(t))

	item := &models.ContentItem{
		Type:     models.TypeWallpaper,
		Title:    "Dusk",
		ImageURL: "https://cdn.example.com/dusk.jpg",
		Tags:     []string{"sky", "Evening"},
		Category: "📷 Photography",
	}
	require.NoError(t, s.Create(ctx, item))
	require.NotZero(t, item.ID)

	got, err := s.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dusk", got.Title)
	assert.Equal(t, []string{"sky", "Evening"}, got.Tags)
	assert.Equal(t, models.TypeWallpaper, got.Type)

	_, err = s.Get(ctx, 9999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestContentStoreListFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.Open(t)
	s := store.NewContentStore(conn)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		typ := models.TypeBlog
		if i%2 == 1 {
			typ = models.TypePet
		}
		item := &models.ContentItem{Type: typ, Title: string(rune('a' + i)), Category: "🏖️ Lifestyle", CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, s.Create(ctx, item))
	}

	items, total, err := s.List(ctx, store.ContentFilter{}, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, items, 2)
	assert.Equal(t, "e", items[0].Title)
	assert.Equal(t, "d", items[1].Title)

	items, _, err = s.List(ctx, store.ContentFilter{}, 2, 4)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "a", items[0].Title)

	items, total, err = s.List(ctx, store.ContentFilter{Type: models.TypePet}, 30, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	for _, it := range items {
		assert.Equal(t, models.TypePet, it.Type)
	}

	_, total, err = s.List(ctx, store.ContentFilter{Category: "nope"}, 30, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestContentStoreSearch(t *testing.T) {
	ctx := context.Background()
	s := store.NewContentStore(dbtest.Open(t))

	items := []*models.ContentItem{
		{Type: models.TypeBlog, Title: "Rainy Morning", Category: "🍳 Food and Cooking"},
		{Type: models.TypeSound, Title: "Waves", Description: "recorded on a RAINY beach", Category: "🎬 Entertainment"},
		{Type: models.TypePet, Title: "Mochi", Tags: []string{"rainbow"}, Category: "🏖️ Lifestyle"},
		{Type: models.TypeBlog, Title: "Sunny", Category: "🍳 Food and Cooking"},
	}
	for _, it := range items {
		require.NoError(t, s.Create(ctx, it))
	}

	found, err := s.Search(ctx, "RAIN", "", 20)
	require.NoError(t, err)
	assert.Len(t, found, 3)

	found, err = s.Search(ctx, "rain", models.TypeBlog, 20)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Rainy Morning", found[0].Title)

	found, err = s.Search(ctx, "cooking", "", 1)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestContentStoreSearchMatchesWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	s := store.NewContentStore(dbtest.Open(t))

	for _, title := range []string{"100% cotton", "1000 cotton", "snake_case", "snakeXcase", `back\slash`} {
		require.NoError(t, s.Create(ctx, &models.ContentItem{Type: models.TypeBlog, Title: title}))
	}

	titles := func(query string) []string {
		found, err := s.Search(ctx, query, "", 20)
		require.NoError(t, err)
		out := make([]string, len(found))
		for i, it := range found {
			out[i] = it.Title
		}
		return out
	}

	assert.Equal(t, []string{"100% cotton"}, titles("%"))
	assert.Equal(t, []string{"100% cotton"}, titles("0% c"))
	assert.Equal(t, []string{"snake_case"}, titles("_"))
	assert.Equal(t, []string{"snake_case"}, titles("e_c"))
	assert.Equal(t, []string{`back\slash`}, titles(`\`))
	assert.Len(t, titles("cotton"), 2)
}

func TestContentStoreUpdate(t *testing.T) {
	ctx := context.Background()
	s := store.NewContentStore(dbtest.Open(t))

	item := &models.ContentItem{Type: models.TypeBlog, Title: "Old", Tags: []string{"a"}}
	require.NoError(t, s.Create(ctx, item))

	item.Title = "New"
	item.Tags = []string{"b", "c"}
	item.Type = models.TypePet
	require.NoError(t, s.Update(ctx, item))

	got, err := s.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, []string{"b", "c"}, got.Tags)
	assert.Equal(t, models.TypeBlog, got.Type)

	err = s.Update(ctx, &models.ContentItem{ID: 9999, Title: "x"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestContentStoreDeleteCascade(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.Open(t)
	contents := store.NewContentStore(conn)
	comments := store.NewCommentStore(conn)

	item := seedContent(t, conn, "doomed")
	keep := seedContent(t, conn, "kept")
	root := newComment(item.ID, nil, "root")
	require.NoError(t, comments.Create(ctx, root))
	require.NoError(t, comments.Create(ctx, newComment(item.ID, &root.ID, "reply")))
	require.NoError(t, comments.Create(ctx, newComment(keep.ID, nil, "stays")))

	require.NoError(t, contents.DeleteCascade(ctx, item.ID))

	_, err := contents.Get(ctx, item.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	var count int64
	conn.Model(&models.Comment{}).Count(&count)
	assert.Equal(t, int64(1), count)

	assert.ErrorIs(t, contents.DeleteCascade(ctx, item.ID), apperr.ErrNotFound)
}
