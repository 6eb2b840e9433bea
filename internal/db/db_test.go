package db_test

import (
	"testing"

	"lirivelle/internal/db"
	"lirivelle/internal/db/dbtest"
	"lirivelle/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMigratesTables(t *testing.T) {
	conn := dbtest.Open(t)

	assert.True(t, conn.Migrator().HasTable(&models.ContentItem{}))
	assert.True(t, conn.Migrator().HasTable(&models.Comment{}))
	assert.True(t, conn.Migrator().HasTable("content"))
	assert.True(t, conn.Migrator().HasTable("comment"))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := db.Open("oracle", "whatever")
	assert.Error(t, err)
}

func TestForeignKeyCascadeFromContent(t *testing.T) {
	conn := dbtest.Open(t)

	item := models.ContentItem{Type: models.TypeBlog, Title: "t"}
	require.NoError(t, conn.Create(&item).Error)
	c := models.Comment{Content: "hi", Author: "a", ContentID: item.ID, DeleteTokenHash: "x"}
	require.NoError(t, conn.Create(&c).Error)

	require.NoError(t, conn.Delete(&models.ContentItem{}, item.ID).Error)

	var count int64
	conn.Model(&models.Comment{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestForeignKeyRejectsDanglingContent(t *testing.T) {
	conn := dbtest.Open(t)

	c := models.Comment{Content: "hi", Author: "a", ContentID: 999, DeleteTokenHash: "x"}
	assert.Error(t, conn.Create(&c).Error)
}
