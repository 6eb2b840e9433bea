package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_DRIVER", "DATABASE_URL", "CACHE_SIZE", "THREAD_CACHE_TTL", "TOKEN_HASH_COST", "COMMENT_DELETE_BY_AUTHOR"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Contains(t, cfg.DatabaseURL, "dbname=lirivelle")
	assert.Equal(t, 500, cfg.CacheSize)
	assert.Equal(t, 5*time.Minute, cfg.ThreadCacheTTL)
	assert.Equal(t, bcrypt.DefaultCost, cfg.TokenHashCost)
	assert.False(t, cfg.DeleteByAuthor)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("CACHE_SIZE", "42")
	t.Setenv("THREAD_CACHE_TTL", "30s")
	t.Setenv("TOKEN_HASH_COST", "4")
	t.Setenv("COMMENT_DELETE_BY_AUTHOR", "true")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Contains(t, cfg.DatabaseURL, "lirivelle.db")
	assert.Equal(t, 42, cfg.CacheSize)
	assert.Equal(t, 30*time.Second, cfg.ThreadCacheTTL)
	assert.Equal(t, 4, cfg.TokenHashCost)
	assert.True(t, cfg.DeleteByAuthor)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("CACHE_SIZE", "lots")
	t.Setenv("THREAD_CACHE_TTL", "soon")
	t.Setenv("COMMENT_DELETE_BY_AUTHOR", "maybe")

	cfg := Load()
	assert.Equal(t, 500, cfg.CacheSize)
	assert.Equal(t, 5*time.Minute, cfg.ThreadCacheTTL)
	assert.False(t, cfg.DeleteByAuthor)
}
