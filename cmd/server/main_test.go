package main

import (
	"context"
	"net"
	"net/http"
	"testing"

	"lirivelle/internal/db/dbtest"
	"lirivelle/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closingCache struct {
	*utils.LocalCache
	closed bool
}

func (c *closingCache) Close() error {
	c.closed = true
	return nil
}

func newClosingCache(t *testing.T) *closingCache {
	t.Helper()
	lc, err := utils.NewLocalCache(10)
	require.NoError(t, err)
	return &closingCache{LocalCache: lc}
}

func TestServeReleasesResourcesOnShutdown(t *testing.T) {
	conn := dbtest.Open(t)
	cache := newClosingCache(t)
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, serve(ctx, server, conn, cache))

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping())
	assert.True(t, cache.closed)
}

func TestServeReleasesResourcesWhenListenFails(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	conn := dbtest.Open(t)
	cache := newClosingCache(t)
	server := &http.Server{Addr: busy.Addr().String(), Handler: http.NotFoundHandler()}

	err = serve(context.Background(), server, conn, cache)
	require.Error(t, err)

	sqlDB, dbErr := conn.DB()
	require.NoError(t, dbErr)
	assert.Error(t, sqlDB.Ping())
	assert.True(t, cache.closed)
}
