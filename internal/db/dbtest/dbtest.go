// Package dbtest opens throwaway databases for tests.
package dbtest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"lirivelle/internal/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var memSeq atomic.Int64

// Open returns a fresh in-memory sqlite database with foreign keys on. It is
// closed when the test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:lirivelle_test_%d?mode=memory&cache=shared&_pragma=foreign_keys(1)", memSeq.Add(1))
	conn, err := db.Open("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(conn) })
	return conn
}
