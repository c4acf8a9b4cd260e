// Package dbtest provides a migrated in-memory database for data access tests.
package dbtest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"BlogSphere.com/pkg/database"
)

var seq int64

// New returns a fresh, migrated SQLite database private to the test.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:blogsphere_%d?mode=memory&cache=shared&_foreign_keys=off", atomic.AddInt64(&seq, 1))
	db, err := database.Open(sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	// a single connection keeps the shared in-memory database alive and
	// serializes writers the way SQLite expects
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err = database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
