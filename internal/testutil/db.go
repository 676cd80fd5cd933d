// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/anonto42/nano-forum/backend/internal/repositories"
	"github.com/anonto42/nano-forum/backend/pkg/config"
	"gorm.io/gorm"
)

var dbSeq atomic.Int64

// NewDB opens a migrated in-memory SQLite database private to the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))
	db, err := config.OpenDatabase("sqlite", dsn)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := repositories.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
