// Package dbtest opens throwaway in-memory databases with the inventory
// schema applied, for repository and service tests.
package dbtest

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// schemaDDL mirrors the goose migrations in pkg/migrate/migrations in sqlite
// dialect, including every check and foreign-key constraint the application
// relies on the store to enforce.
var schemaDDL = []string{
	`CREATE TABLE products (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		vendor TEXT NOT NULL,
		product_type VARCHAR(100) NOT NULL,
		vendor_sku VARCHAR(255) NOT NULL UNIQUE,
		quantity BIGINT NOT NULL CHECK (quantity >= 0),
		modified_at DATETIME
	)`,
	`CREATE TABLE tools (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		vendor TEXT NOT NULL,
		total_owned INTEGER NOT NULL DEFAULT 1 CHECK (total_owned > 0),
		total_avail INTEGER NOT NULL DEFAULT 0 CHECK (total_avail >= 0),
		CHECK (total_owned >= total_avail)
	)`,
	`CREATE TABLE builds (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		sku TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE build_products (
		product_id BIGINT NOT NULL REFERENCES products (id) ON DELETE RESTRICT,
		build_id BIGINT NOT NULL REFERENCES builds (id) ON DELETE CASCADE,
		quantity_required BIGINT NOT NULL CHECK (quantity_required > 0),
		PRIMARY KEY (product_id, build_id)
	)`,
	`CREATE TABLE build_tools (
		tool_id BIGINT NOT NULL REFERENCES tools (id) ON DELETE RESTRICT,
		build_id BIGINT NOT NULL REFERENCES builds (id) ON DELETE CASCADE,
		quantity_required BIGINT NOT NULL CHECK (quantity_required > 0),
		PRIMARY KEY (tool_id, build_id)
	)`,
}

// Open returns a fresh in-memory database with foreign keys enabled and the
// inventory tables created.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:inven_" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	for _, ddl := range schemaDDL {
		if err := conn.Exec(ddl).Error; err != nil {
			t.Fatalf("apply schema: %v", err)
		}
	}
	return conn
}
