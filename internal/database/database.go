// File: internal/database/database.go

// Package database opens the configured relational backend (SQLite or
// PostgreSQL) behind one *gorm.DB handle and isolates every SQL-dialect
// difference behind the Dialect interface.
package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/arcanum-app/arcanum/internal/config"
	"github.com/arcanum-app/arcanum/internal/domain"
)

// Open connects to the backend selected by configuration and runs schema
// migration. The returned Dialect carries the backend-specific behavior the
// repositories need.
func Open(cfg *config.Config) (*gorm.DB, Dialect, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	var (
		dialector gorm.Dialector
		dialect   Dialect
	)
	switch cfg.DBBackend {
	case config.BackendSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("creating sqlite directory: %w", err)
			}
		}
		// Foreign keys must be enabled per connection for cascade deletes.
		dialector = sqlite.Open(cfg.SQLitePath + "?_pragma=foreign_keys(1)")
		dialect = &sqliteDialect{}
	case config.BackendPostgres:
		dialector = postgres.Open(cfg.DatabaseURL)
		dialect = &postgresDialect{}
	default:
		return nil, nil, fmt.Errorf("unknown DB_BACKEND %q", cfg.DBBackend)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s database: %w", cfg.DBBackend, err)
	}

	if err := db.AutoMigrate(&domain.Chat{}, &domain.Message{}); err != nil {
		return nil, nil, fmt.Errorf("migrating schema: %w", err)
	}

	return db, dialect, nil
}
