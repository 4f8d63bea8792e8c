// Package database provides database connectivity and operations.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	// DefaultBusyTimeout is how long SQLite waits on a locked database.
	DefaultBusyTimeout = 5 * time.Second
	// DefaultPingTimeout is the default timeout for ping operations
	DefaultPingTimeout = 5 * time.Second
)

// Config holds database configuration.
type Config struct {
	Path string
}

// NewSQLiteConnection opens the SQLite database and applies the schema.
// An error here is run-fatal: the pipeline cannot start without storage.
func NewSQLiteConnection(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"file:%s?_busy_timeout=%d&_foreign_keys=on",
		cfg.Path, DefaultBusyTimeout.Milliseconds(),
	)

	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Writes from concurrent pipeline workers serialize through one
	// connection; SQLite allows a single writer anyway.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, DefaultPingTimeout)
	defer cancel()

	if pingErr := db.PingContext(pingCtx); pingErr != nil {
		return nil, fmt.Errorf("failed to ping database: %w", pingErr)
	}

	if migrateErr := Migrate(ctx, db); migrateErr != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", migrateErr)
	}

	return db, nil
}
