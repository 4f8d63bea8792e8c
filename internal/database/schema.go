package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schemaStatements creates the relational schema. Each one-to-one child
// table carries a UNIQUE activity_id so re-persisting an identifier
// replaces the existing row instead of adding a second one.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS activities (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		summary TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		quality_score INTEGER NOT NULL DEFAULT 0,
		price REAL NOT NULL DEFAULT 0,
		price_type TEXT NOT NULL DEFAULT 'free',
		currency TEXT NOT NULL DEFAULT 'TWD',
		view_count INTEGER NOT NULL DEFAULT 0,
		favorite_count INTEGER NOT NULL DEFAULT 0,
		click_count INTEGER NOT NULL DEFAULT 0,
		popularity_score REAL NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS locations (
		id TEXT PRIMARY KEY,
		activity_id TEXT NOT NULL UNIQUE REFERENCES activities(id),
		address TEXT,
		district TEXT,
		city TEXT,
		region TEXT,
		latitude REAL,
		longitude REAL,
		venue TEXT,
		landmarks TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS activity_times (
		id TEXT PRIMARY KEY,
		activity_id TEXT NOT NULL UNIQUE REFERENCES activities(id),
		start_date TEXT,
		end_date TEXT,
		start_time TEXT,
		end_time TEXT,
		timezone TEXT,
		is_recurring INTEGER NOT NULL DEFAULT 0,
		recurrence_rule TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		slug TEXT NOT NULL UNIQUE,
		color_code TEXT,
		icon TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS activity_categories (
		id TEXT PRIMARY KEY,
		activity_id TEXT NOT NULL REFERENCES activities(id),
		category_id TEXT NOT NULL REFERENCES categories(id),
		UNIQUE (activity_id, category_id)
	)`,
	`CREATE TABLE IF NOT EXISTS data_sources (
		id TEXT PRIMARY KEY,
		activity_id TEXT NOT NULL UNIQUE REFERENCES activities(id),
		website TEXT,
		url TEXT,
		crawled_at TEXT,
		crawler_version TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_locations_city ON locations(city)`,
	`CREATE INDEX IF NOT EXISTS idx_locations_region ON locations(region)`,
	`CREATE INDEX IF NOT EXISTS idx_activity_times_start_date ON activity_times(start_date)`,
}

// Migrate applies the schema. Statements are idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}
