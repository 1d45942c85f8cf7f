package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
//
// Samples cascade on address delete so that removing an address can
// never leave orphaned readings behind. The connection must have
// foreign_keys enabled (see platform/db).
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createAddressesQuery := `
	CREATE TABLE IF NOT EXISTS addresses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL CHECK(kind IN ('home', 'work')),
		label TEXT NOT NULL,
		location TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	);
	`

	createSamplesQuery := `
	CREATE TABLE IF NOT EXISTS samples (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		origin_id INTEGER NOT NULL REFERENCES addresses(id) ON DELETE CASCADE,
		destination_id INTEGER NOT NULL REFERENCES addresses(id) ON DELETE CASCADE,
		duration_seconds INTEGER NOT NULL CHECK(duration_seconds >= 0),
		traffic_duration_seconds INTEGER NOT NULL CHECK(traffic_duration_seconds >= 0),
		distance_meters INTEGER NOT NULL,
		captured_at TIMESTAMP NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_samples_route_captured
	ON samples(origin_id, destination_id, captured_at);
	`

	statements := []string{
		createAddressesQuery,
		createSamplesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
