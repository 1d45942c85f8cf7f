package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres database schema. Mirrors the SQLite schema
// with Postgres types; cascade semantics are identical.
func InitPostgresSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init postgres schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init postgres schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createAddressesQuery := `
	CREATE TABLE IF NOT EXISTS addresses (
		id BIGSERIAL PRIMARY KEY,
		kind TEXT NOT NULL CHECK(kind IN ('home', 'work')),
		label TEXT NOT NULL,
		location TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	`

	createSamplesQuery := `
	CREATE TABLE IF NOT EXISTS samples (
		id BIGSERIAL PRIMARY KEY,
		origin_id BIGINT NOT NULL REFERENCES addresses(id) ON DELETE CASCADE,
		destination_id BIGINT NOT NULL REFERENCES addresses(id) ON DELETE CASCADE,
		duration_seconds INTEGER NOT NULL CHECK(duration_seconds >= 0),
		traffic_duration_seconds INTEGER NOT NULL CHECK(traffic_duration_seconds >= 0),
		distance_meters INTEGER NOT NULL,
		captured_at TIMESTAMPTZ NOT NULL
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
			return fmt.Errorf("init postgres schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init postgres schema: commit tx: %w", err)
	}

	return nil
}
