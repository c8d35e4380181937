package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema if it does not exist yet. The database is
// single-user local state, so migrations are idempotent DDL rather than a
// versioned chain.
func (db *DB) RunMigrations() error {
	migration := `
-- Single-slot holder of the active interview thread. The CHECK pins the
-- table to one row; a new submission replaces the previous occupant.
CREATE TABLE IF NOT EXISTS thread_slot (
    slot INTEGER PRIMARY KEY CHECK(slot = 1),
    thread_id TEXT NOT NULL,
    state TEXT NOT NULL,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Completed reports, one per (thread, tier). Body is the serialized tier
-- payload.
CREATE TABLE IF NOT EXISTS report_records (
    thread_id TEXT NOT NULL,
    tier TEXT NOT NULL CHECK(tier IN ('free', 'basic', 'standard', 'premium')),
    body TEXT NOT NULL,
    generated_at TIMESTAMP NOT NULL,
    PRIMARY KEY (thread_id, tier)
);

-- Upgrade intents recorded once the backend accepts the upgrade, newest
-- first by created_at.
CREATE TABLE IF NOT EXISTS upgrade_intents (
    id TEXT PRIMARY KEY,
    thread_id TEXT NOT NULL,
    tier TEXT NOT NULL,
    modules TEXT,
    created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_thread_intents ON upgrade_intents(thread_id);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
