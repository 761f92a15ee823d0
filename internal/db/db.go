// Package db provides SQLite database operations for the cryptoseed quote store.
//
// The database is a single file (quotes.db by default) holding the quote
// corpus and the daily puzzle schedule. Use Open() to connect and Init()
// to create the schema.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// MaxRetries is the maximum number of retries for transient database errors.
const MaxRetries = 5

// RetryBaseDelay is the base delay for exponential backoff.
const RetryBaseDelay = 50 * time.Millisecond

// SchemaVersion is the current schema version.
// Increment this when adding new migrations.
const SchemaVersion = 2

// baseSchema is the original schema (version 1).
// New tables should be added via migrations, not here.
//
// puzzle_date is UNIQUE on its own (one puzzle per day) and the
// (quote_id, puzzle_date) pair is UNIQUE as well; INSERT OR IGNORE
// against either constraint is what makes reseeding idempotent.
const baseSchema = `
CREATE TABLE IF NOT EXISTS quotes (
	id INTEGER PRIMARY KEY,
	text TEXT NOT NULL,
	author TEXT,
	difficulty TEXT NOT NULL DEFAULT 'medium',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (text)
);

CREATE TABLE IF NOT EXISTS daily_puzzles (
	id INTEGER PRIMARY KEY,
	quote_id INTEGER NOT NULL REFERENCES quotes(id),
	puzzle_date TEXT NOT NULL UNIQUE,
	UNIQUE (quote_id, puzzle_date)
);
`

// migrations defines incremental schema changes.
// Each migration upgrades from version N-1 to N.
// Index 0 is migration to version 2, index 1 is migration to version 3, etc.
var migrations = []string{
	// Version 2: Indexes for difficulty selection and schedule range scans
	`
CREATE INDEX IF NOT EXISTS idx_quotes_difficulty ON quotes(difficulty);
CREATE INDEX IF NOT EXISTS idx_daily_puzzles_date ON daily_puzzles(puzzle_date);
CREATE INDEX IF NOT EXISTS idx_daily_puzzles_quote ON daily_puzzles(quote_id);
`,
}

// DB wraps a SQL database connection with quote-store operations.
type DB struct {
	*sql.DB
}

// ExecRetry executes a statement with retry logic for transient errors.
func (db *DB) ExecRetry(query string, args ...any) (sql.Result, error) {
	return withRetry(func() (sql.Result, error) {
		return db.Exec(query, args...)
	})
}

// QueryRetry executes a query with retry logic for transient errors.
func (db *DB) QueryRetry(query string, args ...any) (*sql.Rows, error) {
	return withRetry(func() (*sql.Rows, error) {
		return db.Query(query, args...)
	})
}

// Open opens or creates the database at the given path
func Open(path string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	var sqlDB *sql.DB
	var err error

	// Retry opening the database with exponential backoff
	err = withRetryNoResult(func() error {
		sqlDB, err = sql.Open("sqlite", path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}

		// Set busy timeout FIRST before any other operations
		// This ensures retries work for subsequent PRAGMA calls
		if _, err := sqlDB.Exec("PRAGMA busy_timeout=5000"); err != nil {
			_ = sqlDB.Close()
			return fmt.Errorf("failed to set busy timeout: %w", err)
		}

		// Enable foreign keys
		if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
			_ = sqlDB.Close()
			return fmt.Errorf("failed to enable foreign keys: %w", err)
		}

		// Enable WAL mode so a reading app instance doesn't block the seeder
		if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
			_ = sqlDB.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return &DB{sqlDB}, nil
}

// isRetryableError checks if an error is a transient SQLite error that can be retried.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// SQLITE_BUSY (5), SQLITE_LOCKED (6)
	return strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "SQLITE_LOCKED")
}

// withRetry executes a function with exponential backoff retry on transient errors.
func withRetry[T any](fn func() (T, error)) (T, error) {
	var result T
	var err error
	delay := RetryBaseDelay

	for attempt := 0; attempt < MaxRetries; attempt++ {
		result, err = fn()
		if err == nil || !isRetryableError(err) {
			return result, err
		}

		time.Sleep(delay)
		delay *= 2
		if delay > 2*time.Second {
			delay = 2 * time.Second
		}
	}

	return result, fmt.Errorf("failed after %d retries: %w", MaxRetries, err)
}

// withRetryNoResult executes a function with retry that returns only an error.
func withRetryNoResult(fn func() error) error {
	_, err := withRetry(func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// Init creates the schema for a fresh database and runs pending migrations.
// Safe to call on an existing database.
func (db *DB) Init() error {
	_, err := db.Exec(baseSchema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Migrate runs any pending schema migrations.
// Safe to call on every startup - only runs migrations newer than current version.
func (db *DB) Migrate() error {
	currentVersion, err := db.getSchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	// If version is 0 but tables exist, this is a legacy database (v1).
	// If the tables don't exist either, the schema was never created;
	// there is nothing to migrate until Init runs.
	if currentVersion == 0 {
		exists, err := db.tableExists("quotes")
		if err != nil {
			return fmt.Errorf("failed to check tables: %w", err)
		}
		if !exists {
			return nil
		}
		currentVersion = 1
		if err := db.setSchemaVersion(1); err != nil {
			return fmt.Errorf("failed to set legacy version: %w", err)
		}
	}

	for i, migration := range migrations {
		targetVersion := i + 2 // migrations[0] upgrades to v2
		if currentVersion >= targetVersion {
			continue
		}

		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration to v%d failed: %w", targetVersion, err)
		}

		if err := db.setSchemaVersion(targetVersion); err != nil {
			return fmt.Errorf("failed to update version to %d: %w", targetVersion, err)
		}
		currentVersion = targetVersion
	}

	return nil
}

// CheckSchema verifies the expected tables exist. The seeder refuses to run
// against a database that was never initialized rather than failing with an
// opaque "no such table" error mid-transaction.
func (db *DB) CheckSchema() error {
	for _, table := range []string{"quotes", "daily_puzzles"} {
		exists, err := db.tableExists(table)
		if err != nil {
			return fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if !exists {
			return fmt.Errorf("table %s does not exist (run 'cryptoseed init' first)", table)
		}
	}
	return nil
}

// getSchemaVersion returns the current schema version using PRAGMA user_version.
func (db *DB) getSchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("PRAGMA user_version").Scan(&version)
	return version, err
}

// setSchemaVersion sets the schema version using PRAGMA user_version.
func (db *DB) setSchemaVersion(version int) error {
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", version))
	return err
}

// tableExists checks if a table exists in the database.
func (db *DB) tableExists(name string) (bool, error) {
	var count int
	err := db.QueryRow(
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?",
		name,
	).Scan(&count)
	return count > 0, err
}
