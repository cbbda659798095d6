package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"
)

//go:embed schema.sql
var schemaSQL string

// Columns added after the initial release. Each is applied with ALTER TABLE
// ADD COLUMN on every open; the "duplicate column name" failure on an
// already-migrated database is swallowed. This is the chosen migration
// strategy in lieu of a version table: additive, nullable columns only.
var additiveColumns = []struct {
	table  string
	column string
	typ    string
}{
	{"characters", "powers", "TEXT"},
}

// Store owns the single database handle for the knowledge base. It is
// constructed explicitly by the process entry point and passed to callers;
// there is no module-level singleton.
//
// SQLite serializes writes at the connection level, which is the only
// concurrency control this single-writer application needs.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Option configures a Store at open time.
type Option func(*Store)

// WithClock overrides the time source used for created/modified timestamps.
// Tests use this to make timestamp assertions deterministic.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open creates or opens the database at the given path and ensures the full
// schema exists. Safe to call on every process start regardless of existing
// state.
//
// The connection is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode
//   - 5-second busy timeout
//   - foreign key enforcement (association and relationship cascades rely on it)
func Open(path string, opts ...Option) (*Store, error) {
	db, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Single writer to avoid SQLITE_BUSY errors
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries.
// Use with caution - prefer Store methods when available.
func (s *Store) DB() *sql.DB {
	return s.db
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and applies additive
// column migrations. Idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	for _, col := range additiveColumns {
		if err := addColumn(db, col.table, col.column, col.typ); err != nil {
			return err
		}
	}

	return nil
}

// addColumn attempts an additive column migration. The failure when the
// column already exists is expected and ignored; any other failure is real.
func addColumn(db *sql.DB, table, column, typ string) error {
	stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, typ)
	_, err := db.Exec(stmt)
	if err != nil && !strings.Contains(err.Error(), "duplicate column name") {
		return fmt.Errorf("add column %s.%s: %w", table, column, err)
	}
	return nil
}

// Timestamp layout for explicit writes. RFC 3339 in UTC sorts
// lexicographically, which ORDER BY updated_at relies on.
const timeLayout = time.RFC3339Nano

// timestamp returns the current time formatted for storage.
func (s *Store) timestamp() string {
	return s.now().UTC().Format(timeLayout)
}

// parseTime decodes a stored timestamp. Rows created by the engine default
// (CURRENT_TIMESTAMP) use SQLite's "YYYY-MM-DD HH:MM:SS" form.
func parseTime(raw string) time.Time {
	if t, err := time.Parse(timeLayout, raw); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", raw); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
