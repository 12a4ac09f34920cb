// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// SQLite is embedded — a single file, no database server to run. That is the
// right size for a single-user explainer whose only persistent data is a
// convenience history list. modernc.org/sqlite is a pure-Go translation of
// SQLite, so there is no CGo and no C toolchain requirement; cross-compiling
// the server stays trivial.
package sqlite

import (
	"database/sql"
	"fmt"

	// Blank import: the driver registers itself with database/sql under the
	// name "sqlite" at init time. We never reference its symbols directly.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements
// repository.ExplanationRepository.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" for tests — fast, isolated, destroyed on Close.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// sql.Open is lazy; Ping forces a real connection so a bad path or
	// permission problem surfaces here instead of on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows reads to proceed while a write is in flight. With one user
	// this barely matters, but it is the right default for any web server.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Callers should defer this right after New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this safe to
// run on every startup; a schema-tracking tool like golang-migrate would be
// overkill for one table.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS explanations (
			id          TEXT PRIMARY KEY,
			language    TEXT NOT NULL,
			tier        TEXT NOT NULL,
			code        TEXT NOT NULL,
			explanation TEXT NOT NULL,
			model       TEXT NOT NULL DEFAULT '',
			created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_explanations_created_at ON explanations(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating explanations table: %w", err)
	}
	return nil
}
