package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rnwolfe/tally/internal/config"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite connection.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the tally database.
func Open() (*DB, error) {
	paths := config.GetPaths()
	if err := paths.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("creating data dirs: %w", err)
	}
	return OpenPath(paths.DBFile + "?_journal_mode=WAL&_busy_timeout=5000")
}

// OpenMemory opens a private in-memory database with the full schema.
// The pool is pinned to one connection because every new connection to
// ":memory:" would otherwise see an empty database.
func OpenMemory() (*DB, error) {
	return openConn(":memory:", 1)
}

// OpenPath opens the database at dsn and applies pragmas and migrations.
func OpenPath(dsn string) (*DB, error) {
	return openConn(dsn, 0)
}

func openConn(dsn string, maxConns int) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if maxConns > 0 {
		conn.SetMaxOpenConns(maxConns)
	}

	// Performance pragmas
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA cache_size=-16000", // 16MB cache
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=MEMORY",
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", p, err)
		}
	}

	if err := Migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn returns the raw sql.DB for direct queries.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Migrate runs all schema migrations against conn. It is idempotent.
func Migrate(conn *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS migrations (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		// Trackers: one row per habit or event. Type-specific columns are
		// left at their defaults for the other kind.
		`CREATE TABLE IF NOT EXISTS trackers (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			kind TEXT NOT NULL CHECK (kind IN ('habit', 'event')),
			color TEXT NOT NULL DEFAULT 'today',
			behavior TEXT NOT NULL DEFAULT '',
			goal_enabled INTEGER NOT NULL DEFAULT 0,
			goal_target INTEGER NOT NULL DEFAULT 0,
			countdown INTEGER NOT NULL DEFAULT 0,
			start_date TEXT NOT NULL,
			end_date TEXT,
			last_reset TEXT,
			created_at TEXT NOT NULL
		)`,
		// Sparse per-day activity log, keyed by ISO calendar day.
		`CREATE TABLE IF NOT EXISTS activity (
			tracker_id TEXT NOT NULL REFERENCES trackers(id) ON DELETE CASCADE,
			day TEXT NOT NULL,
			marked INTEGER NOT NULL DEFAULT 1,
			PRIMARY KEY (tracker_id, day)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trackers_created ON trackers(created_at)`,
		// Key-value store for misc state
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, m := range migrations {
		if _, err := conn.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}

// GetKV returns the value stored under key, or "" when absent.
func (db *DB) GetKV(key string) (string, error) {
	var v sql.NullString
	err := db.conn.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return v.String, nil
}

// SetKV stores value under key.
func (db *DB) SetKV(key, value string) error {
	_, err := db.conn.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
