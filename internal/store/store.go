package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const (
	currentVersion = 1

	// DefaultHistoryLimit is how many workouts are kept, newest first.
	DefaultHistoryLimit = 100
)

// ErrNotFound is returned when a workout or preset does not exist.
var ErrNotFound = errors.New("not found")

type Store struct {
	db           *sql.DB
	historyLimit int
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	// Configure pragmas.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, historyLimit: DefaultHistoryLimit}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

// SetHistoryLimit changes how many workouts are retained. Values below 1
// restore the default.
func (s *Store) SetHistoryLimit(n int) {
	if n < 1 {
		n = DefaultHistoryLimit
	}
	s.historyLimit = n
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS workouts (
		seq              INTEGER PRIMARY KEY AUTOINCREMENT,
		id               TEXT NOT NULL UNIQUE,
		date             TEXT NOT NULL,
		mode             TEXT NOT NULL,
		config           TEXT NOT NULL,
		duration         INTEGER NOT NULL DEFAULT 0,
		rounds_completed INTEGER NOT NULL DEFAULT 0,
		notes            TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_workouts_date ON workouts(date);

	CREATE TABLE IF NOT EXISTS presets (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		id         TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		config     TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('sound_enabled',     'true'),
		('vibration_enabled', 'true');
	`
	_, err := s.db.Exec(ddl)
	return err
}
