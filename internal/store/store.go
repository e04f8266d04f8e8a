// Package store provides the durable key-value blob store backing
// playlists, favorites and session state.
package store

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName    = "tuneflow"
	dbFileName = "tuneflow.db"
)

// Well-known keys.
const (
	KeyPlaylists = "playlists"
	KeyFavorites = "favorites"
	KeySession   = "session"
)

// Store is a SQLite-backed key-value store for JSON blobs.
type Store struct {
	db *sql.DB
}

// Open opens the store at the default XDG data location,
// creating the database and parent directories as needed.
func Open() (*Store, error) {
	dbPath, err := xdg.DataFile(filepath.Join(appName, dbFileName))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the store at the given path.
// Pass ":memory:" for an ephemeral store.
func OpenPath(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS blobs (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	return err
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the blob stored under key.
// The second return value is false when the key is absent.
func (s *Store) Load(key string) ([]byte, bool) {
	var value []byte
	row := s.db.QueryRow(`SELECT value FROM blobs WHERE key = ?`, key)
	err := row.Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false
	}
	if err != nil {
		// A read failure is treated like absent data: callers fall back
		// to empty collections rather than failing startup.
		return nil, false
	}
	return value, true
}

// Save writes the blob under key, replacing any previous value.
func (s *Store) Save(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO blobs (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, time.Now().Unix())
	return err
}
