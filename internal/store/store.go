// Package store persists the client's small key-value state: the
// credential token, a pending invitation token, and the last opened
// project. All access happens from the single UI goroutine.
package store

import (
	"database/sql"
	_ "embed"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// Keys for the values the client persists.
const (
	KeyToken         = "jwt"
	KeyPendingInvite = "pending_invitation"
	KeyLastProject   = "last_project_id"
)

// Store wraps the local settings database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the settings database at path. An empty path
// uses the default location under the user data directory.
func Open(path string) (*Store, error) {
	if path == "" {
		var err error
		path, err = defaultPath()
		if err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// defaultPath returns the settings database location, honoring XDG.
func defaultPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	appDir := filepath.Join(dataDir, "cspace")
	if err := os.MkdirAll(appDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(appDir, "cspace.db"), nil
}

// Get retrieves a value by key; a missing key yields "".
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// Set stores a value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// Delete removes a key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	_, err := s.db.Exec("DELETE FROM settings WHERE key = ?", key)
	return err
}

// Token returns the persisted credential token, or "" when signed out.
// It satisfies the API client's TokenSource so every outgoing request
// reads the current credential.
func (s *Store) Token() string {
	token, err := s.Get(KeyToken)
	if err != nil {
		return ""
	}
	return token
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
