// Package settings persists per-player preferences in a small sqlite
// database next to the server, separate from the postgres game data:
// losing it costs nothing but defaults.
package settings

import (
	"bytes"
	"database/sql"
	"encoding/gob"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

var ErrNotFound = fmt.Errorf("value not found")

// Preferences are the client-tunable knobs the engine itself never
// reads: the default solver tier for new games and cosmetic options.
type Preferences struct {
	Difficulty string
	Theme      string
	Sound      bool
}

func DefaultPreferences() Preferences {
	return Preferences{Difficulty: "none", Theme: "classic", Sound: true}
}

type Store struct {
	mu sync.Mutex
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS preferences (
			key	TEXT PRIMARY KEY,
			value	BLOB
		);`); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the stored preferences for key, or ErrNotFound.
func (s *Store) Load(key string) (Preferences, error) {
	var blob []byte
	err := s.db.QueryRow(
		`SELECT value FROM preferences WHERE key = ?;`, key,
	).Scan(&blob)
	if err == sql.ErrNoRows {
		return Preferences{}, ErrNotFound
	} else if err != nil {
		return Preferences{}, err
	}
	var prefs Preferences
	if err := gob.NewDecoder(bytes.NewReader(blob)).Decode(&prefs); err != nil {
		return Preferences{}, err
	}
	return prefs, nil
}

// Save inserts or replaces the preferences for key.
func (s *Store) Save(key string, prefs Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(prefs); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO preferences (key, value)
		VALUES (?, ?)
		ON CONFLICT(key)
		DO UPDATE SET value=excluded.value;`,
		key, buf.Bytes())
	return err
}

func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM preferences WHERE key = ?;`, key)
	return err
}
