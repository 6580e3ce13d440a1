// Package sqlitestore keeps the persisted session record in a SQLite table.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jrsteele09/go-auth-session/store"
	_ "modernc.org/sqlite"
)

var _ store.Repo = (*Store)(nil)

// Store provides key/value access to the session_record table.
type Store struct {
	db *sql.DB
}

// New opens (or creates) a SQLite database and runs migrations.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: open db: %w", err)
	}

	ctx := context.Background()

	// Set busy timeout to avoid "database is locked" when two CLIs race
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlitestore: set busy_timeout: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlitestore: migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS session_record (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(context.Background(),
		`SELECT value FROM session_record WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlitestore: get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(key, value string) error {
	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO session_record (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("sqlitestore: set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	if _, err := s.db.ExecContext(context.Background(),
		`DELETE FROM session_record WHERE key = ?`, key); err != nil {
		return fmt.Errorf("sqlitestore: delete %s: %w", key, err)
	}
	return nil
}
