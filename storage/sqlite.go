package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLite is a slot stored as a row of a SQLite database.
type SQLite struct {
	db  *sql.DB
	key string
}

// OpenSQLite opens (and creates if needed) the database at path, and returns
// the slot under key.
func OpenSQLite(path, key string) (*SQLite, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	db, err := sql.Open("sqlite", absPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// a single writer, sqlite locks the whole file anyway.
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db, key: key}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) ensureSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS slots (
	key TEXT PRIMARY KEY,
	value TEXT
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create slots schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLite) Load(ctx context.Context) ([]byte, error) {
	var value sql.NullString
	err := s.db.QueryRowContext(ctx, "SELECT value FROM slots WHERE key = ?", s.key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !value.Valid) {
		return nil, fmt.Errorf("no sets under key %q: %w", s.key, fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %q: %w", s.key, err)
	}
	return []byte(value.String), nil
}

func (s *SQLite) Save(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO slots (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, s.key, string(data))
	if err != nil {
		return fmt.Errorf("write slot %q: %w", s.key, err)
	}
	return nil
}
