package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv (
	name       TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

// SQLiteStore keeps keys as rows of a single table in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and migrates) the database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite kv: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite kv: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite kv: open db: %w", err)
	}
	// One writer keeps toggles strictly ordered.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite kv: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite kv: create schema: %w", err)
	}
	return nil
}

// Get returns the value stored under key.
func (s *SQLiteStore) Get(key string) (string, bool, error) {
	query, args, err := sq.Select("value").From("kv").Where(sq.Eq{"name": key}).ToSql()
	if err != nil {
		return "", false, fmt.Errorf("sqlite kv: build select: %w", err)
	}
	var value string
	err = s.db.QueryRowContext(context.Background(), query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("sqlite kv: get %q: %w", key, err)
	}
	return value, true, nil
}

// Set upserts value under key.
func (s *SQLiteStore) Set(key, value string) error {
	query, args, err := sq.Insert("kv").
		Columns("name", "value", "updated_at").
		Values(key, value, time.Now().UTC().Format(time.RFC3339Nano)).
		Suffix("ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("sqlite kv: build upsert: %w", err)
	}
	if _, err := s.db.ExecContext(context.Background(), query, args...); err != nil {
		return fmt.Errorf("sqlite kv: set %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying SQLite connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
