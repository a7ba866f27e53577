package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alimgiray/inbox/pkg/config"
	_ "github.com/mattn/go-sqlite3"
)

// Store opens short-lived connections to the SQLite database file.
// Every caller gets its own handle and must close it when done.
type Store struct {
	path        string
	busyTimeout int
}

func NewStore(cfg config.DatabaseConfig) *Store {
	return &Store{path: cfg.Path, busyTimeout: cfg.BusyTimeout}
}

// Open opens the database file (creating it and its directory if needed)
// and verifies the connection. The handle is limited to a single connection
// so that consecutive statements run on the same session.
func (s *Store) Open(ctx context.Context) (*sql.DB, error) {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=ON&_busy_timeout=%d", s.path, s.busyTimeout)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	// Use memory for temp storage
	if _, err := db.ExecContext(ctx, "PRAGMA temp_store=MEMORY"); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// With opens a connection, runs fn and closes the connection on every exit path
func (s *Store) With(ctx context.Context, fn func(db *sql.DB) error) error {
	db, err := s.Open(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	return fn(db)
}
