// Package library is the SQLite-backed music catalog: schema, queries,
// search, play statistics and the filesystem scanner. The task executor
// holds the only writable Library; nothing else touches the database.
package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver
)

// Library wraps the catalog database connection.
type Library struct {
	db *sql.DB
}

// Open opens (or creates) the catalog database at the given path and
// initializes the schema.
func Open(path string) (*Library, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init catalog schema: %w", err)
	}

	return &Library{db: db}, nil
}

// Close closes the database connection.
func (l *Library) Close() error {
	return l.db.Close()
}
