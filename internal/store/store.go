// Package store provides SQLite-backed persistence for the Shelfmark server.
// It is the durable source of truth; all read traffic is served from the
// snapshot caches, which re-read whole tables through the ListX methods here.
package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/shelfmark/shelfmark-server/internal/errors"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Store provides SQLite-backed persistence.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open creates a new SQLite store at the given path.
// It configures WAL mode, sets pragmas, and runs schema migrations.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// Single writer is a SQLite limitation; a few readers are fine.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// mapError converts driver errors to domain errors. Constraint violations
// that slip past the cache validators still come back typed.
func mapError(err error, entity string) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return apperrors.Duplicatef("%s already exists", entity).WithCause(err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return apperrors.ReferenceNotFoundf("%s references a missing row", entity).WithCause(err)
	default:
		return apperrors.StoreUnavailable(fmt.Sprintf("%s write failed", entity), err)
	}
}

// mapQueryError converts read-path driver errors to domain errors.
func mapQueryError(err error, entity string) error {
	if err == nil {
		return nil
	}
	return apperrors.StoreUnavailable(fmt.Sprintf("%s read failed", entity), err)
}

// formatTime formats a time.Time to RFC3339Nano for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime parses a RFC3339Nano string back to time.Time.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
