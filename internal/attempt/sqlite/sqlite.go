// Package sqlite persists fetch attempts in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/iw2rmb/splice/internal/attempt"
)

const schema = `
CREATE TABLE IF NOT EXISTS attempts (
    key         TEXT PRIMARY KEY,
    code        INTEGER NOT NULL,
    at_ms       INTEGER NOT NULL
);
`

// Store implements attempt.Store.
type Store struct {
	db *sql.DB
}

var _ attempt.Store = (*Store)(nil)

// Open opens or creates the database at path, creating parent directories.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Put upserts r.
func (s *Store) Put(ctx context.Context, r attempt.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attempts (key, code, at_ms) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET code = excluded.code, at_ms = excluded.at_ms`,
		r.Key, int(r.Code), r.At.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("upsert attempt: %w", err)
	}
	return nil
}

// All returns every stored record.
func (s *Store) All(ctx context.Context) ([]attempt.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, code, at_ms FROM attempts ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []attempt.Record
	for rows.Next() {
		var (
			r    attempt.Record
			code int
			ms   int64
		)
		if err := rows.Scan(&r.Key, &code, &ms); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		r.Code = attempt.Code(code)
		r.At = time.UnixMilli(ms)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Prune deletes records older than cutoff and returns how many went.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM attempts WHERE at_ms < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("prune attempts: %w", err)
	}
	return res.RowsAffected()
}
