// Package sqlite is the default ledger backend: a single-file SQLite
// database opened through sqlx with the pure-Go driver, so the binary
// stays cgo-free.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/seojun-dev/danwatch/internal/ledger"
)

const schema = `
CREATE TABLE IF NOT EXISTS product_table (
	id          TEXT PRIMARY KEY,
	keyword     TEXT,
	title       TEXT,
	description TEXT,
	price       INTEGER,
	seller      TEXT,
	location    TEXT,
	url         TEXT,
	recorded_at DATETIME DEFAULT CURRENT_TIMESTAMP
)`

// Store is a SQLite-backed ledger.
type Store struct {
	db *sqlx.DB
}

// Open opens (and if needed creates) the ledger database at path.
// busy_timeout and WAL keep concurrent monitor writes from tripping
// over SQLITE_BUSY.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger db: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init ledger schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Exists reports whether id has already been recorded.
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.GetContext(ctx, &one, "SELECT 1 FROM product_table WHERE id = ?", id)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, fmt.Errorf("ledger exists check: %w", err)
}

// Insert records the entry, ignoring duplicates. INSERT OR IGNORE keyed
// on the primary key makes the race between two monitors observing
// exists=false for the same ID harmless: one insert wins, the other is
// a no-op.
func (s *Store) Insert(ctx context.Context, e ledger.Entry) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT OR IGNORE INTO product_table
			(id, keyword, title, description, price, seller, location, url, recorded_at)
		VALUES
			(:id, :keyword, :title, :description, :price, :seller, :location, :url, :recorded_at)`,
		e)
	if err != nil {
		return fmt.Errorf("ledger insert: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
