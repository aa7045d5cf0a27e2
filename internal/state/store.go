// Package state keeps install receipts in a local SQLite database. A receipt
// records which skill is installed, where it came from and the checksum of
// its files, so installs can be idempotent and removals exact.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no receipt exists for a skill name.
var ErrNotFound = errors.New("receipt not found")

// Receipt records one installed skill.
type Receipt struct {
	ID          string
	Name        string
	Version     string
	Source      string // registry origin, e.g. "acme/toolbelt@main"
	Checksum    string // hex sha256 over the installed files
	InstalledAt time.Time
}

// Store is the receipt database.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the receipt database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	// modernc.org/sqlite takes pragmas in the DSN as _pragma=name(value).
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	// SQLite handles concurrency better with a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to state database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply state schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close merges the WAL back into the main file and closes the database.
func (s *Store) Close() error {
	_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return s.db.Close()
}

// Record inserts or replaces the receipt for a skill. The skill name is the
// key; re-recording an existing name keeps its receipt ID stable.
func (s *Store) Record(ctx context.Context, r Receipt) (Receipt, error) {
	if r.ID == "" {
		prev, err := s.Get(ctx, r.Name)
		switch {
		case err == nil:
			r.ID = prev.ID
		case errors.Is(err, ErrNotFound):
			r.ID = uuid.NewString()
		default:
			return Receipt{}, err
		}
	}
	if r.InstalledAt.IsZero() {
		r.InstalledAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO receipts (id, name, version, source, checksum, installed_at_unix_ms)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.ID, r.Name, r.Version, r.Source, r.Checksum, r.InstalledAt.UnixMilli())
	if err != nil {
		return Receipt{}, fmt.Errorf("record receipt for %s: %w", r.Name, err)
	}
	return r, nil
}

// Get returns the receipt for a skill name, or ErrNotFound.
func (s *Store) Get(ctx context.Context, name string) (Receipt, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, version, source, checksum, installed_at_unix_ms
		FROM receipts WHERE name = ?
	`, name)

	r, err := scanReceipt(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Receipt{}, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Receipt{}, fmt.Errorf("load receipt for %s: %w", name, err)
	}
	return r, nil
}

// List returns every receipt ordered by skill name.
func (s *Store) List(ctx context.Context) ([]Receipt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, version, source, checksum, installed_at_unix_ms
		FROM receipts ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	defer rows.Close()

	var out []Receipt
	for rows.Next() {
		r, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("list receipts: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list receipts: %w", err)
	}
	return out, nil
}

// Delete removes the receipt for a skill name. Deleting an absent name
// returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM receipts WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete receipt for %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete receipt for %s: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReceipt(row scanner) (Receipt, error) {
	var r Receipt
	var ms int64
	if err := row.Scan(&r.ID, &r.Name, &r.Version, &r.Source, &r.Checksum, &ms); err != nil {
		return Receipt{}, err
	}
	r.InstalledAt = time.UnixMilli(ms)
	return r, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS receipts (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  version TEXT NOT NULL DEFAULT '',
  source TEXT NOT NULL DEFAULT '',
  checksum TEXT NOT NULL DEFAULT '',
  installed_at_unix_ms INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_receipts_installed ON receipts(installed_at_unix_ms DESC);
`
