package storage

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS ip_entries (
	position INTEGER NOT NULL,
	address  TEXT PRIMARY KEY
);
CREATE INDEX IF NOT EXISTS ip_entries_position_idx ON ip_entries (position);`

// SQLStore keeps the registry in the ip_entries table of a PostgreSQL or SQLite database.
type SQLStore struct {
	db     *sqlx.DB
	driver string
}

// NewSQLStore wraps an open connection. driver is only used for logging and errors.
func NewSQLStore(db *sqlx.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

// EnsureSchema creates the ip_entries table when missing. PostgreSQL
// deployments get the table from migrations instead.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("storage: %s schema: %w", s.driver, err)
	}
	return nil
}

// Load returns the stored entries in insertion order.
func (s *SQLStore) Load(ctx context.Context) ([]string, error) {
	var entries []string
	if err := s.db.SelectContext(ctx, &entries, `SELECT address FROM ip_entries ORDER BY position`); err != nil {
		return nil, fmt.Errorf("storage: %s load: %w", s.driver, err)
	}
	return entries, nil
}

// Save replaces every row with entries inside one transaction.
func (s *SQLStore) Save(ctx context.Context, entries []string) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: %s begin: %w", s.driver, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM ip_entries`); err != nil {
		return fmt.Errorf("storage: %s clear: %w", s.driver, err)
	}
	insert := tx.Rebind(`INSERT INTO ip_entries (position, address) VALUES (?, ?)`)
	for i, addr := range entries {
		if _, err = tx.ExecContext(ctx, insert, i, addr); err != nil {
			return fmt.Errorf("storage: %s insert %s: %w", s.driver, addr, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("storage: %s commit: %w", s.driver, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
