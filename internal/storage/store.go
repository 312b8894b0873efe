// Package storage persists the IP registry as one flat ordered list of strings.
package storage

import (
	"context"
	"fmt"

	coreconfig "github.com/m3rciful/ipbot/core/config"
	"github.com/m3rciful/ipbot/core/database"
)

// Store is the durable backing of the registry. Save always receives the
// full ordered list and replaces whatever was stored before.
type Store interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, entries []string) error
	Close() error
}

// Open selects the backend configured in cfg.Driver.
func Open(ctx context.Context, cfg coreconfig.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "", coreconfig.StorageFile:
		return NewFileStore(cfg.Path), nil
	case coreconfig.StorageSQLite:
		db, err := database.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		s := NewSQLStore(db, coreconfig.StorageSQLite)
		if err := s.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return s, nil
	case coreconfig.StoragePostgres:
		if err := database.RunMigrations(cfg.Database); err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
		return NewSQLStore(db, coreconfig.StoragePostgres), nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}
