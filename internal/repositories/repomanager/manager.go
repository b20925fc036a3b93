// Package repomanager bundles the users, documents and sessions repositories
// of one storage engine behind a single handle.
package repomanager

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrijs2005/docsim/internal/config"
	"github.com/dmitrijs2005/docsim/internal/kvx"
	"github.com/dmitrijs2005/docsim/internal/repositories/documents"
	"github.com/dmitrijs2005/docsim/internal/repositories/sessions"
	"github.com/dmitrijs2005/docsim/internal/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Documents() documents.Repository
	Sessions() sessions.Repository
	// Close releases the underlying engine. Repositories must not be used afterwards.
	Close() error
}

// New opens the engine selected by cfg.StorageEngine. Badger diagnostics go
// to the default slog logger.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.StorageEngine {
	case config.EngineSQLite:
		m, err := NewSQLiteRepositoryManager(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.EngineBadger:
		m, err := NewBadgerRepositoryManager(kvx.Config{Dir: cfg.BadgerDir, SyncWrites: true, Logger: slog.Default()})
		if err != nil {
			return nil, err
		}
		return m, nil
	case config.EngineMemory:
		return NewInMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage engine %q", cfg.StorageEngine)
	}
}
