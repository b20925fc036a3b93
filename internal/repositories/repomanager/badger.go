package repomanager

import (
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/dmitrijs2005/docsim/internal/kvx"
	"github.com/dmitrijs2005/docsim/internal/repositories/documents"
	"github.com/dmitrijs2005/docsim/internal/repositories/sessions"
	"github.com/dmitrijs2005/docsim/internal/repositories/users"
)

// BadgerRepositoryManager vends repositories sharing one badger database.
type BadgerRepositoryManager struct {
	db        *badger.DB
	users     *users.BadgerRepository
	documents *documents.BadgerRepository
	sessions  *sessions.BadgerRepository
}

func NewBadgerRepositoryManager(cfg kvx.Config) (*BadgerRepositoryManager, error) {
	db, err := kvx.Open(cfg)
	if err != nil {
		return nil, err
	}

	docs, err := documents.NewBadgerRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BadgerRepositoryManager{
		db:        db,
		users:     users.NewBadgerRepository(db),
		documents: docs,
		sessions:  sessions.NewBadgerRepository(db),
	}, nil
}

func (m *BadgerRepositoryManager) Users() users.Repository         { return m.users }
func (m *BadgerRepositoryManager) Documents() documents.Repository { return m.documents }
func (m *BadgerRepositoryManager) Sessions() sessions.Repository   { return m.sessions }

// Close returns leased document IDs and closes the database.
func (m *BadgerRepositoryManager) Close() error {
	return errors.Join(m.documents.Close(), m.db.Close())
}
