package repomanager

import (
	"github.com/dmitrijs2005/docsim/internal/repositories/documents"
	"github.com/dmitrijs2005/docsim/internal/repositories/sessions"
	"github.com/dmitrijs2005/docsim/internal/repositories/users"
)

// InMemoryRepositoryManager keeps everything in process memory. State is
// lost on Close.
type InMemoryRepositoryManager struct {
	users     *users.MemoryRepository
	documents *documents.MemoryRepository
	sessions  *sessions.MemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:     users.NewMemoryRepository(),
		documents: documents.NewMemoryRepository(),
		sessions:  sessions.NewMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Users() users.Repository         { return m.users }
func (m *InMemoryRepositoryManager) Documents() documents.Repository { return m.documents }
func (m *InMemoryRepositoryManager) Sessions() sessions.Repository   { return m.sessions }
func (m *InMemoryRepositoryManager) Close() error                    { return nil }
