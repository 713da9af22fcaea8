package repomanager

import (
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/snippets"
	"github.com/dmitrijs2005/snipkeeper/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps everything in process memory; nothing
// survives a restart.
type InMemoryRepositoryManager struct {
	users    *users.InMemoryRepository
	snippets *snippets.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users:    users.NewInMemoryRepository(),
		snippets: snippets.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Snippets() snippets.Repository {
	return m.snippets
}
