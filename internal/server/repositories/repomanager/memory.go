package repomanager

import (
	"context"

	"github.com/dmitrijs2005/prisynced/internal/server/repositories/items"
	"github.com/dmitrijs2005/prisynced/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps everything in process memory.
type InMemoryRepositoryManager struct {
	users *users.InMemoryRepository
	items *items.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users: users.NewInMemoryRepository(),
		items: items.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *InMemoryRepositoryManager) Items() items.Repository { return m.items }

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Close() error { return nil }
