// Package repomanager opens the configured storage backend and vends its
// repositories.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/prisynced/internal/server/config"
	"github.com/dmitrijs2005/prisynced/internal/server/repositories/items"
	"github.com/dmitrijs2005/prisynced/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Items() items.Repository
	Close() error
}

// New opens the backend named by c.StorageBackend.
func New(ctx context.Context, c *config.Config) (RepositoryManager, error) {
	switch c.StorageBackend {
	case config.BackendPostgres:
		return NewPostgresRepositoryManager(c.DatabaseDSN)
	case config.BackendDynamoDB:
		return NewDynamoRepositoryManager(ctx, c)
	case config.BackendMemory:
		return NewInMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}
