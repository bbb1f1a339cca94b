package items

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/prisynced/internal/common"
	"github.com/dmitrijs2005/prisynced/internal/server/models"
)

// InMemoryRepository keeps items in a map keyed by product URL.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]models.Item
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[string]models.Item)}
}

func (r *InMemoryRepository) Get(_ context.Context, productURL string) (*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[productURL]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(item), nil
}

func (r *InMemoryRepository) Put(_ context.Context, item *models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[item.ProductURL] = *clone(*item)
	return nil
}

func (r *InMemoryRepository) Delete(_ context.Context, productURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, productURL)
	return nil
}

func (r *InMemoryRepository) ListByUser(_ context.Context, userID string) ([]*models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Item, 0)
	for _, item := range r.items {
		if item.UserID == userID {
			result = append(result, clone(item))
		}
	}

	slices.SortFunc(result, func(a, b *models.Item) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return result, nil
}

func clone(item models.Item) *models.Item {
	if item.LastPrice != nil {
		p := *item.LastPrice
		item.LastPrice = &p
	}
	return &item
}
