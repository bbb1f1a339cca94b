package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/prisynced/internal/common"
	"github.com/dmitrijs2005/prisynced/internal/server/models"
)

// InMemoryRepository keeps users in a map. Records are copied on the way
// in and out so callers cannot mutate stored state.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]models.User)}
}

func (r *InMemoryRepository) Get(_ context.Context, userID string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (r *InMemoryRepository) Put(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.UserID] = *user
	return nil
}

func (r *InMemoryRepository) MarkSubscribed(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		u = models.User{UserID: userID, Email: userID}
	}
	u.IsSubscribed = true
	r.users[userID] = u
	return nil
}

func (r *InMemoryRepository) TouchLogin(_ context.Context, userID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return common.ErrorNotFound
	}
	u.LastLogin = &at
	r.users[userID] = u
	return nil
}
