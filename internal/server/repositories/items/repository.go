// Package items declares the tracking-store contract and its PostgreSQL,
// DynamoDB and in-memory implementations.
package items

import (
	"context"

	"github.com/dmitrijs2005/prisynced/internal/server/models"
)

// Repository stores tracked items keyed by product URL.
type Repository interface {
	// Get returns the item or common.ErrorNotFound.
	Get(ctx context.Context, productURL string) (*models.Item, error)

	// Put writes the whole record, replacing any existing one with the
	// same URL regardless of owner.
	Put(ctx context.Context, item *models.Item) error

	// Delete removes the item. Deleting a missing URL is not an error.
	Delete(ctx context.Context, productURL string) error

	// ListByUser returns the user's items, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Item, error)
}
