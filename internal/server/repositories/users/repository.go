// Package users declares the identity-store contract and its PostgreSQL,
// DynamoDB and in-memory implementations.
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/prisynced/internal/server/models"
)

// Repository stores user records keyed by user id (the email address).
type Repository interface {
	// Get returns the user or common.ErrorNotFound.
	Get(ctx context.Context, userID string) (*models.User, error)

	// Put writes the whole record, replacing any existing one.
	Put(ctx context.Context, user *models.User) error

	// MarkSubscribed sets is_subscribed to true without touching other
	// attributes. A missing record is created.
	MarkSubscribed(ctx context.Context, userID string) error

	// TouchLogin sets last_login without touching other attributes.
	// A missing record yields common.ErrorNotFound.
	TouchLogin(ctx context.Context, userID string, at time.Time) error
}
