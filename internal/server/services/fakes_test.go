package services

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/dmitrijs2005/prisynced/internal/logging"
	"github.com/dmitrijs2005/prisynced/internal/server/models"
	"github.com/dmitrijs2005/prisynced/internal/server/pubsub"
)

const (
	priceTopic   = "arn:aws:sns:us-east-1:1:price-drop"
	restockTopic = "arn:aws:sns:us-east-1:1:restock"
)

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeProvider stands in for SNS.
type fakeProvider struct {
	mu sync.Mutex

	records    []pubsub.Subscription
	listErr    error
	subscribes []string
}

func (f *fakeProvider) ListSubscriptions(ctx context.Context, topic string) ([]pubsub.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.records, nil
}

func (f *fakeProvider) Subscribe(ctx context.Context, topic, protocol, endpoint string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribes = append(f.subscribes, topic)
	return nil
}

func (f *fakeProvider) subscribeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subscribes)
}

func (f *fakeProvider) set(records ...pubsub.Subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = records
}

// fakeReconciler records calls and returns canned results.
type fakeReconciler struct {
	requiresConfirmation bool
	err                  error

	ensured  []string
	repaired []string
}

func (f *fakeReconciler) EnsureOptedIn(ctx context.Context, recipient string) (bool, error) {
	f.ensured = append(f.ensured, recipient)
	return f.requiresConfirmation, f.err
}

func (f *fakeReconciler) RepairOnRead(ctx context.Context, recipient string) {
	f.repaired = append(f.repaired, recipient)
}

// countingItems wraps an items repository and counts writes.
type countingItems struct {
	inner interface {
		Get(ctx context.Context, productURL string) (*models.Item, error)
		Put(ctx context.Context, item *models.Item) error
		Delete(ctx context.Context, productURL string) error
		ListByUser(ctx context.Context, userID string) ([]*models.Item, error)
	}
	putErr  error
	listErr error
	writes  int
}

func (c *countingItems) Get(ctx context.Context, productURL string) (*models.Item, error) {
	return c.inner.Get(ctx, productURL)
}

func (c *countingItems) Put(ctx context.Context, item *models.Item) error {
	c.writes++
	if c.putErr != nil {
		return c.putErr
	}
	return c.inner.Put(ctx, item)
}

func (c *countingItems) Delete(ctx context.Context, productURL string) error {
	c.writes++
	return c.inner.Delete(ctx, productURL)
}

func (c *countingItems) ListByUser(ctx context.Context, userID string) ([]*models.Item, error) {
	if c.listErr != nil {
		return nil, c.listErr
	}
	return c.inner.ListByUser(ctx, userID)
}
