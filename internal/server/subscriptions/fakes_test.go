package subscriptions

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/dmitrijs2005/prisynced/internal/common"
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

// fakeProvider records every call made to the pub/sub provider.
type fakeProvider struct {
	mu sync.Mutex

	records []pubsub.Subscription
	listErr error

	subscribeErr map[string]error

	listCalls  int
	subscribes []string // topics
}

func (f *fakeProvider) ListSubscriptions(ctx context.Context, topic string) ([]pubsub.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.records, nil
}

func (f *fakeProvider) Subscribe(ctx context.Context, topic, protocol, endpoint string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribes = append(f.subscribes, topic)
	return f.subscribeErr[topic]
}

func (f *fakeProvider) providerCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls + len(f.subscribes)
}

type fakeUsers struct {
	users     map[string]*models.User
	getErr    error
	markErr   error
	markCalls int
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{users: map[string]*models.User{}}
	for _, u := range users {
		f.users[u.UserID] = u
	}
	return f
}

func (f *fakeUsers) Get(ctx context.Context, userID string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) MarkSubscribed(ctx context.Context, userID string) error {
	f.markCalls++
	if f.markErr != nil {
		return f.markErr
	}
	u, ok := f.users[userID]
	if !ok {
		u = &models.User{UserID: userID, Email: userID}
		f.users[userID] = u
	}
	u.IsSubscribed = true
	return nil
}
