package subscriptions

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/prisynced/internal/common"
	"github.com/dmitrijs2005/prisynced/internal/logging"
	"github.com/dmitrijs2005/prisynced/internal/server/models"
	"github.com/dmitrijs2005/prisynced/internal/server/pubsub"
)

// UserStore is the identity-store access the Reconciler needs.
type UserStore interface {
	Get(ctx context.Context, userID string) (*models.User, error)
	MarkSubscribed(ctx context.Context, userID string) error
}

// StatusSource classifies a recipient; see Oracle.
type StatusSource interface {
	Status(ctx context.Context, recipient string) Status
}

// Subscriber issues subscribe requests to the provider.
type Subscriber interface {
	Subscribe(ctx context.Context, topic, protocol, endpoint string) error
}

// Mode selects which reconciliation path runs.
type Mode int

const (
	// ModeEnsureOptedIn runs when a user tracks an item: subscribe
	// requests are issued if the provider knows nothing about the user.
	ModeEnsureOptedIn Mode = iota
	// ModeRepairOnRead runs when a user lists items: it only picks up a
	// confirmation that happened since the last call.
	ModeRepairOnRead
)

func (m Mode) String() string {
	if m == ModeRepairOnRead {
		return "repair_on_read"
	}
	return "ensure_opted_in"
}

// Propagates reports whether reconciliation failures in this mode reach
// the caller. The write path propagates; the read path logs and drops
// them.
func (m Mode) Propagates() bool {
	return m == ModeEnsureOptedIn
}

// Reconciler brings the local is_subscribed flag and the provider state
// into agreement.
//
//	local  provider   action                     requiresConfirmation
//	false  NONE       subscribe to every topic   true  (ensure only)
//	false  PENDING    nothing                    true
//	false  CONFIRMED  set local flag             false
//	true   any        nothing, no provider call  false
type Reconciler struct {
	users      UserStore
	oracle     StatusSource
	subscriber Subscriber
	topics     []string
	logger     logging.Logger
}

// NewReconciler builds a Reconciler. topics lists every alert topic a new
// recipient is subscribed to.
func NewReconciler(users UserStore, oracle StatusSource, subscriber Subscriber, topics []string, logger logging.Logger) *Reconciler {
	return &Reconciler{
		users:      users,
		oracle:     oracle,
		subscriber: subscriber,
		topics:     topics,
		logger:     logger.With("module", "subscription_reconciler"),
	}
}

// EnsureOptedIn reconciles on the write path and reports whether the user
// still has to confirm by email. Subscribe and store failures are returned.
func (r *Reconciler) EnsureOptedIn(ctx context.Context, recipient string) (bool, error) {
	return r.Run(ctx, recipient, ModeEnsureOptedIn)
}

// RepairOnRead reconciles on the read path. It is best effort: failures are
// logged and never returned.
func (r *Reconciler) RepairOnRead(ctx context.Context, recipient string) {
	_, _ = r.Run(ctx, recipient, ModeRepairOnRead)
}

// Run reconciles recipient in the given mode and applies the mode's
// failure policy to the result.
func (r *Reconciler) Run(ctx context.Context, recipient string, mode Mode) (bool, error) {
	requiresConfirmation, err := r.reconcile(ctx, recipient, mode)
	if err == nil || mode.Propagates() {
		return requiresConfirmation, err
	}

	r.logger.Warn(ctx, "reconciliation failed", "mode", mode.String(), "recipient", recipient, "error", err)
	return requiresConfirmation, nil
}

func (r *Reconciler) reconcile(ctx context.Context, recipient string, mode Mode) (bool, error) {
	subscribed, err := r.isSubscribed(ctx, recipient)
	if err != nil {
		return false, err
	}
	if subscribed {
		return false, nil
	}

	status := r.oracle.Status(ctx, recipient)
	r.logger.Debug(ctx, "subscription status", "mode", mode.String(), "recipient", recipient, "status", status.String())

	switch status {
	case StatusConfirmed:
		if err := r.users.MarkSubscribed(ctx, recipient); err != nil {
			return false, fmt.Errorf("mark subscribed: %w", err)
		}
		r.logger.Info(ctx, "subscription confirmed", "recipient", recipient)
		return false, nil

	case StatusPending:
		return true, nil

	default:
		if mode != ModeEnsureOptedIn {
			return true, nil
		}
		if err := r.subscribeAll(ctx, recipient); err != nil {
			return true, err
		}
		r.logger.Info(ctx, "subscribe requests sent", "recipient", recipient, "topics", len(r.topics))
		return true, nil
	}
}

// isSubscribed reads the local flag. A missing user counts as not subscribed.
func (r *Reconciler) isSubscribed(ctx context.Context, recipient string) (bool, error) {
	user, err := r.users.Get(ctx, recipient)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("load user: %w", err)
	}
	return user.IsSubscribed, nil
}

// subscribeAll sends one subscribe request per topic concurrently. Every
// topic is attempted; the first failure is returned.
func (r *Reconciler) subscribeAll(ctx context.Context, recipient string) error {
	var g errgroup.Group
	for _, topic := range r.topics {
		g.Go(func() error {
			if err := r.subscriber.Subscribe(ctx, topic, pubsub.ProtocolEmail, recipient); err != nil {
				return fmt.Errorf("%w: topic %s: %w", common.ErrorProviderUnavailable, topic, err)
			}
			return nil
		})
	}
	return g.Wait()
}
