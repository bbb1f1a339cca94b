package subscriptions

import (
	"context"

	"github.com/dmitrijs2005/prisynced/internal/logging"
	"github.com/dmitrijs2005/prisynced/internal/server/pubsub"
)

// SubscriptionLister lists a topic's subscriptions.
type SubscriptionLister interface {
	ListSubscriptions(ctx context.Context, topic string) ([]pubsub.Subscription, error)
}

// Oracle reports a recipient's status against the primary alert topic.
type Oracle struct {
	lister       SubscriptionLister
	primaryTopic string
	logger       logging.Logger
}

// NewOracle builds an Oracle. An empty primaryTopic makes every lookup
// return StatusNone without contacting the provider.
func NewOracle(lister SubscriptionLister, primaryTopic string, logger logging.Logger) *Oracle {
	return &Oracle{
		lister:       lister,
		primaryTopic: primaryTopic,
		logger:       logger.With("module", "subscription_oracle"),
	}
}

// Query performs the provider lookup and reports its error, if any.
func (o *Oracle) Query(ctx context.Context, recipient string) (Status, error) {
	if o.primaryTopic == "" {
		return StatusNone, nil
	}

	records, err := o.lister.ListSubscriptions(ctx, o.primaryTopic)
	if err != nil {
		return StatusNone, err
	}
	return Classify(records, recipient), nil
}

// Status is Query passed through FailSafe; it never fails.
func (o *Oracle) Status(ctx context.Context, recipient string) Status {
	status, err := o.Query(ctx, recipient)
	if err != nil {
		o.logger.Warn(ctx, "subscription status lookup failed, assuming none", "recipient", recipient, "error", err)
	}
	return FailSafe(status, err)
}
