// Package pubsub talks to the notification provider (Amazon SNS) on behalf
// of the subscription reconciler.
package pubsub

import "context"

// PendingConfirmation is the subscription identifier SNS reports while the
// recipient has not yet clicked the confirmation link.
const PendingConfirmation = "PendingConfirmation"

// ProtocolEmail is the delivery protocol used for alert subscriptions.
const ProtocolEmail = "email"

// Subscription is one entry of a topic's subscription list.
type Subscription struct {
	Endpoint        string
	SubscriptionARN string
}

// Provider is the subset of the pub/sub service the tracker depends on.
type Provider interface {
	// Subscribe asks the provider to deliver topic messages to endpoint.
	// The provider deduplicates by (topic, endpoint).
	Subscribe(ctx context.Context, topic, protocol, endpoint string) error

	// ListSubscriptions returns every subscription of topic.
	ListSubscriptions(ctx context.Context, topic string) ([]Subscription, error)
}
