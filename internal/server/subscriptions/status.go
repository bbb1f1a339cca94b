// Package subscriptions reconciles a user's alert opt-in held by the
// pub/sub provider with the is_subscribed flag in the identity store.
//
// The provider requires the recipient to confirm each subscription by
// email, so the provider-side state moves NONE -> PENDING -> CONFIRMED
// outside of any request. The Oracle classifies that state on demand; the
// Reconciler decides what, if anything, to change.
package subscriptions

import "github.com/dmitrijs2005/prisynced/internal/server/pubsub"

// Status is a point-in-time classification of a recipient's subscription
// to the primary alert topic. It is derived on every call and never stored.
type Status int

const (
	// StatusNone: never asked, or the earlier request is gone.
	StatusNone Status = iota
	// StatusPending: subscribe request issued, confirmation link not clicked.
	StatusPending
	// StatusConfirmed: recipient confirmed and can receive messages.
	StatusConfirmed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusConfirmed:
		return "CONFIRMED"
	default:
		return "NONE"
	}
}

// Classify derives the recipient's status from a topic's subscription list.
// The first entry whose endpoint equals recipient decides.
func Classify(records []pubsub.Subscription, recipient string) Status {
	for _, r := range records {
		if r.Endpoint != recipient {
			continue
		}
		if r.SubscriptionARN == pubsub.PendingConfirmation {
			return StatusPending
		}
		return StatusConfirmed
	}
	return StatusNone
}

// FailSafe maps a failed lookup to StatusNone. A lookup error is never
// reported as CONFIRMED.
func FailSafe(status Status, err error) Status {
	if err != nil {
		return StatusNone
	}
	return status
}
