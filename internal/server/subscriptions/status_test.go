package subscriptions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/prisynced/internal/server/pubsub"
)

func TestClassify(t *testing.T) {
	records := []pubsub.Subscription{
		{Endpoint: "pending@x.com", SubscriptionARN: pubsub.PendingConfirmation},
		{Endpoint: "done@x.com", SubscriptionARN: priceTopic + ":5b1c"},
	}

	tests := []struct {
		name      string
		records   []pubsub.Subscription
		recipient string
		want      Status
	}{
		{"no records", nil, "a@x.com", StatusNone},
		{"no matching endpoint", records, "a@x.com", StatusNone},
		{"pending sentinel", records, "pending@x.com", StatusPending},
		{"real subscription arn", records, "done@x.com", StatusConfirmed},
		{"endpoint match is exact", records, "DONE@x.com", StatusNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.records, tt.recipient))
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "NONE", StatusNone.String())
	assert.Equal(t, "PENDING", StatusPending.String())
	assert.Equal(t, "CONFIRMED", StatusConfirmed.String())
}

func TestFailSafe(t *testing.T) {
	boom := errors.New("boom")

	for _, s := range []Status{StatusNone, StatusPending, StatusConfirmed} {
		assert.Equal(t, StatusNone, FailSafe(s, boom), "error with %s", s)
		assert.Equal(t, s, FailSafe(s, nil))
	}
}

func TestOracle_NoTopicConfigured(t *testing.T) {
	p := &fakeProvider{records: []pubsub.Subscription{{Endpoint: "a@x.com", SubscriptionARN: "arn:sub"}}}
	o := NewOracle(p, "", discardLogger())

	assert.Equal(t, StatusNone, o.Status(context.Background(), "a@x.com"))
	assert.Zero(t, p.providerCalls())
}

func TestOracle_Classifies(t *testing.T) {
	p := &fakeProvider{records: []pubsub.Subscription{
		{Endpoint: "a@x.com", SubscriptionARN: pubsub.PendingConfirmation},
	}}
	o := NewOracle(p, priceTopic, discardLogger())

	status, err := o.Query(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, status)
	assert.Equal(t, StatusNone, o.Status(context.Background(), "b@x.com"))
}

func TestOracle_ProviderErrorIsNeverConfirmed(t *testing.T) {
	p := &fakeProvider{
		records: []pubsub.Subscription{{Endpoint: "a@x.com", SubscriptionARN: "arn:sub"}},
		listErr: errors.New("AuthorizationError"),
	}
	o := NewOracle(p, priceTopic, discardLogger())

	_, err := o.Query(context.Background(), "a@x.com")
	require.Error(t, err)
	assert.Equal(t, StatusNone, o.Status(context.Background(), "a@x.com"))
}
