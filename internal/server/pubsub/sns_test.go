package pubsub

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNS struct {
	pages     [][]types.Subscription
	listErr   error
	listCalls int
	tokens    []string

	subscribeErr error
	subscribed   []*sns.SubscribeInput
}

func (f *fakeSNS) ListSubscriptionsByTopic(ctx context.Context, in *sns.ListSubscriptionsByTopicInput, _ ...func(*sns.Options)) (*sns.ListSubscriptionsByTopicOutput, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.tokens = append(f.tokens, aws.ToString(in.NextToken))
	page := f.listCalls
	f.listCalls++

	out := &sns.ListSubscriptionsByTopicOutput{Subscriptions: f.pages[page]}
	if page+1 < len(f.pages) {
		out.NextToken = aws.String("page-2")
	}
	return out, nil
}

func (f *fakeSNS) Subscribe(ctx context.Context, in *sns.SubscribeInput, _ ...func(*sns.Options)) (*sns.SubscribeOutput, error) {
	f.subscribed = append(f.subscribed, in)
	if f.subscribeErr != nil {
		return nil, f.subscribeErr
	}
	return &sns.SubscribeOutput{SubscriptionArn: aws.String(PendingConfirmation)}, nil
}

func TestListSubscriptions_FollowsPages(t *testing.T) {
	f := &fakeSNS{pages: [][]types.Subscription{
		{{Endpoint: aws.String("a@x.com"), SubscriptionArn: aws.String("arn:sub:1")}},
		{{Endpoint: aws.String("b@x.com"), SubscriptionArn: aws.String(PendingConfirmation)}},
	}}
	p := NewSNSProvider(f)

	subs, err := p.ListSubscriptions(context.Background(), "arn:topic")
	require.NoError(t, err)

	assert.Equal(t, []Subscription{
		{Endpoint: "a@x.com", SubscriptionARN: "arn:sub:1"},
		{Endpoint: "b@x.com", SubscriptionARN: PendingConfirmation},
	}, subs)
	assert.Equal(t, []string{"", "page-2"}, f.tokens)
}

func TestListSubscriptions_Error(t *testing.T) {
	p := NewSNSProvider(&fakeSNS{listErr: errors.New("throttled")})

	_, err := p.ListSubscriptions(context.Background(), "arn:topic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestSubscribe(t *testing.T) {
	f := &fakeSNS{}
	p := NewSNSProvider(f)

	require.NoError(t, p.Subscribe(context.Background(), "arn:topic", ProtocolEmail, "a@x.com"))
	require.Len(t, f.subscribed, 1)
	assert.Equal(t, "arn:topic", aws.ToString(f.subscribed[0].TopicArn))
	assert.Equal(t, "email", aws.ToString(f.subscribed[0].Protocol))
	assert.Equal(t, "a@x.com", aws.ToString(f.subscribed[0].Endpoint))

	f.subscribeErr = errors.New("denied")
	err := p.Subscribe(context.Background(), "arn:topic", ProtocolEmail, "a@x.com")
	assert.ErrorContains(t, err, "denied")
}

func TestNewSNSProviderFromConfig_BaseEndpoint(t *testing.T) {
	orig := newSNSClientFromConfig
	t.Cleanup(func() { newSNSClientFromConfig = orig })

	var captured *string
	newSNSClientFromConfig = func(cfg aws.Config, optFns ...func(*sns.Options)) SNSAPI {
		var o sns.Options
		for _, fn := range optFns {
			fn(&o)
		}
		captured = o.BaseEndpoint
		return &fakeSNS{}
	}

	NewSNSProviderFromConfig(aws.Config{}, "http://localhost:4566")
	require.NotNil(t, captured)
	assert.Equal(t, "http://localhost:4566", *captured)

	NewSNSProviderFromConfig(aws.Config{}, "")
	assert.Nil(t, captured)
}
