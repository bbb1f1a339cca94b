package pubsub

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// SNSAPI is the part of *sns.Client used by SNSProvider.
type SNSAPI interface {
	sns.ListSubscriptionsByTopicAPIClient
	Subscribe(ctx context.Context, params *sns.SubscribeInput, optFns ...func(*sns.Options)) (*sns.SubscribeOutput, error)
}

var newSNSClientFromConfig = func(cfg aws.Config, optFns ...func(*sns.Options)) SNSAPI {
	return sns.NewFromConfig(cfg, optFns...)
}

// SNSProvider implements Provider on top of Amazon SNS.
type SNSProvider struct {
	client SNSAPI
}

func NewSNSProvider(client SNSAPI) *SNSProvider {
	return &SNSProvider{client: client}
}

// NewSNSProviderFromConfig builds an SNS client from cfg. A non-empty
// baseEndpoint overrides the service endpoint (LocalStack).
func NewSNSProviderFromConfig(cfg aws.Config, baseEndpoint string) *SNSProvider {
	client := newSNSClientFromConfig(cfg, func(o *sns.Options) {
		if baseEndpoint != "" {
			o.BaseEndpoint = aws.String(baseEndpoint)
		}
	})
	return NewSNSProvider(client)
}

func (p *SNSProvider) Subscribe(ctx context.Context, topic, protocol, endpoint string) error {
	_, err := p.client.Subscribe(ctx, &sns.SubscribeInput{
		TopicArn: aws.String(topic),
		Protocol: aws.String(protocol),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return fmt.Errorf("sns subscribe: %w", err)
	}
	return nil
}

func (p *SNSProvider) ListSubscriptions(ctx context.Context, topic string) ([]Subscription, error) {
	paginator := sns.NewListSubscriptionsByTopicPaginator(p.client, &sns.ListSubscriptionsByTopicInput{
		TopicArn: aws.String(topic),
	})

	var subs []Subscription
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("sns list subscriptions: %w", err)
		}
		for _, s := range page.Subscriptions {
			subs = append(subs, Subscription{
				Endpoint:        aws.ToString(s.Endpoint),
				SubscriptionARN: aws.ToString(s.SubscriptionArn),
			})
		}
	}
	return subs, nil
}
