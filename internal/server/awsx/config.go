// Package awsx loads the shared AWS configuration used by the SNS and
// DynamoDB clients.
package awsx

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/dmitrijs2005/prisynced/internal/server/config"
)

var loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

// LoadConfig resolves an aws.Config for the configured region. Static
// credentials are used when an access key is configured; otherwise the
// default credential chain applies.
func LoadConfig(ctx context.Context, c *config.Config) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.AWSRegion),
	}

	if c.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			c.AWSAccessKeyID,
			c.AWSSecretAccessKey,
			c.AWSSessionToken,
		)))
	}

	return loadDefaultAWSConfig(ctx, opts...)
}
