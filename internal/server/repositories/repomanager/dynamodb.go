package repomanager

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/dmitrijs2005/prisynced/internal/server/awsx"
	"github.com/dmitrijs2005/prisynced/internal/server/config"
	"github.com/dmitrijs2005/prisynced/internal/server/repositories/items"
	"github.com/dmitrijs2005/prisynced/internal/server/repositories/users"
)

// DynamoRepositoryManager serves both stores from one DynamoDB client.
// Tables and the user index are provisioned outside the application.
type DynamoRepositoryManager struct {
	users users.Repository
	items items.Repository
}

var loadAWSConfig = awsx.LoadConfig

func NewDynamoRepositoryManager(ctx context.Context, c *config.Config) (*DynamoRepositoryManager, error) {
	awsCfg, err := loadAWSConfig(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if c.AWSBaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.AWSBaseEndpoint)
		}
	})

	return &DynamoRepositoryManager{
		users: users.NewDynamoRepository(client, c.UsersTable),
		items: items.NewDynamoRepository(client, c.ProductsTable, c.UserProductsIndex),
	}, nil
}

func (m *DynamoRepositoryManager) Users() users.Repository { return m.users }

func (m *DynamoRepositoryManager) Items() items.Repository { return m.items }

func (m *DynamoRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *DynamoRepositoryManager) Close() error { return nil }
