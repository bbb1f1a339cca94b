package items

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/dmitrijs2005/prisynced/internal/common"
	"github.com/dmitrijs2005/prisynced/internal/server/models"
)

// DynamoAPI is the part of *dynamodb.Client used for the products table.
type DynamoAPI interface {
	dynamodb.QueryAPIClient
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// DynamoRepository stores items in a table with partition key
// product_url (S) and a global secondary index on user_id (hash) and
// created_at (range).
type DynamoRepository struct {
	client    DynamoAPI
	table     string
	userIndex string
}

func NewDynamoRepository(client DynamoAPI, table, userIndex string) *DynamoRepository {
	return &DynamoRepository{client: client, table: table, userIndex: userIndex}
}

func itemKey(productURL string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"product_url": &types.AttributeValueMemberS{Value: productURL},
	}
}

func (r *DynamoRepository) Get(ctx context.Context, productURL string) (*models.Item, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       itemKey(productURL),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: dynamodb get: %w", common.ErrorStoreUnavailable, err)
	}
	if out.Item == nil {
		return nil, common.ErrorNotFound
	}

	item := &models.Item{}
	if err := attributevalue.UnmarshalMap(out.Item, item); err != nil {
		return nil, fmt.Errorf("decode item: %w", err)
	}
	return item, nil
}

// timeLayout is RFC3339 with a fixed nine-digit fraction so created_at,
// the index range key, sorts lexicographically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func encodeTime(t time.Time) (types.AttributeValue, error) {
	return &types.AttributeValueMemberS{Value: t.UTC().Format(timeLayout)}, nil
}

func marshalItem(item *models.Item) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMapWithOptions(item, func(o *attributevalue.EncoderOptions) {
		o.EncodeTime = encodeTime
	})
}

func (r *DynamoRepository) Put(ctx context.Context, item *models.Item) error {
	av, err := marshalItem(item)
	if err != nil {
		return fmt.Errorf("encode item: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("%w: dynamodb put: %w", common.ErrorStoreUnavailable, err)
	}
	return nil
}

func (r *DynamoRepository) Delete(ctx context.Context, productURL string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.table),
		Key:       itemKey(productURL),
	})
	if err != nil {
		return fmt.Errorf("%w: dynamodb delete: %w", common.ErrorStoreUnavailable, err)
	}
	return nil
}

func (r *DynamoRepository) ListByUser(ctx context.Context, userID string) ([]*models.Item, error) {
	paginator := dynamodb.NewQueryPaginator(r.client, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		IndexName:              aws.String(r.userIndex),
		KeyConditionExpression: aws.String("user_id = :user_id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":user_id": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false),
	})

	result := make([]*models.Item, 0)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: dynamodb query: %w", common.ErrorStoreUnavailable, err)
		}

		var batch []*models.Item
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("decode items: %w", err)
		}
		result = append(result, batch...)
	}
	return result, nil
}
