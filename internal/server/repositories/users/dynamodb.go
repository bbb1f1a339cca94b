package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/dmitrijs2005/prisynced/internal/common"
	"github.com/dmitrijs2005/prisynced/internal/server/models"
)

// DynamoAPI is the part of *dynamodb.Client used for the users table.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// DynamoRepository stores users in a table with partition key user_id (S).
type DynamoRepository struct {
	client DynamoAPI
	table  string
}

func NewDynamoRepository(client DynamoAPI, table string) *DynamoRepository {
	return &DynamoRepository{client: client, table: table}
}

func userKey(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"user_id": &types.AttributeValueMemberS{Value: userID},
	}
}

func (r *DynamoRepository) Get(ctx context.Context, userID string) (*models.User, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key:       userKey(userID),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: dynamodb get: %w", common.ErrorStoreUnavailable, err)
	}
	if out.Item == nil {
		return nil, common.ErrorNotFound
	}

	user := &models.User{}
	if err := attributevalue.UnmarshalMap(out.Item, user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return user, nil
}

func (r *DynamoRepository) Put(ctx context.Context, user *models.User) error {
	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("%w: dynamodb put: %w", common.ErrorStoreUnavailable, err)
	}
	return nil
}

func (r *DynamoRepository) MarkSubscribed(ctx context.Context, userID string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.table),
		Key:              userKey(userID),
		UpdateExpression: aws.String("SET is_subscribed = :subscribed, email = if_not_exists(email, :email)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":subscribed": &types.AttributeValueMemberBOOL{Value: true},
			":email":      &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: dynamodb update: %w", common.ErrorStoreUnavailable, err)
	}
	return nil
}

func (r *DynamoRepository) TouchLogin(ctx context.Context, userID string, at time.Time) error {
	ts, err := attributevalue.Marshal(at)
	if err != nil {
		return fmt.Errorf("encode last_login: %w", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.table),
		Key:                 userKey(userID),
		UpdateExpression:    aws.String("SET last_login = :last_login"),
		ConditionExpression: aws.String("attribute_exists(user_id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":last_login": ts,
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("%w: dynamodb update: %w", common.ErrorStoreUnavailable, err)
	}
	return nil
}
