// Where: internal/paramstore/dynamodb.go
// What: DynamoDB-backed parameter store.
// Why: Accounts that keep launch metadata in a table instead of SSM.
package paramstore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	dynamoKeyAttribute   = "Name"
	dynamoValueAttribute = "Value"
)

// DynamoDBAPI is the subset of *dynamodb.Client used by the store.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// DynamoDBStore keeps one item per key: {Name: S, Value: S}.
type DynamoDBStore struct {
	client DynamoDBAPI
	table  string
}

func NewDynamoDBStore(client DynamoDBAPI, table string) *DynamoDBStore {
	return &DynamoDBStore{client: client, table: table}
}

func (s *DynamoDBStore) Get(ctx context.Context, key string) (Lookup, error) {
	if s.client == nil {
		return Lookup{}, errNilClient
	}
	resp, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            itemKey(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return Lookup{}, err
	}
	if len(resp.Item) == 0 {
		return Lookup{}, nil
	}
	attr, ok := resp.Item[dynamoValueAttribute]
	if !ok {
		return Lookup{}, fmt.Errorf("item %s in %s has no %s attribute", key, s.table, dynamoValueAttribute)
	}
	value, ok := attr.(*types.AttributeValueMemberS)
	if !ok {
		return Lookup{}, fmt.Errorf("item %s in %s: %s must be a string attribute", key, s.table, dynamoValueAttribute)
	}
	return Lookup{Value: value.Value, Found: true}, nil
}

func (s *DynamoDBStore) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return errNilClient
	}
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       itemKey(key),
	})
	return err
}

func itemKey(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		dynamoKeyAttribute: &types.AttributeValueMemberS{Value: key},
	}
}
