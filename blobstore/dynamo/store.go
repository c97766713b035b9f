package dynamo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	ddb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/notesync/blobstore"
)

const (
	attrKey       = "key"
	attrBody      = "body"
	attrUpdatedAt = "updated_at"
)

// Client is the interface for DynamoDB operations.
type Client interface {
	GetItem(ctx context.Context, params *ddb.GetItemInput, optFns ...func(*ddb.Options)) (*ddb.GetItemOutput, error)
	PutItem(ctx context.Context, params *ddb.PutItemInput, optFns ...func(*ddb.Options)) (*ddb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *ddb.DeleteItemInput, optFns ...func(*ddb.Options)) (*ddb.DeleteItemOutput, error)
}

// Store implements blobstore.Store on a DynamoDB table.
type Store struct {
	client Client
	table  string
	now    func() time.Time
}

// NewStore creates a new DynamoDB blob store.
func NewStore(client Client, table string) *Store {
	return &Store{client: client, table: table, now: time.Now}
}

func itemKey(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrKey: &types.AttributeValueMemberS{Value: key},
	}
}

// Get reads the document stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.client.GetItem(ctx, &ddb.GetItemInput{
		TableName:      aws.String(s.table),
		Key:            itemKey(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb get %s: %w", key, err)
	}

	if len(resp.Item) == 0 {
		return nil, blobstore.ErrNotFound
	}

	body, ok := resp.Item[attrBody].(*types.AttributeValueMemberB)
	if !ok {
		return nil, fmt.Errorf("dynamodb get %s: invalid %s attribute", key, attrBody)
	}

	return body.Value, nil
}

// Put stores data under key, replacing any previous document.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	body := make([]byte, len(data))
	copy(body, data)

	_, err := s.client.PutItem(ctx, &ddb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			attrKey:       &types.AttributeValueMemberS{Value: key},
			attrBody:      &types.AttributeValueMemberB{Value: body},
			attrUpdatedAt: &types.AttributeValueMemberN{Value: strconv.FormatInt(s.now().UnixMilli(), 10)},
		},
	})
	if err != nil {
		return fmt.Errorf("dynamodb put %s: %w", key, err)
	}

	return nil
}

// Delete removes the document stored under key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteItem(ctx, &ddb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key:       itemKey(key),
	})
	if err != nil {
		return fmt.Errorf("dynamodb delete %s: %w", key, err)
	}

	return nil
}
