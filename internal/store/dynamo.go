package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ddbtypes "github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"checkin-example-app/internal/checkin"
)

// DynamoAPI is the subset of *dynamodb.Client used by DynamoStore.
type DynamoAPI interface {
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

type dynamoItem struct {
	ID         string `dynamodbav:"id"`
	ObservedAt string `dynamodbav:"observedAt"`
}

// DynamoStore keeps one item per identifier, keyed by the "id" hash key.
type DynamoStore struct {
	client  DynamoAPI
	table   string
	timeout time.Duration
}

// NewDynamoStore wraps client. A zero timeout leaves calls bounded only by ctx
// and the SDK's own defaults.
func NewDynamoStore(client DynamoAPI, table string, timeout time.Duration) *DynamoStore {
	return &DynamoStore{client: client, table: table, timeout: timeout}
}

// NewDynamoClient loads the default AWS config for region, optionally pointed
// at a custom endpoint such as DynamoDB Local.
func NewDynamoClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

func (s *DynamoStore) Table() string {
	return s.table
}

func (s *DynamoStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *DynamoStore) Describe(ctx context.Context) (checkin.TableInfo, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	out, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	})
	if err != nil {
		return checkin.TableInfo{}, classify(err)
	}
	if out.Table == nil {
		return checkin.TableInfo{}, fmt.Errorf("describe %s: %w", s.table, checkin.ErrTableNotFound)
	}
	return checkin.TableInfo{
		Name:      aws.ToString(out.Table.TableName),
		Status:    string(out.Table.TableStatus),
		ItemCount: aws.ToInt64(out.Table.ItemCount),
	}, nil
}

func (s *DynamoStore) Put(ctx context.Context, rec checkin.Record) error {
	item, err := attributevalue.MarshalMap(dynamoItem{
		ID:         rec.ID,
		ObservedAt: checkin.FormatStored(rec.ObservedAt),
	})
	if err != nil {
		return fmt.Errorf("marshalling check-in: %w", err)
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	if err != nil {
		return classify(err)
	}
	return nil
}

func (s *DynamoStore) Get(ctx context.Context, id string) (checkin.Record, bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]ddbtypes.AttributeValue{
			"id": &ddbtypes.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return checkin.Record{}, false, classify(err)
	}
	if out.Item == nil {
		return checkin.Record{}, false, nil
	}
	var item dynamoItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return checkin.Record{}, false, fmt.Errorf("%w: %w", checkin.ErrMalformedRecord, err)
	}
	observedAt, err := checkin.ParseStored(item.ObservedAt)
	if err != nil {
		return checkin.Record{}, false, err
	}
	return checkin.Record{ID: id, ObservedAt: observedAt}, true, nil
}

func classify(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.ErrorCode() {
	case "AccessDeniedException":
		return fmt.Errorf("%w: %w", checkin.ErrAccessDenied, err)
	case "ResourceNotFoundException":
		return fmt.Errorf("%w: %w", checkin.ErrTableNotFound, err)
	}
	return err
}
