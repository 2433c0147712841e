package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/vibes-app/vibes-backend/internal/model"
)

const (
	// DefaultDynamoTable is the table the web app has always used.
	DefaultDynamoTable = "vibes-db"

	dynamoKeyAttr  = "id"
	dynamoVibeAttr = "vibe"
)

// DynamoAPI is the subset of the DynamoDB client used by DynamoStore.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// Swappable in tests.
var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newDynamoClientFromConfig = func(cfg aws.Config, optFns ...func(*dynamodb.Options)) DynamoAPI {
		return dynamodb.NewFromConfig(cfg, optFns...)
	}
)

// DynamoConfig holds connection settings for DynamoStore.
type DynamoConfig struct {
	Table  string
	Region string
	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local.
	Endpoint string
	// Static credentials; when empty the default AWS credential chain is used.
	AccessKeyID     string
	SecretAccessKey string
}

// DynamoStore stores each user as one item: id (S) plus vibe (M).
type DynamoStore struct {
	client DynamoAPI
	table  string
}

// NewDynamoStore builds a DynamoDB client from cfg.
func NewDynamoStore(ctx context.Context, cfg DynamoConfig) (*DynamoStore, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := newDynamoClientFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return NewDynamoStoreWithClient(client, cfg.Table), nil
}

// NewDynamoStoreWithClient wraps an existing client.
func NewDynamoStoreWithClient(client DynamoAPI, table string) *DynamoStore {
	if table == "" {
		table = DefaultDynamoTable
	}
	return &DynamoStore{client: client, table: table}
}

// Get fetches the item for id.
func (s *DynamoStore) Get(ctx context.Context, id string) (*model.Vibe, bool, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       dynamoKey(id),
	})
	if err != nil {
		return nil, false, fmt.Errorf("%w: get item: %w", ErrUnavailable, err)
	}

	if len(out.Item) == 0 {
		return nil, false, nil
	}

	vibe, err := decodeVibeAttr(out.Item)
	if err != nil {
		return nil, false, err
	}
	return vibe, true, nil
}

// Put writes the full item, replacing any existing one.
func (s *DynamoStore) Put(ctx context.Context, id string, vibe *model.Vibe) error {
	av, err := attributevalue.Marshal(vibe)
	if err != nil {
		return fmt.Errorf("failed to marshal vibe: %w", err)
	}

	item := dynamoKey(id)
	item[dynamoVibeAttr] = av

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("%w: put item: %w", ErrUnavailable, err)
	}
	return nil
}

// Update sets the vibe attribute and returns it as DynamoDB reports it.
func (s *DynamoStore) Update(ctx context.Context, id string, vibe *model.Vibe) (*model.Vibe, error) {
	av, err := attributevalue.Marshal(vibe)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vibe: %w", err)
	}

	out, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(s.table),
		Key:              dynamoKey(id),
		UpdateExpression: aws.String("SET " + dynamoVibeAttr + " = :vibe"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":vibe": av,
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: update item: %w", ErrUnavailable, err)
	}

	return decodeVibeAttr(out.Attributes)
}

// Ping describes the table.
func (s *DynamoStore) Ping(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	})
	return err
}

func dynamoKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		dynamoKeyAttr: &types.AttributeValueMemberS{Value: id},
	}
}

func decodeVibeAttr(attrs map[string]types.AttributeValue) (*model.Vibe, error) {
	av, ok := attrs[dynamoVibeAttr]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q attribute", ErrInconsistent, dynamoVibeAttr)
	}

	var vibe model.Vibe
	if err := attributevalue.Unmarshal(av, &vibe); err != nil {
		return nil, fmt.Errorf("%w: decode vibe: %w", ErrInconsistent, err)
	}
	return &vibe, nil
}
