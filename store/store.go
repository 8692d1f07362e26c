package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/thinksy/fruits/fruit"
)

const (
	// TableName is the DynamoDB table holding all fruits.
	TableName = "Fruits_TBL"

	// NameColumn is the partition key column.
	NameColumn = "fruitName"

	// SeasonColumn holds the season member name.
	SeasonColumn = "fruitType"
)

// Client is the subset of the DynamoDB API used by the services.
type Client interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

var _ Client = (*dynamodb.Client)(nil)

// PK represents a DynamoDB primary key.
type PK map[string]types.AttributeValue

// KeyOf returns the primary key of the fruit called name.
func KeyOf(name string) PK {
	return PK{
		NameColumn: &types.AttributeValueMemberS{Value: name},
	}
}

// record is the stored shape of a fruit.
type record struct {
	Name   string `dynamodbav:"fruitName"`
	Season string `dynamodbav:"fruitType"`
}

// BuildScan returns a full-table scan that projects only the key column.
func BuildScan() (*dynamodb.ScanInput, error) {
	expr, err := expression.NewBuilder().
		WithProjection(expression.NamesList(expression.Name(NameColumn))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build scan: %w", err)
	}

	return &dynamodb.ScanInput{
		TableName:                aws.String(TableName),
		ProjectionExpression:     expr.Projection(),
		ExpressionAttributeNames: expr.Names(),
	}, nil
}

// BuildPut returns a put that writes both columns of f. The season must be
// one of fruit.Seasons.
// Any existing record with the same name is replaced.
func BuildPut(f fruit.Fruit) (*dynamodb.PutItemInput, error) {
	if f.Name == "" || f.Season == "" {
		return nil, ErrIncompleteFruit
	}
	if !f.Season.Valid() {
		return nil, fmt.Errorf("%w: %q", fruit.ErrUnknownSeason, f.Season)
	}

	item, err := attributevalue.MarshalMap(record{
		Name:   f.Name,
		Season: f.Season.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal fruit: %w", err)
	}

	return &dynamodb.PutItemInput{
		TableName: aws.String(TableName),
		Item:      item,
	}, nil
}

// BuildGet returns a single-item lookup by key.
func BuildGet(name string) *dynamodb.GetItemInput {
	return &dynamodb.GetItemInput{
		TableName: aws.String(TableName),
		Key:       KeyOf(name),
	}
}

// BuildQuery returns a query matching every record whose key equals name.
func BuildQuery(name string) (*dynamodb.QueryInput, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.KeyEqual(expression.Key(NameColumn), expression.Value(name))).
		Build()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	return &dynamodb.QueryInput{
		TableName:                 aws.String(TableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}, nil
}
