package service_test

import (
	"context"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/mock"

	"github.com/thinksy/fruits/store"
)

// MockDynamoClient records calls made through store.Client.
type MockDynamoClient struct {
	mock.Mock
}

var _ store.Client = (*MockDynamoClient)(nil)

func (m *MockDynamoClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.GetItemOutput), args.Error(1)
}

func (m *MockDynamoClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.PutItemOutput), args.Error(1)
}

func (m *MockDynamoClient) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.QueryOutput), args.Error(1)
}

func (m *MockDynamoClient) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dynamodb.ScanOutput), args.Error(1)
}

// fruitRecord builds a full stored record.
func fruitRecord(name, season string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"fruitName": &types.AttributeValueMemberS{Value: name},
		"fruitType": &types.AttributeValueMemberS{Value: season},
	}
}

// keyRecord builds a record as returned by the key-only scan projection.
func keyRecord(name string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"fruitName": &types.AttributeValueMemberS{Value: name},
	}
}

// memTable is an in-memory fruits table. Scans honour the projection and
// are split into pages of pageSize records.
type memTable struct {
	mu       sync.Mutex
	rows     map[string]map[string]types.AttributeValue
	pageSize int

	scans int
	puts  int
}

var _ store.Client = (*memTable)(nil)

func newMemTable(pageSize int) *memTable {
	return &memTable{
		rows:     make(map[string]map[string]types.AttributeValue),
		pageSize: pageSize,
	}
}

func (m *memTable) seed(name, season string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[name] = fruitRecord(name, season)
}

func keyName(key map[string]types.AttributeValue) string {
	if v, ok := key["fruitName"].(*types.AttributeValueMemberS); ok {
		return v.Value
	}
	return ""
}

func (m *memTable) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &dynamodb.GetItemOutput{Item: m.rows[keyName(params.Key)]}, nil
}

func (m *memTable) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	m.rows[keyName(params.Item)] = params.Item
	return &dynamodb.PutItemOutput{}, nil
}

// Query supports only the single-value key condition produced by store.BuildQuery.
func (m *memTable) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := &dynamodb.QueryOutput{}
	for _, v := range params.ExpressionAttributeValues {
		if s, ok := v.(*types.AttributeValueMemberS); ok {
			if row, ok := m.rows[s.Value]; ok {
				out.Items = append(out.Items, row)
			}
		}
	}
	return out, nil
}

func (m *memTable) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scans++

	names := make([]string, 0, len(m.rows))
	for name := range m.rows {
		names = append(names, name)
	}
	sort.Strings(names)

	start := 0
	if params.ExclusiveStartKey != nil {
		after := keyName(params.ExclusiveStartKey)
		start = sort.SearchStrings(names, after)
		if start < len(names) && names[start] == after {
			start++
		}
	}
	end := len(names)
	if m.pageSize > 0 && start+m.pageSize < end {
		end = start + m.pageSize
	}

	projected := aws.ToString(params.ProjectionExpression) != ""
	out := &dynamodb.ScanOutput{}
	for _, name := range names[start:end] {
		if projected {
			out.Items = append(out.Items, keyRecord(name))
		} else {
			out.Items = append(out.Items, m.rows[name])
		}
	}
	if end < len(names) {
		out.LastEvaluatedKey = keyRecord(names[end-1])
	}
	return out, nil
}
