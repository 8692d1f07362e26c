package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/thinksy/fruits/fruit"
	"github.com/thinksy/fruits/service"
	"github.com/thinksy/fruits/store"
)

func queryReturning(items ...map[string]types.AttributeValue) *MockDynamoClient {
	client := &MockDynamoClient{}
	client.On("Query", mock.Anything, mock.Anything).
		Return(&dynamodb.QueryOutput{Items: items}, nil)
	return client
}

func TestSeasonOfFruit(t *testing.T) {
	t.Parallel()

	client := queryReturning(fruitRecord("Kiwi", "FALL"))

	season, err := service.NewSyncService(client).SeasonOfFruit(context.Background(), "Kiwi")

	require.NoError(t, err)
	assert.Equal(t, fruit.Fall, season)
}

func TestSeasonOfFruit_QueriesByKey(t *testing.T) {
	t.Parallel()

	table := newMemTable(0)
	table.seed("Kiwi", "FALL")
	table.seed("Cherry", "SUMMER")

	season, err := service.NewSyncService(table).SeasonOfFruit(context.Background(), "Cherry")

	require.NoError(t, err)
	assert.Equal(t, fruit.Summer, season)
}

func TestSeasonOfFruit_CaseInsensitive(t *testing.T) {
	t.Parallel()

	for _, stored := range []string{"fall", "Fall", "FALL"} {
		season, err := service.NewSyncService(queryReturning(fruitRecord("Kiwi", stored))).
			SeasonOfFruit(context.Background(), "Kiwi")

		require.NoError(t, err, stored)
		assert.Equal(t, fruit.Fall, season, stored)
	}
}

func TestSeasonOfFruit_FirstRecordWins(t *testing.T) {
	t.Parallel()

	client := queryReturning(fruitRecord("Kiwi", "WINTER"), fruitRecord("Kiwi", "FALL"))

	season, err := service.NewSyncService(client).SeasonOfFruit(context.Background(), "Kiwi")

	require.NoError(t, err)
	assert.Equal(t, fruit.Winter, season)
}

func TestSeasonOfFruit_NotFound(t *testing.T) {
	t.Parallel()

	_, err := service.NewSyncService(queryReturning()).SeasonOfFruit(context.Background(), "Unknown")

	require.ErrorIs(t, err, store.ErrNotFound)
	assert.False(t, errors.Is(err, fruit.ErrUnknownSeason))
}

func TestSeasonOfFruit_UnknownSeason(t *testing.T) {
	t.Parallel()

	client := queryReturning(fruitRecord("Kiwi", "AUTUMN"))

	_, err := service.NewSyncService(client).SeasonOfFruit(context.Background(), "Kiwi")

	require.ErrorIs(t, err, fruit.ErrUnknownSeason)
	assert.False(t, errors.Is(err, store.ErrNotFound))
}

func TestSeasonOfFruit_MissingColumn(t *testing.T) {
	t.Parallel()

	_, err := service.NewSyncService(queryReturning(keyRecord("Kiwi"))).
		SeasonOfFruit(context.Background(), "Kiwi")

	require.ErrorIs(t, err, store.ErrMalformedRecord)
}

func TestSeasonOfFruit_StoreError(t *testing.T) {
	t.Parallel()

	client := &MockDynamoClient{}
	client.On("Query", mock.Anything, mock.Anything).Return(nil, errThrottled)

	_, err := service.NewSyncService(client).SeasonOfFruit(context.Background(), "Kiwi")

	require.ErrorIs(t, err, errThrottled)
	assert.False(t, errors.Is(err, store.ErrNotFound))
}
