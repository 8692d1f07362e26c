// Package service exposes fruit operations over the fruits table, in a
// blocking flavour (SyncService) and a future-based one (AsyncService).
package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"

	"github.com/thinksy/fruits/fruit"
	"github.com/thinksy/fruits/store"
)

// SyncService performs every operation on the caller's goroutine and
// returns once the store has answered.
type SyncService struct {
	client store.Client
}

// NewSyncService creates a SyncService backed by client.
func NewSyncService(client store.Client) *SyncService {
	return &SyncService{client: client}
}

// FindAll returns every fruit in the table, following all scan pages.
// Order is the store's iteration order.
func (s *SyncService) FindAll(ctx context.Context) ([]fruit.Fruit, error) {
	zerolog.Ctx(ctx).Info().Msg("scanning table for all fruits")

	input, err := store.BuildScan()
	if err != nil {
		return nil, err
	}

	fruits := []fruit.Fruit{}
	paginator := dynamodb.NewScanPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", store.TableName, err)
		}
		fruits, err = appendPage(fruits, page.Items)
		if err != nil {
			return nil, err
		}
	}

	return fruits, nil
}

// Add writes f, replacing any fruit with the same name, and returns the
// table contents read back afterwards. The write and the read are separate
// store calls; concurrent writers may show up in the result.
func (s *SyncService) Add(ctx context.Context, f fruit.Fruit) ([]fruit.Fruit, error) {
	zerolog.Ctx(ctx).Info().Str("fruit", f.Name).Msg("adding fruit")

	input, err := store.BuildPut(f)
	if err != nil {
		return nil, err
	}
	if _, err := s.client.PutItem(ctx, input); err != nil {
		return nil, fmt.Errorf("put %s: %w", store.TableName, err)
	}

	return s.FindAll(ctx)
}

// Get returns the fruit called name, or the empty fruit if there is none.
func (s *SyncService) Get(ctx context.Context, name string) (fruit.Fruit, error) {
	zerolog.Ctx(ctx).Info().Str("fruit", name).Msg("getting fruit")

	out, err := s.client.GetItem(ctx, store.BuildGet(name))
	if err != nil {
		return fruit.Fruit{}, fmt.Errorf("get %s: %w", store.TableName, err)
	}

	return store.FromRecord(out.Item)
}

// appendPage decodes one scan page onto fruits.
func appendPage(fruits []fruit.Fruit, items []map[string]types.AttributeValue) ([]fruit.Fruit, error) {
	for _, raw := range items {
		f, err := store.FromProjectedRecord(raw)
		if err != nil {
			return nil, err
		}
		fruits = append(fruits, f)
	}
	return fruits, nil
}
