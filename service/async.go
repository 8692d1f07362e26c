package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/rs/zerolog"

	"github.com/thinksy/fruits/fruit"
	"github.com/thinksy/fruits/internal/future"
	"github.com/thinksy/fruits/store"
)

// AsyncService offers the SyncService reads and writes as futures. Every
// method returns immediately; the store call runs on its own goroutine.
//
// Issued store calls are not cancelled when ctx is: they run to completion
// or failure, and the outcome is delivered through the returned future.
type AsyncService struct {
	client store.Client
}

// NewAsyncService creates an AsyncService backed by client.
func NewAsyncService(client store.Client) *AsyncService {
	return &AsyncService{client: client}
}

// FindAll resolves to every fruit in the table. Further scan pages are
// requested from the continuation of the previous one.
func (s *AsyncService) FindAll(ctx context.Context) *future.Future[[]fruit.Fruit] {
	ctx = context.WithoutCancel(ctx)
	zerolog.Ctx(ctx).Debug().Msg("scanning table for all fruits")

	input, err := store.BuildScan()
	if err != nil {
		return future.Failed[[]fruit.Fruit](err)
	}
	return s.scan(ctx, input, []fruit.Fruit{})
}

func (s *AsyncService) scan(ctx context.Context, input *dynamodb.ScanInput, acc []fruit.Fruit) *future.Future[[]fruit.Fruit] {
	page := future.Go(func() (*dynamodb.ScanOutput, error) {
		out, err := s.client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", store.TableName, err)
		}
		return out, nil
	})

	return future.Then(page, func(out *dynamodb.ScanOutput) *future.Future[[]fruit.Fruit] {
		fruits, err := appendPage(acc, out.Items)
		if err != nil {
			return future.Failed[[]fruit.Fruit](err)
		}
		if len(out.LastEvaluatedKey) == 0 {
			return future.Completed(fruits)
		}

		next := *input
		next.ExclusiveStartKey = out.LastEvaluatedKey
		return s.scan(ctx, &next, fruits)
	})
}

// Add writes f and, once the write has succeeded, resolves to the result of
// FindAll. If the write fails the future fails with that error and no scan
// is issued.
func (s *AsyncService) Add(ctx context.Context, f fruit.Fruit) *future.Future[[]fruit.Fruit] {
	ctx = context.WithoutCancel(ctx)
	zerolog.Ctx(ctx).Debug().Str("fruit", f.Name).Msg("adding fruit")

	input, err := store.BuildPut(f)
	if err != nil {
		return future.Failed[[]fruit.Fruit](err)
	}

	put := future.Go(func() (*dynamodb.PutItemOutput, error) {
		out, err := s.client.PutItem(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("put %s: %w", store.TableName, err)
		}
		return out, nil
	})

	return future.AndThen(put, func() *future.Future[[]fruit.Fruit] {
		return s.FindAll(ctx)
	})
}

// Get resolves to the fruit called name, or to the empty fruit if there is none.
func (s *AsyncService) Get(ctx context.Context, name string) *future.Future[fruit.Fruit] {
	ctx = context.WithoutCancel(ctx)
	zerolog.Ctx(ctx).Debug().Str("fruit", name).Msg("getting fruit")

	get := future.Go(func() (*dynamodb.GetItemOutput, error) {
		out, err := s.client.GetItem(ctx, store.BuildGet(name))
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", store.TableName, err)
		}
		return out, nil
	})

	return future.Map(get, func(out *dynamodb.GetItemOutput) (fruit.Fruit, error) {
		return store.FromRecord(out.Item)
	})
}
