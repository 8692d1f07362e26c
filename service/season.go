package service

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/rs/zerolog"

	"github.com/thinksy/fruits/fruit"
	"github.com/thinksy/fruits/store"
)

// SeasonOfFruit returns the season of the fruit called name.
//
// The stored value is matched case-insensitively, so records written by
// other tools in lower case still resolve. If the query matches several
// records the first one wins.
//
// It fails with store.ErrNotFound when no record matches, and with
// fruit.ErrUnknownSeason when the stored value names no season.
func (s *SyncService) SeasonOfFruit(ctx context.Context, name string) (fruit.Season, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Str("fruit", name).Msg("looking up season of fruit")

	input, err := store.BuildQuery(name)
	if err != nil {
		return "", err
	}

	paginator := dynamodb.NewQueryPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return "", fmt.Errorf("query %s: %w", store.TableName, err)
		}
		if len(page.Items) == 0 {
			continue
		}

		raw, err := store.SeasonFromRecord(page.Items[0])
		if err != nil {
			return "", err
		}
		logger.Info().Str("fruit", name).Str("season", raw).Msg("found season")

		return fruit.ParseSeasonFold(raw)
	}

	return "", fmt.Errorf("%w: %q", store.ErrNotFound, name)
}
