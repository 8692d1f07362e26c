package store

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/thinksy/fruits/fruit"
)

// storedRecord mirrors record with optional columns so that absent
// attributes can be told apart from empty strings.
type storedRecord struct {
	Name   *string `dynamodbav:"fruitName"`
	Season *string `dynamodbav:"fruitType"`
}

// FromRecord converts a stored record to a fruit.
// A nil or empty record yields the empty fruit.
func FromRecord(raw map[string]types.AttributeValue) (fruit.Fruit, error) {
	return decode(raw, true)
}

// FromProjectedRecord converts a record returned by the BuildScan projection,
// which carries only the key column. The season is decoded when present.
func FromProjectedRecord(raw map[string]types.AttributeValue) (fruit.Fruit, error) {
	return decode(raw, false)
}

// SeasonFromRecord returns the raw season column of a record.
func SeasonFromRecord(raw map[string]types.AttributeValue) (string, error) {
	v, ok := raw[SeasonColumn].(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("%w: missing string column %s", ErrMalformedRecord, SeasonColumn)
	}
	return v.Value, nil
}

func decode(raw map[string]types.AttributeValue, requireSeason bool) (fruit.Fruit, error) {
	if len(raw) == 0 {
		return fruit.Fruit{}, nil
	}

	var rec storedRecord
	if err := attributevalue.UnmarshalMap(raw, &rec); err != nil {
		return fruit.Fruit{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	if rec.Name == nil {
		return fruit.Fruit{}, fmt.Errorf("%w: missing column %s", ErrMalformedRecord, NameColumn)
	}

	f := fruit.Fruit{Name: *rec.Name}
	if rec.Season == nil {
		if requireSeason {
			return fruit.Fruit{}, fmt.Errorf("%w: missing column %s", ErrMalformedRecord, SeasonColumn)
		}
		return f, nil
	}

	season, err := fruit.ParseSeason(*rec.Season)
	if err != nil {
		return fruit.Fruit{}, fmt.Errorf("%w: column %s: %w", ErrMalformedRecord, SeasonColumn, err)
	}
	f.Season = season

	return f, nil
}
