package store

import "errors"

var (
	// ErrNotFound is returned when a lookup that requires a record finds none.
	ErrNotFound = errors.New("fruits: fruit not found")

	// ErrMalformedRecord is returned when a stored record is missing a column
	// or holds a value that cannot be decoded.
	ErrMalformedRecord = errors.New("fruits: malformed fruit record")

	// ErrIncompleteFruit is returned when a fruit without a name or a season is written.
	ErrIncompleteFruit = errors.New("fruits: fruit needs a name and a season to be stored")
)
