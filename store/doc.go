// Package store translates fruits to and from the DynamoDB table that holds them.
//
// It is the only package aware of the table name and the column layout:
//
//	Fruits_TBL
//	  fruitName  S  partition key
//	  fruitType  S  season member name, e.g. "FALL"
//
// # Requests
//
// Builders return ready-to-send aws-sdk-go-v2 inputs:
//
//   - [BuildScan] enumerates the table, projecting only the key column
//   - [BuildPut] writes both columns, replacing any previous record
//   - [BuildGet] fetches a single record by key
//   - [BuildQuery] runs a key-condition query by name
//
// # Records
//
// [FromRecord] maps a full record back to a [fruit.Fruit]. A nil or empty record
// maps to the empty fruit; a record with a missing column or an unknown season
// fails with [ErrMalformedRecord]. Scan pages carry only the key column and are
// decoded with [FromProjectedRecord].
//
// # Errors
//
//   - [ErrNotFound] - a keyed lookup that must yield a record found nothing
//   - [ErrMalformedRecord] - a stored record cannot be decoded
//   - [ErrIncompleteFruit] - a fruit without name or season cannot be stored
package store
