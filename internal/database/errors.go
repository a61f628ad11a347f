package database

import "errors"

// Error taxonomy of the store. Construction failures (ErrConnection,
// ErrSchema) are fatal to Open. Write failures surface as ErrWrite after the
// single bounded reconnect retry. Read failures are wrapped in ErrRead
// internally, logged, and absorbed into empty results. ErrValidation covers
// rejected recorder inputs and malformed CSV imports.
var (
	ErrConnection = errors.New("database: connection failed")
	ErrSchema     = errors.New("database: schema creation failed")
	ErrWrite      = errors.New("database: write failed")
	ErrRead       = errors.New("database: read failed")
	ErrValidation = errors.New("database: validation failed")
)
