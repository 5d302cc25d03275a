package ingestion

import "errors"

var (
	// ErrSourceRequired is returned when a record source is not provided.
	ErrSourceRequired = errors.New("record source required")

	// ErrWriterRequired is returned when a table writer is not provided.
	ErrWriterRequired = errors.New("table writer required")
)
