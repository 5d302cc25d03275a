package storage

import (
	"context"

	"github.com/poiesic/slidesearch/core"
)

// RecordSource provides read-only, ordered access to backing tables.
// Implementations must be safe for concurrent use.
type RecordSource interface {
	// Load returns the full content of a table in stable order.
	// Returns ErrSourceNotFound when the table has no backing data.
	// A table that exists but holds no rows yields an empty Dataset.
	Load(ctx context.Context, table core.TableName) (*core.Dataset, error)
}

// TableWriter persists whole tables.
type TableWriter interface {
	// ReplaceTable atomically replaces the stored content of ds.Table.
	ReplaceTable(ctx context.Context, ds *core.Dataset) error

	// Fingerprint returns the stored content fingerprint of a table.
	// Returns ErrSourceNotFound when the table has never been written.
	Fingerprint(ctx context.Context, table core.TableName) (core.ID, error)
}

// Store is a source that can also be written.
type Store interface {
	RecordSource
	TableWriter

	// Close releases resources.
	Close() error
}
