package badger

import "log/slog"

type openOptions struct {
	inMemory bool
	logger   *slog.Logger
}

// Option configures Open.
type Option func(*openOptions)

// WithLogger routes Badger's own logging and the store's to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *openOptions) {
		o.logger = logger
	}
}

// InMemory keeps the database in memory; the path is ignored.
func InMemory() Option {
	return func(o *openOptions) {
		o.inMemory = true
	}
}
