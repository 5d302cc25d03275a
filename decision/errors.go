package decision

import "errors"

var (
	// ErrSourceRequired is returned when a record source is not provided.
	ErrSourceRequired = errors.New("record source required")
)
