package core

import "fmt"

// ValidateDomain checks that d is one of the fixed domains.
func ValidateDomain(d Domain) error {
	for _, known := range Domains() {
		if d == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownDomain, d)
}

// ParseDomain converts a name into a Domain.
func ParseDomain(name string) (Domain, error) {
	d := Domain(name)
	if err := ValidateDomain(d); err != nil {
		return "", err
	}
	return d, nil
}

// ValidateTable checks that t is one of the fixed tables.
func ValidateTable(t TableName) error {
	for _, known := range Tables() {
		if t == known {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownTable, t)
}

// ValidateDeckPosition validates a 1-based slide position against a deck size.
//
// Validation rules:
//   - total must be at least 1
//   - position must lie in [1, total]
func ValidateDeckPosition(position, total int) error {
	if total < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidDeckSize, total)
	}
	if position < 1 || position > total {
		return fmt.Errorf("%w: %d of %d", ErrInvalidPosition, position, total)
	}
	return nil
}
