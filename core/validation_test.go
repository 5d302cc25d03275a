package core

import (
	"errors"
	"testing"
)

func TestValidateDomain(t *testing.T) {
	tests := []struct {
		name    string
		domain  Domain
		wantErr error
	}{
		{name: "strategy", domain: DomainStrategy},
		{name: "layout", domain: DomainLayout},
		{name: "copy", domain: DomainCopy},
		{name: "chart", domain: DomainChart},
		{name: "empty", domain: "", wantErr: ErrUnknownDomain},
		{name: "decision table is not a domain", domain: "typography", wantErr: ErrUnknownDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDomain(tt.domain)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateDomain() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDomain() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseDomain(t *testing.T) {
	d, err := ParseDomain("chart")
	if err != nil || d != DomainChart {
		t.Fatalf("ParseDomain(chart) = %q, %v", d, err)
	}
	if _, err := ParseDomain("charts"); !errors.Is(err, ErrUnknownDomain) {
		t.Errorf("ParseDomain(charts) error = %v, want %v", err, ErrUnknownDomain)
	}
}

func TestValidateTable(t *testing.T) {
	for _, tbl := range Tables() {
		if err := ValidateTable(tbl); err != nil {
			t.Errorf("ValidateTable(%q) unexpected error = %v", tbl, err)
		}
	}
	if err := ValidateTable("slides"); !errors.Is(err, ErrUnknownTable) {
		t.Errorf("ValidateTable(slides) error = %v, want %v", err, ErrUnknownTable)
	}
}

func TestValidateDeckPosition(t *testing.T) {
	tests := []struct {
		name     string
		position int
		total    int
		wantErr  error
	}{
		{name: "first slide", position: 1, total: 9},
		{name: "last slide", position: 9, total: 9},
		{name: "single slide deck", position: 1, total: 1},
		{name: "zero position", position: 0, total: 9, wantErr: ErrInvalidPosition},
		{name: "past the end", position: 10, total: 9, wantErr: ErrInvalidPosition},
		{name: "empty deck", position: 1, total: 0, wantErr: ErrInvalidDeckSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDeckPosition(tt.position, tt.total)
			if tt.wantErr == nil && err != nil {
				t.Errorf("ValidateDeckPosition() unexpected error = %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateDeckPosition() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
