// Package csvsource reads backing tables from CSV files.
//
// Each table maps to one file. The first row is the header; every later row
// is a record keyed by header names. Rows shorter than the header leave the
// trailing columns absent, and values past the header are ignored.
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/poiesic/slidesearch/core"
	"github.com/poiesic/slidesearch/data"
	"github.com/poiesic/slidesearch/storage"
)

// DefaultFiles maps every table to its conventional file name.
func DefaultFiles() map[core.TableName]string {
	return map[core.TableName]string{
		core.TableStrategy:    "slide-strategies.csv",
		core.TableLayout:      "slide-layouts.csv",
		core.TableCopy:        "slide-copy.csv",
		core.TableChart:       "slide-charts.csv",
		core.TableLayoutLogic: "slide-layout-logic.csv",
		core.TableTypography:  "slide-typography.csv",
		core.TableColorLogic:  "slide-color-logic.csv",
		core.TableBackgrounds: "slide-backgrounds.csv",
	}
}

// Source loads tables from CSV files in a file system.
type Source struct {
	fsys   fs.FS
	files  map[core.TableName]string
	logger *slog.Logger
}

var _ storage.RecordSource = (*Source)(nil)

// Option configures a Source.
type Option func(*Source)

// WithFile overrides the file name used for a table.
func WithFile(table core.TableName, name string) Option {
	return func(s *Source) {
		s.files[table] = name
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Source) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// New creates a source reading from fsys, typically os.DirFS(dir).
func New(fsys fs.FS, opts ...Option) *Source {
	s := &Source{
		fsys:   fsys,
		files:  DefaultFiles(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Embedded creates a source over the seed data compiled into the binary.
func Embedded(opts ...Option) *Source {
	return New(data.FS, opts...)
}

// FileName returns the file backing a table.
func (s *Source) FileName(table core.TableName) (string, bool) {
	name, ok := s.files[table]
	return name, ok
}

// TableForFile returns the table backed by a file name (base name only).
func (s *Source) TableForFile(name string) (core.TableName, bool) {
	for table, file := range s.files {
		if file == name {
			return table, true
		}
	}
	return "", false
}

// Load reads and parses the table's file on every call.
// Returns storage.ErrSourceNotFound when the file does not exist.
func (s *Source) Load(ctx context.Context, table core.TableName) (*core.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, ok := s.files[table]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownTable, table)
	}

	f, err := s.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("table file not found", "table", table, "file", name)
			return nil, storage.ErrSourceNotFound
		}
		return nil, err
	}
	defer f.Close()

	ds, err := Parse(f, table, name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	s.logger.Debug("loaded table", "table", table, "file", name, "count", ds.Len())
	return ds, nil
}

// Parse reads a header row followed by records.
// An input with no header yields an empty dataset.
func Parse(r io.Reader, table core.TableName, source string) (*core.Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	ds := &core.Dataset{
		Table:   table,
		Source:  source,
		Records: []core.Record{},
	}

	header, err := cr.Read()
	if err == io.EOF {
		return ds, nil
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	ds.Columns = header

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		ds.Records = append(ds.Records, core.NewRecord(header, row))
	}
	return ds, nil
}
