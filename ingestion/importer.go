package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/slidesearch/core"
	"github.com/poiesic/slidesearch/storage"
)

// Importer copies tables from a record source into a table writer.
type Importer struct {
	source storage.RecordSource
	writer storage.TableWriter
	pool   *ants.Pool
	force  bool
	logger *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer) error

// WithPoolSize sets the worker pool size for concurrent imports.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(i *Importer) error {
		if size < 1 {
			size = 1
		}

		// Release old pool
		if i.pool != nil {
			i.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		i.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(i *Importer) error {
		if logger == nil {
			logger = slog.Default()
		}
		i.logger = logger
		return nil
	}
}

// WithForce rewrites tables even when their fingerprint is unchanged.
func WithForce(force bool) Option {
	return func(i *Importer) error {
		i.force = force
		return nil
	}
}

// NewImporter creates a new importer.
func NewImporter(source storage.RecordSource, writer storage.TableWriter, opts ...Option) (*Importer, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	if writer == nil {
		return nil, ErrWriterRequired
	}

	// Default pool size
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	i := &Importer{
		source: source,
		writer: writer,
		pool:   pool,
		logger: slog.Default(),
	}

	// Apply options (may override defaults)
	for _, opt := range opts {
		if optErr := opt(i); optErr != nil {
			i.Release()
			return nil, optErr
		}
	}

	return i, nil
}

// Import copies the given tables, or every table when none are given, and
// waits for all of them to finish. Repeated names are imported once, in the
// position of their first occurrence. The returned error joins the per-table
// failures; the report is returned in either case unless the request itself
// is invalid.
func (i *Importer) Import(ctx context.Context, tables ...core.TableName) (*Report, error) {
	if len(tables) == 0 {
		tables = core.Tables()
	}
	seen := make(map[core.TableName]bool, len(tables))
	unique := make([]core.TableName, 0, len(tables))
	for _, table := range tables {
		if err := core.ValidateTable(table); err != nil {
			return nil, err
		}
		if !seen[table] {
			seen[table] = true
			unique = append(unique, table)
		}
	}
	tables = unique

	report := &Report{Results: make([]TableResult, len(tables))}
	var wg sync.WaitGroup
	for idx, table := range tables {
		wg.Add(1)
		err := i.pool.Submit(func() {
			defer wg.Done()
			report.Results[idx] = i.importTable(ctx, table)
		})
		if err != nil {
			wg.Done()
			report.Results[idx] = TableResult{Table: table, Outcome: OutcomeFailed, Err: err}
		}
	}
	wg.Wait()

	i.logger.Info("import complete",
		"imported", report.Count(OutcomeImported),
		"unchanged", report.Count(OutcomeUnchanged),
		"missing", report.Count(OutcomeMissing),
		"failed", report.Count(OutcomeFailed))

	return report, report.Err()
}

func (i *Importer) importTable(ctx context.Context, table core.TableName) TableResult {
	res := TableResult{Table: table}
	fail := func(err error) TableResult {
		i.logger.Error("error importing table", "table", table, "err", err)
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	ds, err := i.source.Load(ctx, table)
	if errors.Is(err, storage.ErrSourceNotFound) {
		i.logger.Warn("no source data for table", "table", table)
		res.Outcome = OutcomeMissing
		return res
	}
	if err != nil {
		return fail(err)
	}
	res.Source = ds.Source
	res.Rows = ds.Len()
	res.Fingerprint = core.Fingerprint(ds)

	stored, err := i.writer.Fingerprint(ctx, table)
	switch {
	case err == nil && stored == res.Fingerprint && !i.force:
		i.logger.Debug("table unchanged", "table", table)
		res.Outcome = OutcomeUnchanged
		return res
	case err != nil && !errors.Is(err, storage.ErrSourceNotFound):
		return fail(err)
	}

	if err := i.writer.ReplaceTable(ctx, ds); err != nil {
		return fail(err)
	}
	i.logger.Debug("table imported", "table", table, "count", res.Rows)
	res.Outcome = OutcomeImported
	return res
}

// Release releases the worker pool.
// The importer should not be used after calling Release.
func (i *Importer) Release() {
	if i.pool != nil {
		i.pool.Release()
	}
}
