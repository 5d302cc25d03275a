// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package slidesearch ranks slide design guidance with BM25 and fuses it
// with authored decision tables into per-slide recommendations.
package slidesearch

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/poiesic/slidesearch/config"
	"github.com/poiesic/slidesearch/core"
	"github.com/poiesic/slidesearch/decision"
	"github.com/poiesic/slidesearch/fusion"
	"github.com/poiesic/slidesearch/ingestion"
	"github.com/poiesic/slidesearch/metrics"
	"github.com/poiesic/slidesearch/search"
	"github.com/poiesic/slidesearch/storage"
	"github.com/poiesic/slidesearch/storage/badger"
	"github.com/poiesic/slidesearch/storage/cache"
	"github.com/poiesic/slidesearch/storage/csvsource"
	"github.com/prometheus/client_golang/prometheus"
)

// Engine wires a record source to the searcher, the decision tables and the
// fusion engine according to a Config.
type Engine struct {
	cfg      config.Config
	source   storage.RecordSource
	cache    *cache.Source
	watcher  *cache.Watcher
	store    *badger.Store
	searcher *search.Searcher
	tables   *decision.Tables
	fusion   *fusion.Engine
	monitor  *metrics.Monitor
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	logger     *slog.Logger
	registerer prometheus.Registerer
	source     storage.RecordSource
	fusionCfg  *fusion.Config
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithMetrics registers search and import metrics with reg.
func WithMetrics(reg prometheus.Registerer) EngineOption {
	return func(o *engineOptions) {
		o.registerer = reg
	}
}

// WithSource reads tables from source instead of the configured backend.
func WithSource(source storage.RecordSource) EngineOption {
	return func(o *engineOptions) {
		o.source = source
	}
}

// WithFusionConfig replaces the stock fusion heuristics.
func WithFusionConfig(cfg fusion.Config) EngineOption {
	return func(o *engineOptions) {
		o.fusionCfg = &cfg
	}
}

// NewEngine builds an engine from cfg.
func NewEngine(cfg config.Config, opts ...EngineOption) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &engineOptions{}
	for _, opt := range opts {
		opt(options)
	}
	logger := options.logger
	if logger == nil {
		logger = slog.Default()
	}

	e := &Engine{
		cfg:    cfg,
		logger: logger,
	}
	if err := e.openSource(options.source); err != nil {
		return nil, err
	}

	searchOpts := []search.Option{
		search.WithLogger(logger),
		search.WithBM25(cfg.Search.K1, cfg.Search.B),
	}
	if options.registerer != nil {
		monitor, err := metrics.NewMonitor(options.registerer)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.monitor = monitor
		searchOpts = append(searchOpts, search.WithMonitor(monitor))
	}

	var err error
	if e.searcher, err = search.NewSearcher(e.source, searchOpts...); err != nil {
		e.Close()
		return nil, err
	}
	if e.tables, err = decision.NewTables(e.source, decision.WithLogger(logger)); err != nil {
		e.Close()
		return nil, err
	}

	fusionOpts := []fusion.Option{fusion.WithLogger(logger)}
	if options.fusionCfg != nil {
		fusionOpts = append(fusionOpts, fusion.WithConfig(*options.fusionCfg))
	}
	if e.fusion, err = fusion.NewEngine(e.searcher, e.tables, fusionOpts...); err != nil {
		e.Close()
		return nil, err
	}

	return e, nil
}

func (e *Engine) openSource(override storage.RecordSource) error {
	if override != nil {
		e.source = override
		return nil
	}

	switch e.cfg.Data.Backend {
	case config.BackendEmbedded:
		e.source = csvsource.Embedded(csvsource.WithLogger(e.logger))

	case config.BackendCSV:
		if _, err := os.Stat(e.cfg.Data.Dir); err != nil {
			return err
		}
		files := csvsource.New(os.DirFS(e.cfg.Data.Dir), csvsource.WithLogger(e.logger))
		c, err := cache.New(files, cache.WithLogger(e.logger))
		if err != nil {
			return err
		}
		e.cache = c
		e.source = c
		if e.cfg.Data.Watch {
			w, err := cache.Watch(context.Background(), c, e.cfg.Data.Dir, files.TableForFile)
			if err != nil {
				return err
			}
			e.watcher = w
		}

	case config.BackendBadger:
		store, err := badger.Open(e.cfg.Data.BadgerPath, badger.WithLogger(e.logger))
		if err != nil {
			return err
		}
		e.store = store
		e.source = store

	default:
		return fmt.Errorf("%w: backend %q", config.ErrInvalidConfig, e.cfg.Data.Backend)
	}
	return nil
}

// Close stops the file watcher and closes the table store, if any.
func (e *Engine) Close() error {
	if e.watcher != nil {
		if err := e.watcher.Close(); err != nil {
			e.logger.Error("error closing watcher", "err", err)
		}
	}
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Error("error closing table store", "err", err)
			return err
		}
	}
	return nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Source returns the record source the engine reads from.
func (e *Engine) Source() storage.RecordSource {
	return e.source
}

// Searcher returns the engine's searcher.
func (e *Engine) Searcher() *search.Searcher {
	return e.searcher
}

// Tables returns the engine's decision tables.
func (e *Engine) Tables() *decision.Tables {
	return e.tables
}

// Fusion returns the engine's fusion engine.
func (e *Engine) Fusion() *fusion.Engine {
	return e.fusion
}

// Invalidate drops cached tables so the next read sees the backing files.
// It does nothing for backends without a cache.
func (e *Engine) Invalidate(tables ...core.TableName) {
	if e.cache == nil {
		return
	}
	if len(tables) == 0 {
		e.cache.InvalidateAll()
		return
	}
	for _, t := range tables {
		e.cache.Invalidate(t)
	}
}

// Search ranks one domain, or the detected domain when domain is empty.
// A negative maxResults uses the configured limit.
func (e *Engine) Search(ctx context.Context, query string, domain core.Domain, maxResults int) (*core.SearchResponse, error) {
	if maxResults < 0 {
		maxResults = e.cfg.Search.MaxResults
	}
	return e.searcher.Search(ctx, query, domain, maxResults)
}

// SearchAll ranks every domain. A negative maxResultsPerDomain uses the
// configured limit.
func (e *Engine) SearchAll(ctx context.Context, query string, maxResultsPerDomain int) (core.DomainResults, error) {
	if maxResultsPerDomain < 0 {
		maxResultsPerDomain = e.cfg.Search.MaxResultsPerDomain
	}
	return e.searcher.SearchAll(ctx, query, maxResultsPerDomain)
}

// SearchWithContext validates the slide position and returns its
// recommendation.
func (e *Engine) SearchWithContext(ctx context.Context, query string, position, total int, previousEmotion string) (*core.ContextResponse, error) {
	if err := core.ValidateDeckPosition(position, total); err != nil {
		return nil, err
	}
	return e.fusion.SearchWithContext(ctx, query, position, total, previousEmotion)
}

// PlanDeck returns one recommendation per query, in deck order.
func (e *Engine) PlanDeck(ctx context.Context, queries []string) ([]*core.ContextResponse, error) {
	return e.fusion.PlanDeck(ctx, queries)
}

// NewImporter creates an importer copying from the engine's source into dest.
func (e *Engine) NewImporter(dest storage.TableWriter, opts ...ingestion.Option) (*ingestion.Importer, error) {
	opts = append([]ingestion.Option{ingestion.WithLogger(e.logger)}, opts...)
	return ingestion.NewImporter(e.source, dest, opts...)
}

// Import copies tables from the engine's source into dest and records the
// outcome in the engine's metrics, if any.
func (e *Engine) Import(ctx context.Context, dest storage.TableWriter, tables ...core.TableName) (*ingestion.Report, error) {
	imp, err := e.NewImporter(dest)
	if err != nil {
		return nil, err
	}
	defer imp.Release()

	report, err := imp.Import(ctx, tables...)
	if e.monitor != nil {
		e.monitor.ObserveImport(report)
	}
	return report, err
}
