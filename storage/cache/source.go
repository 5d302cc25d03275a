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


// Package cache memoizes table loads from a slower record source.
//
// Entries, including the absence of a table, are kept until invalidated
// explicitly or by a Watcher observing the backing files.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/poiesic/slidesearch/core"
	"github.com/poiesic/slidesearch/storage"
)

type entry struct {
	ds      *core.Dataset
	missing bool
}

// Stats counts cache lookups.
type Stats struct {
	Hits   int
	Misses int
}

// Source is a memoizing storage.RecordSource. It is safe for concurrent use.
type Source struct {
	inner   storage.RecordSource
	mu      sync.RWMutex
	entries map[core.TableName]entry
	gens    map[core.TableName]uint64 // bumped by Invalidate
	epoch   uint64                    // bumped by InvalidateAll
	stats   Stats
	logger  *slog.Logger
}

var _ storage.RecordSource = (*Source)(nil)

// Option configures a Source.
type Option func(*Source)

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

// New wraps inner with a cache.
func New(inner storage.RecordSource, opts ...Option) (*Source, error) {
	if inner == nil {
		return nil, storage.ErrSourceRequired
	}
	s := &Source{
		inner:   inner,
		entries: make(map[core.TableName]entry),
		gens:    make(map[core.TableName]uint64),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Load returns a copy of the cached table, reading through on a miss.
// Absent tables are cached as absent; other errors are not cached.
func (s *Source) Load(ctx context.Context, table core.TableName) (*core.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	e, ok := s.entries[table]
	gen := s.generation(table)
	s.mu.RUnlock()
	if ok {
		s.count(true)
		if e.missing {
			return nil, storage.ErrSourceNotFound
		}
		return storage.CloneDataset(e.ds), nil
	}
	s.count(false)

	ds, err := s.inner.Load(ctx, table)
	switch {
	case errors.Is(err, storage.ErrSourceNotFound):
		s.store(table, gen, entry{missing: true})
		return nil, err
	case err != nil:
		return nil, err
	}
	s.store(table, gen, entry{ds: storage.CloneDataset(ds)})
	return ds, nil
}

// Invalidate drops the cached entry for table.
func (s *Source) Invalidate(table core.TableName) {
	s.mu.Lock()
	delete(s.entries, table)
	s.gens[table]++
	s.mu.Unlock()
	s.logger.Debug("cache entry invalidated", "table", table)
}

// InvalidateAll drops every cached entry.
func (s *Source) InvalidateAll() {
	s.mu.Lock()
	clear(s.entries)
	s.epoch++
	s.mu.Unlock()
	s.logger.Debug("cache cleared")
}

// Stats returns the lookup counters.
func (s *Source) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// generation must be called with mu held. Both counters only grow, so the
// sum changes whenever either invalidation happens.
func (s *Source) generation(table core.TableName) uint64 {
	return s.epoch + s.gens[table]
}

// store caches e unless the table was invalidated after gen was read, in
// which case the load raced a change and its result is discarded.
func (s *Source) store(table core.TableName, gen uint64, e entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation(table) != gen {
		s.logger.Debug("discarding load older than invalidation", "table", table)
		return
	}
	s.entries[table] = e
}

func (s *Source) count(hit bool) {
	s.mu.Lock()
	if hit {
		s.stats.Hits++
	} else {
		s.stats.Misses++
	}
	s.mu.Unlock()
}
