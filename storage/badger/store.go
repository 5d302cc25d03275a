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


package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/slidesearch/core"
	"github.com/poiesic/slidesearch/storage"
)

// Store implements storage.Store for BadgerDB. Each table is kept as one
// metadata entry plus one entry per row, keyed so that iteration returns
// rows in their original order.
type Store struct {
	backend *Backend
}

var _ storage.Store = (*Store)(nil)

// NewStore creates a table store over an open backend.
// The store takes ownership of the backend.
func NewStore(backend *Backend) *Store {
	return &Store{
		backend: backend,
	}
}

// Open opens a file-backed store at path.
func Open(path string, opts ...Option) (*Store, error) {
	o := &openOptions{}
	for _, opt := range opts {
		opt(o)
	}
	backend, err := OpenBackend(path, o.inMemory, o.logger)
	if err != nil {
		return nil, err
	}
	return NewStore(backend), nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return s.backend.Close()
}

// ReplaceTable atomically replaces every row and the metadata of ds.Table.
func (s *Store) ReplaceTable(ctx context.Context, ds *core.Dataset) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	if err := core.ValidateTable(ds.Table); err != nil {
		return err
	}

	meta := &storage.TableMeta{
		Source:      ds.Source,
		Fingerprint: core.Fingerprint(ds),
		Columns:     ds.Columns,
		Rows:        ds.Len(),
	}

	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := deleteRows(tx, ds.Table); err != nil {
			return err
		}
		for i, r := range ds.Records {
			if err := tx.Set(makeTableRowKey(ds.Table, i), storage.MarshalRow(rowValues(ds, r))); err != nil {
				return err
			}
		}
		if err := tx.Set(makeTableMetaKey(ds.Table), storage.MarshalTableMeta(meta)); err != nil {
			return err
		}
		s.backend.logger.Debug("table replaced", "table", ds.Table, "count", meta.Rows)
		return tx.Commit()
	}, true)
}

// DropTable removes a table. Dropping an absent table is not an error.
func (s *Store) DropTable(ctx context.Context, table core.TableName) error {
	if err := s.check(ctx); err != nil {
		return err
	}
	return s.backend.WithTx(func(tx *badger.Txn) error {
		if err := deleteRows(tx, table); err != nil {
			return err
		}
		if err := tx.Delete(makeTableMetaKey(table)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Load returns the stored content of table in its original row order.
// Returns storage.ErrSourceNotFound when the table has never been written.
func (s *Store) Load(ctx context.Context, table core.TableName) (*core.Dataset, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}

	var ds *core.Dataset
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		meta, err := readMeta(tx, table)
		if err != nil {
			return err
		}
		ds = &core.Dataset{
			Table:   table,
			Source:  meta.Source,
			Columns: meta.Columns,
			Records: make([]core.Record, 0, meta.Rows),
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = makePartialTableRowKey(table)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				values, err := storage.UnmarshalRow(val)
				if err != nil {
					return err
				}
				ds.Records = append(ds.Records, core.NewRecord(meta.Columns, values))
				return nil
			})
			if err != nil {
				return err
			}
		}
		if len(ds.Records) != meta.Rows {
			return fmt.Errorf("%w: table %q has %d of %d rows", storage.ErrTruncatedData, table, len(ds.Records), meta.Rows)
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return ds, nil
}

// Fingerprint returns the content fingerprint recorded when table was last
// replaced.
func (s *Store) Fingerprint(ctx context.Context, table core.TableName) (core.ID, error) {
	meta, err := s.Meta(ctx, table)
	if err != nil {
		return 0, err
	}
	return meta.Fingerprint, nil
}

// Meta returns the stored metadata of table.
func (s *Store) Meta(ctx context.Context, table core.TableName) (*storage.TableMeta, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	var meta *storage.TableMeta
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		meta, err = readMeta(tx, table)
		return err
	}, false)
	return meta, err
}

// Tables lists the stored tables in key order.
func (s *Store) Tables(ctx context.Context) ([]core.TableName, error) {
	if err := s.check(ctx); err != nil {
		return nil, err
	}
	var tables []core.TableName
	err := s.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(tableMetaPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			tables = append(tables, tableFromMetaKey(iter.Item().Key()))
		}
		return nil
	}, false)
	return tables, err
}

func (s *Store) check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return nil
}

func readMeta(tx *badger.Txn, table core.TableName) (*storage.TableMeta, error) {
	item, err := tx.Get(makeTableMetaKey(table))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, storage.ErrSourceNotFound
	}
	if err != nil {
		return nil, err
	}
	var meta *storage.TableMeta
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		meta, unmarshalErr = storage.UnmarshalTableMeta(val)
		return unmarshalErr
	})
	return meta, err
}

func deleteRows(tx *badger.Txn, table core.TableName) error {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = makePartialTableRowKey(table)
	iter := tx.NewIterator(opts)

	var keys [][]byte
	for iter.Rewind(); iter.Valid(); iter.Next() {
		keys = append(keys, iter.Item().KeyCopy(nil))
	}
	iter.Close()

	for _, key := range keys {
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// rowValues returns r's values in column order, cut after the last column
// the row carries so short rows stay short when reloaded.
func rowValues(ds *core.Dataset, r core.Record) []string {
	values := ds.Values(r)
	n := len(values)
	for n > 0 && !r.Has(ds.Columns[n-1]) {
		n--
	}
	return values[:n]
}
