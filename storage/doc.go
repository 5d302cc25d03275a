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


// Package storage provides the storage abstraction layer for slidesearch.
//
// The search and decision layers never touch files or databases directly.
// They read whole tables through RecordSource, which returns rows in stable
// order and reports an absent table with ErrSourceNotFound, distinct from a
// present but empty table.
//
// # Implementations
//
//   - csvsource: CSV files in a directory or any fs.FS (including the
//     embedded seed data)
//   - badger: tables imported into a BadgerDB database
//   - cache: memoizing wrapper with explicit invalidation
//   - StaticSource: in-memory datasets, mainly for tests and embedding
//
// # Usage
//
//	src := csvsource.New(os.DirFS("./data"))
//	ds, err := src.Load(ctx, core.TableLayout)
//	if errors.Is(err, storage.ErrSourceNotFound) {
//	    // table has no backing file
//	}
//
// # Thread Safety
//
// All implementations must be safe for concurrent use. Sources never hand
// out shared mutable state: callers may modify returned datasets freely.
package storage
