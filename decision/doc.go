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


// Package decision provides the authored design rule tables that sit beside
// search ranking: layout by slide goal, typography by content type, color by
// emotion and background imagery by slide type.
//
// Lookups are exact string matches against the key column of each table.
// The layout table falls back to the "features" row and the color table to
// the "clarity" row; the typography and background tables have no fallback.
// Tables are read from the record source on every lookup, so a source that
// changes between calls is always observed. A table whose backing data is
// absent behaves as an empty table.
package decision
