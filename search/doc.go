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


// Package search provides BM25 relevance ranking over slide design tables.
//
// The Searcher type implements the search flow:
//   - Domain routing using keyword substring votes
//   - Corpus construction from the domain's configured search fields
//   - BM25 ranking with stable ordering of equal scores
//
// Every call rebuilds its corpus from the record source, so results only
// ever depend on the query and the current backing data.
package search
