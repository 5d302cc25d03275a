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


package search

import "errors"

var (
	// ErrSourceRequired is returned when a record source is not provided.
	ErrSourceRequired = errors.New("record source required")

	// ErrRouterRequired is returned when a nil router is supplied.
	ErrRouterRequired = errors.New("router required")

	// ErrInvalidBM25 is returned for negative BM25 parameters or b outside [0, 1].
	ErrInvalidBM25 = errors.New("invalid BM25 parameters")
)
