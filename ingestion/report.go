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


package ingestion

import (
	"errors"
	"fmt"

	"github.com/poiesic/slidesearch/core"
)

// Outcome is what happened to one table during an import.
type Outcome string

const (
	OutcomeImported  Outcome = "imported"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeMissing   Outcome = "missing"
	OutcomeFailed    Outcome = "failed"
)

// TableResult describes the import of one table.
type TableResult struct {
	Table       core.TableName
	Source      string
	Rows        int
	Fingerprint core.ID
	Outcome     Outcome
	Err         error
}

// Report lists per-table results in the order the tables were requested.
type Report struct {
	Results []TableResult
}

// Count returns the number of results with the given outcome.
func (r *Report) Count(outcome Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}

// Err joins the errors of all failed tables, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("table %s: %w", res.Table, res.Err))
		}
	}
	return errors.Join(errs...)
}
