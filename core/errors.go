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


package core

import "errors"

// Domain validation errors
var (
	// ErrUnknownDomain indicates a name outside the fixed domain enumeration.
	ErrUnknownDomain = errors.New("unknown domain")

	// ErrUnknownTable indicates a name outside the fixed table enumeration.
	ErrUnknownTable = errors.New("unknown table")

	// ErrInvalidPosition indicates a slide position outside its deck.
	ErrInvalidPosition = errors.New("invalid slide position")

	// ErrInvalidDeckSize indicates a deck with no slides.
	ErrInvalidDeckSize = errors.New("total slides must be positive")
)
