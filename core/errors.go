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
	// ErrInvalidHistoryEntry indicates a HistoryEntry failed validation.
	ErrInvalidHistoryEntry = errors.New("invalid history entry")

	// ErrInvalidTimestamp indicates a timestamp is zero or in the future.
	ErrInvalidTimestamp = errors.New("timestamp must be set and not in the future")

	// ErrEmptyQuery indicates the Query field is empty.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrNegativeResultCount indicates a negative ResultCount.
	ErrNegativeResultCount = errors.New("result count cannot be negative")

	// ErrIDMismatch indicates the entry ID does not match its query.
	ErrIDMismatch = errors.New("id does not match query content")

	// ErrTooManySources indicates an entry names more than MaxSources sources.
	ErrTooManySources = errors.New("too many sources")

	// ErrMalformedRecord indicates encoded record bytes are inconsistent.
	ErrMalformedRecord = errors.New("malformed record")
)
