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

import (
	"fmt"
	"strings"
	"time"
)

// ValidateHistoryEntry validates a HistoryEntry according to domain rules.
//
// Validation rules:
//   - Query must not be blank
//   - Id must equal IDFromContent(Query)
//   - ResultCount must not be negative
//   - SearchedAt must be set and not in the future
//   - Sources must not name more than MaxSources sources
//
// Sources may be empty: a query can be recorded before any source answers.
func ValidateHistoryEntry(entry *HistoryEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidHistoryEntry)
	}

	if strings.TrimSpace(entry.Query) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidHistoryEntry, ErrEmptyQuery)
	}

	if entry.Id != IDFromContent(entry.Query) {
		return fmt.Errorf("%w: %w", ErrInvalidHistoryEntry, ErrIDMismatch)
	}

	if entry.ResultCount < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidHistoryEntry, ErrNegativeResultCount)
	}

	if entry.SearchedAt.IsZero() || !IsValidTimestamp(entry.SearchedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidHistoryEntry, ErrInvalidTimestamp)
	}

	if len(entry.Sources) > MaxSources {
		return fmt.Errorf("%w: %w: %d", ErrInvalidHistoryEntry, ErrTooManySources, len(entry.Sources))
	}

	return nil
}

// MaxSources bounds the number of sources a history entry can name.
const MaxSources = 1024

// ValidateSourcesLength rejects a decoded source count above MaxSources
// before the list is allocated.
func ValidateSourcesLength(n int) error {
	if n > MaxSources {
		return fmt.Errorf("%w: %d sources, at most %d", ErrMalformedRecord, n, MaxSources)
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
