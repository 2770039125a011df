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

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"slices"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for stored records.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Result is a single hit returned by a search source.
type Result struct {
	SourceID  string            // ID of the source that produced the hit
	Title     string
	URL       string
	Snippet   string            // Short excerpt shown under the title
	Score     float32           // Source-assigned relevance, higher is better
	UpdatedAt time.Time         // Last modification of the underlying item, if known
	Metadata  map[string]string // Source-specific fields (e.g. "project", "channel")
}

// HistoryEntry records a query string that was searched.
// Entries are keyed by the normalized query, so searching the same query
// again updates the existing entry.
type HistoryEntry struct {
	Id          ID
	Query       string
	Sources     []string  // IDs of the sources the query was sent to
	ResultCount int       // Total results across all sources
	SearchedAt  time.Time // When the query was last searched
}

// NormalizeQuery collapses runs of whitespace and trims the query so that
// equivalent inputs share a history entry.
func NormalizeQuery(query string) string {
	return strings.Join(strings.Fields(query), " ")
}

// NewHistoryEntry creates an entry for query with a content-derived ID.
func NewHistoryEntry(query string, sources []string, resultCount int, searchedAt time.Time) *HistoryEntry {
	normalized := NormalizeQuery(query)
	return &HistoryEntry{
		Id:          IDFromContent(normalized),
		Query:       normalized,
		Sources:     slices.Clone(sources),
		ResultCount: resultCount,
		SearchedAt:  searchedAt.UTC(),
	}
}
