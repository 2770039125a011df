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

// Package storage provides the storage abstraction layer for omnisearch.
//
// This package defines repository interfaces that decouple storage implementation
// from the aggregator. The only persisted data is the search history: the
// queries a user ran, which sources answered and how many results came back.
//
// # Constructor Return Type Pattern
//
// Public constructors return interfaces:
//
//	repo, err := badger.NewHistoryRepository(path) // returns storage.HistoryRepository
//
// Internal package constructors (newBackend, etc.) may return concrete
// types since they're only used within the implementation package.
//
// # Usage
//
//	repo, err := badger.NewHistoryRepository("/path/to/db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
//	entry := core.NewHistoryEntry("project:core race", []string{"jira"}, 3, time.Now())
//	err = repo.RecordSearch(ctx, entry)
//
// Use in tests with in-memory storage:
//
//	repo, err := badger.NewMemoryHistoryRepository()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
