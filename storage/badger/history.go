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

package badger

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/omnisearch/core"
	"github.com/poiesic/omnisearch/storage"
)

// HistoryRepository implements storage.HistoryRepository for BadgerDB.
type HistoryRepository struct {
	backend     *Backend
	ownsBackend bool
}

var _ storage.HistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository opens (or creates) a history database at path.
// The returned repository owns the database and closes it on Close.
func NewHistoryRepository(path string, options ...BackendOption) (storage.HistoryRepository, error) {
	backend, err := OpenBackend(path, false, options...)
	if err != nil {
		return nil, err
	}
	return &HistoryRepository{backend: backend, ownsBackend: true}, nil
}

// NewHistoryRepositoryWithBackend creates a HistoryRepository on a shared backend.
// Closing the repository leaves the backend open.
func NewHistoryRepositoryWithBackend(backend *Backend) *HistoryRepository {
	return &HistoryRepository{backend: backend}
}

// Close closes the backend if the repository owns it.
func (r *HistoryRepository) Close() error {
	if !r.ownsBackend || r.backend.IsClosed() {
		return nil
	}
	return r.backend.Close()
}

// RecordSearch stores entry, replacing any previous entry for the same query.
func (r *HistoryRepository) RecordSearch(ctx context.Context, entry *core.HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := core.ValidateHistoryEntry(entry); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeHistoryKey(entry.Id)

		old, err := r.readEntry(tx, key)
		if err != nil {
			return err
		}
		// Move the entry in the time index
		if old != nil {
			if err := tx.Delete(makeHistoryTimeKey(old.SearchedAt, old.Id)); err != nil {
				return err
			}
		}

		if err := tx.Set(key, storage.MarshalHistoryEntry(entry)); err != nil {
			return err
		}
		timeKey := makeHistoryTimeKey(entry.SearchedAt, entry.Id)
		if err := tx.Set(timeKey, storage.MarshalID(entry.Id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetEntry retrieves a single history entry by ID.
func (r *HistoryRepository) GetEntry(ctx context.Context, id core.ID) (*core.HistoryEntry, error) {
	var result *core.HistoryEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readEntry(tx, makeHistoryKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// RecentSearches retrieves up to limit entries, most recently searched first.
func (r *HistoryRepository) RecentSearches(ctx context.Context, limit int) ([]*core.HistoryEntry, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", storage.ErrInvalidQuery, limit)
	}

	var results []*core.HistoryEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to get most recent entries first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(historyTimePrefix + ":")
		for iter.Seek(makeHistoryTimeSeekKey()); iter.Valid() && len(results) < limit; iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if !bytes.HasPrefix(iter.Item().Key(), prefix) {
				break
			}

			var id core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			entry, err := r.readEntry(tx, makeHistoryKey(id))
			if err != nil {
				return err
			}
			if entry != nil {
				results = append(results, entry)
			}
		}
		return nil
	}, false)

	return results, err
}

// DeleteEntry removes an entry and its time index.
func (r *HistoryRepository) DeleteEntry(ctx context.Context, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeHistoryKey(id)
		entry, err := r.readEntry(tx, key)
		if err != nil {
			return err
		}
		if entry == nil {
			return storage.ErrNotFound
		}
		if err := tx.Delete(makeHistoryTimeKey(entry.SearchedAt, entry.Id)); err != nil {
			return err
		}
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Clear removes every history entry.
func (r *HistoryRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.backend.DeletePrefix(historyRecordPrefix+":", historyTimePrefix+":"); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	r.backend.logger.Debug("cleared search history")
	return nil
}

// readEntry returns nil, nil when the key does not exist.
func (r *HistoryRepository) readEntry(tx *badger.Txn, key []byte) (*core.HistoryEntry, error) {
	item, err := tx.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entry *core.HistoryEntry
	err = item.Value(func(val []byte) error {
		var err error
		entry, err = storage.UnmarshalHistoryEntry(val)
		return err
	})
	return entry, err
}
