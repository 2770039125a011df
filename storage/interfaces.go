package storage

import (
	"context"

	"github.com/poiesic/omnisearch/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access. Each
// write operation commits atomically on its own.
type Repository interface {
	// Close closes the storage backend and releases resources.
	Close() error
}

// HistoryRepository stores the queries a user has searched.
type HistoryRepository interface {
	Repository
	// RecordSearch stores entry, replacing any entry with the same ID.
	// The entry's position in the recent list moves to its new SearchedAt.
	// Returns core.ErrInvalidHistoryEntry if the entry fails validation.
	RecordSearch(ctx context.Context, entry *core.HistoryEntry) error

	// GetEntry retrieves a single entry by ID.
	// Returns ErrNotFound if the entry doesn't exist.
	GetEntry(ctx context.Context, id core.ID) (*core.HistoryEntry, error)

	// RecentSearches retrieves up to limit entries, most recently searched first.
	// Returns ErrInvalidQuery if limit < 1.
	RecentSearches(ctx context.Context, limit int) ([]*core.HistoryEntry, error)

	// DeleteEntry removes an entry and its time index.
	// Returns ErrNotFound if the entry doesn't exist.
	DeleteEntry(ctx context.Context, id core.ID) error

	// Clear removes every entry.
	Clear(ctx context.Context) error
}
