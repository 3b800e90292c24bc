package storage

import (
	"context"

	"github.com/poiesic/mangarec/core"
)

// CorpusLoader supplies the current corpus.
// Items are returned in corpus order; that order defines the indices the
// recommender aligns its term matrix to. Implementations report a missing or
// unreadable backing store with an error wrapping ErrCorpusUnavailable.
type CorpusLoader interface {
	LoadCorpus(ctx context.Context) ([]*core.Item, error)
}

// ItemRepository provides operations for managing corpus items.
// Implementations must be thread-safe and support concurrent access.
type ItemRepository interface {
	CorpusLoader

	// AddItems stores one or more items.
	// Items whose title is new are appended to the end of the corpus.
	// Items whose title already exists replace the stored record in place,
	// keeping its corpus position and InsertedAt timestamp.
	// Returns the stored items with IDs and timestamps populated.
	AddItems(ctx context.Context, items ...*core.Item) ([]*core.Item, error)

	// GetItem retrieves a single item by ID.
	// Returns ErrNotFound if the item doesn't exist.
	GetItem(ctx context.Context, id core.ID) (*core.Item, error)

	// FindItemByTitle retrieves an item by its exact title.
	// Returns ErrNotFound if no item has that title.
	FindItemByTitle(ctx context.Context, title string) (*core.Item, error)

	// DeleteItems removes items by their IDs.
	// Returns ErrNotFound if any item doesn't exist.
	DeleteItems(ctx context.Context, ids ...core.ID) error

	// CountItems returns the number of stored items.
	CountItems(ctx context.Context) (int, error)

	// Close releases resources held by the repository.
	Close() error
}
