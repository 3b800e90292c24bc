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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/mangarec/core"
	"github.com/poiesic/mangarec/storage"
)

// ItemRepository implements storage.ItemRepository for BadgerDB.
type ItemRepository struct {
	backend  *Backend
	orderSeq *badger.Sequence
}

var _ storage.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository creates a new ItemRepository.
func NewItemRepository(backend *Backend) (*ItemRepository, error) {
	orderSeq, err := backend.GetSequence(itemOrderSeq)
	if err != nil {
		return nil, err
	}

	return &ItemRepository{
		backend:  backend,
		orderSeq: orderSeq,
	}, nil
}

// Close releases the order sequence.
func (r *ItemRepository) Close() error {
	return r.orderSeq.Release()
}

// AddItems stores items, appending new titles and replacing existing ones in place.
func (r *ItemRepository) AddItems(ctx context.Context, items ...*core.Item) ([]*core.Item, error) {
	if len(items) == 0 {
		return []*core.Item{}, nil
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, item := range items {
			if err := ctx.Err(); err != nil {
				return err
			}

			core.NormalizeItem(item)
			if err := core.ValidateItem(item); err != nil {
				return err
			}
			item.Id = core.IDFromTitle(item.Title)

			now := time.Now().UTC()
			existing, err := getItem(tx, item.Id)
			switch {
			case err == nil:
				item.InsertedAt = existing.InsertedAt
			case errors.Is(err, storage.ErrNotFound):
				if err := r.appendPosition(tx, item.Id); err != nil {
					return err
				}
				item.InsertedAt = now
			default:
				return err
			}
			item.UpdatedAt = now

			if err := tx.Set(makeItemKey(item.Id), storage.MarshalItem(item)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, err
	}

	return items, nil
}

// appendPosition assigns the next corpus position to id.
func (r *ItemRepository) appendPosition(tx *badger.Txn, id core.ID) error {
	position, err := r.orderSeq.Next()
	if err != nil {
		return err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if position == 0 {
		if position, err = r.orderSeq.Next(); err != nil {
			return err
		}
	}
	if err := tx.Set(makeItemOrderKey(position), storage.MarshalID(id)); err != nil {
		return err
	}
	return tx.Set(makeItemPositionKey(id), encodePosition(position))
}

// GetItem retrieves a single item by ID.
func (r *ItemRepository) GetItem(ctx context.Context, id core.ID) (*core.Item, error) {
	var item *core.Item
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		item, err = getItem(tx, id)
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// FindItemByTitle retrieves an item by its exact title.
func (r *ItemRepository) FindItemByTitle(ctx context.Context, title string) (*core.Item, error) {
	item, err := r.GetItem(ctx, core.IDFromTitle(title))
	if err != nil {
		return nil, err
	}
	// Guard against a hash collision between distinct titles
	if item.Title != title {
		return nil, storage.ErrNotFound
	}
	return item, nil
}

// DeleteItems removes items and their order index entries.
func (r *ItemRepository) DeleteItems(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			posItem, err := tx.Get(makeItemPositionKey(id))
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					return fmt.Errorf("item %d: %w", id, storage.ErrNotFound)
				}
				return err
			}
			var position uint64
			if err := posItem.Value(func(val []byte) error {
				var decodeErr error
				position, decodeErr = decodePosition(val)
				return decodeErr
			}); err != nil {
				return err
			}

			if err := tx.Delete(makeItemKey(id)); err != nil {
				return err
			}
			if err := tx.Delete(makeItemPositionKey(id)); err != nil {
				return err
			}
			if err := tx.Delete(makeItemOrderKey(position)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// CountItems returns the number of stored items.
func (r *ItemRepository) CountItems(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = itemOrderIterPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// LoadCorpus returns every item in insertion order.
func (r *ItemRepository) LoadCorpus(ctx context.Context) ([]*core.Item, error) {
	items := make([]*core.Item, 0)

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = itemOrderIterPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var id core.ID
			err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			})
			if err != nil {
				return err
			}

			item, err := getItem(tx, id)
			if err != nil {
				return fmt.Errorf("order index references item %d: %w", id, err)
			}
			items = append(items, item)
		}
		return nil
	}, false)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", storage.ErrCorpusUnavailable, err)
	}

	return items, nil
}

// getItem reads and decodes one item within tx.
func getItem(tx *badger.Txn, id core.ID) (*core.Item, error) {
	entry, err := tx.Get(makeItemKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	var item *core.Item
	err = entry.Value(func(val []byte) error {
		var err error
		item, err = storage.UnmarshalItem(val)
		return err
	})
	return item, err
}
