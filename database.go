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

package mangarec

import (
	"log/slog"

	"github.com/poiesic/mangarec/ingestion"
	"github.com/poiesic/mangarec/recommend"
	"github.com/poiesic/mangarec/storage"
	"github.com/poiesic/mangarec/storage/badger"
)

// Database is a persistent manga catalog with recommendation and import
// entry points.
type Database struct {
	backend  *badger.Backend
	itemRepo *badger.ItemRepository
	logger   *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	inMemory bool
	logger   *slog.Logger
}

// WithInMemory keeps the catalog in memory; the path is ignored.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// WithDatabaseLogger sets a custom logger.
// Default is slog.Default().
func WithDatabaseLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewDatabase opens or creates the catalog at filePath.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	itemRepo, err := badger.NewItemRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:  backend,
		itemRepo: itemRepo,
		logger:   options.logger,
	}, nil
}

// Close closes the repository and the backend.
func (db *Database) Close() error {
	if err := db.itemRepo.Close(); err != nil {
		db.logger.Error("error closing item repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// ItemRepository returns the catalog's item store.
func (db *Database) ItemRepository() storage.ItemRepository {
	return db.itemRepo
}

// NewIngestionPipeline creates an import pipeline writing to this catalog.
func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	opts = append([]ingestion.Option{ingestion.WithLogger(db.logger)}, opts...)
	return ingestion.NewPipeline(db.itemRepo, opts...)
}

// NewRecommender creates a recommender reading this catalog.
func (db *Database) NewRecommender(opts ...recommend.Option) (*recommend.Recommender, error) {
	opts = append([]recommend.Option{recommend.WithLogger(db.logger)}, opts...)
	return recommend.NewRecommender(db.itemRepo, opts...)
}
