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


// Package storage provides the storage abstraction layer for mangarec.
//
// The recommender only depends on CorpusLoader, a single "fetch the current
// corpus" capability. ItemRepository extends it with the write and lookup
// operations the ingestion pipeline and CLI need. Backends:
//
//   - storage/badger: embedded BadgerDB store that keeps items in insertion order
//   - storage/file: JSON or Parquet corpus files
//
// # Errors
//
// A missing or unreadable backing store is reported with an error wrapping
// ErrCorpusUnavailable so callers can tell an operational problem apart from
// a query that matched nothing.
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
