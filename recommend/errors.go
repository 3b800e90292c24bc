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


package recommend

import "errors"

var (
	// ErrNotFound is returned when the query matches no item title.
	ErrNotFound = errors.New("no item matches query")

	// ErrEmptyVocabulary is returned when the corpus is too small, or term
	// filtering removes every term, so no similarity can be computed.
	ErrEmptyVocabulary = errors.New("empty vocabulary: corpus too small or all terms filtered")

	// ErrInvalidTopN is returned when the requested result count is out of range.
	ErrInvalidTopN = errors.New("result count out of range")

	// ErrInvalidRequest is returned when a request fails validation.
	ErrInvalidRequest = errors.New("invalid recommendation request")

	// ErrCorpusLoaderRequired is returned when a corpus loader is not provided.
	ErrCorpusLoaderRequired = errors.New("corpus loader required")

	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("invalid recommender config")
)
