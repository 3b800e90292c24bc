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

import "errors"

// Domain validation errors
var (
	// ErrInvalidItem indicates an Item failed validation.
	ErrInvalidItem = errors.New("invalid item")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrInvalidTag indicates a genre or theme is blank.
	ErrInvalidTag = errors.New("genre and theme names cannot be empty")

	// ErrNegativeStatistic indicates score, popularity or favorites is negative.
	ErrNegativeStatistic = errors.New("catalog statistics cannot be negative")
)

// ErrInvalidLength indicates an encoded slice length is negative or exceeds the input.
var ErrInvalidLength = errors.New("invalid encoded length")
