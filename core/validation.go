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

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func itemValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// NormalizeItem fills defaulted optional fields in place.
// Nil slices become empty slices and the title is trimmed. The ID is derived
// from the title when unset.
func NormalizeItem(item *Item) {
	if item == nil {
		return
	}
	item.Title = strings.TrimSpace(item.Title)
	if item.Genres == nil {
		item.Genres = []string{}
	}
	if item.Themes == nil {
		item.Themes = []string{}
	}
	if item.Authors == nil {
		item.Authors = []string{}
	}
	if item.Id == 0 && item.Title != "" {
		item.Id = IDFromTitle(item.Title)
	}
}

// ValidateItem validates an Item according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Genre and theme names must not be empty
//   - Score, Popularity and Favorites must not be negative
//
// Description, ImageURL, Year and Authors are optional.
func ValidateItem(item *Item) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", ErrInvalidItem)
	}

	if strings.TrimSpace(item.Title) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidItem, ErrEmptyTitle)
	}

	err := itemValidator().Struct(item)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidItem, err)
	}

	fe := fieldErrs[0]
	field := fe.StructField()
	switch {
	case strings.HasPrefix(field, "Genres"), strings.HasPrefix(field, "Themes"):
		return fmt.Errorf("%w: %w: %s", ErrInvalidItem, ErrInvalidTag, field)
	case field == "Score", field == "Popularity", field == "Favorites":
		return fmt.Errorf("%w: %w: %s", ErrInvalidItem, ErrNegativeStatistic, field)
	case field == "Title":
		return fmt.Errorf("%w: %w", ErrInvalidItem, ErrEmptyTitle)
	}
	return fmt.Errorf("%w: %s failed %q", ErrInvalidItem, field, fe.Tag())
}
