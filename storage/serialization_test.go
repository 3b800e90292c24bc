package storage

import (
	"testing"
	"time"

	"github.com/poiesic/mangarec/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)}, // max uint64
		{"title-based ID", core.IDFromTitle("Naruto")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}
}

func TestUnmarshalID_Invalid(t *testing.T) {
	_, err := UnmarshalID([]byte{})
	assert.ErrorIs(t, err, ErrSerializationFailed)
}

func TestMarshalUnmarshalItem(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name string
		item *core.Item
	}{
		{
			name: "minimal item",
			item: &core.Item{
				Id:      core.IDFromTitle("Test Manga"),
				Title:   "Test Manga",
				Genres:  []string{},
				Themes:  []string{},
				Authors: []string{},
			},
		},
		{
			name: "full item",
			item: &core.Item{
				Id:          core.IDFromTitle("Naruto"),
				Title:       "Naruto",
				Description: "A ninja's journey to become Hokage.",
				Genres:      []string{"Action", "Adventure"},
				Themes:      []string{"Martial Arts"},
				ImageURL:    "https://example.com/naruto.jpg",
				Score:       8.07,
				Popularity:  12,
				Favorites:   27000,
				Year:        "1999",
				Authors:     []string{"Kishimoto, Masashi"},
				InsertedAt:  now,
				UpdatedAt:   now.Add(time.Minute),
			},
		},
		{
			name: "unicode text",
			item: &core.Item{
				Id:          core.IDFromTitle("進撃の巨人"),
				Title:       "進撃の巨人",
				Description: "人類は巨人と戦う。",
				Genres:      []string{"Action", "Drama"},
				Themes:      []string{"Gore"},
				Authors:     []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalItem(tt.item)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalItem(data)
			require.NoError(t, err)
			assert.Equal(t, tt.item, decoded)
		})
	}
}

func TestUnmarshalItem_Invalid(t *testing.T) {
	t.Run("empty data", func(t *testing.T) {
		_, err := UnmarshalItem([]byte{})
		assert.ErrorIs(t, err, ErrSerializationFailed)
	})

	t.Run("cut short", func(t *testing.T) {
		data := MarshalItem(&core.Item{Title: "Bleach", Description: "Teen gains powers to fight evil spirits."})
		_, err := UnmarshalItem(data[:len(data)/2])
		assert.Error(t, err)
	})

	t.Run("trailing bytes", func(t *testing.T) {
		data := MarshalItem(&core.Item{Title: "Bleach"})
		data = append(data, 0x01, 0x02)
		_, err := UnmarshalItem(data)
		assert.ErrorIs(t, err, ErrTruncatedData)
	})
}
