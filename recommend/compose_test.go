package recommend

import (
	"testing"

	"github.com/poiesic/mangarec/core"
	"github.com/stretchr/testify/assert"
)

func TestComposeDocument(t *testing.T) {
	tests := []struct {
		name     string
		item     *core.Item
		repeat   int
		expected string
	}{
		{
			name: "tags repeated twice",
			item: &core.Item{
				Title:       "Naruto",
				Description: "Ninja",
				Genres:      []string{"Action", "Adventure"},
				Themes:      []string{"Martial Arts"},
			},
			repeat:   2,
			expected: "Naruto Ninja Action Action Adventure Adventure Martial Arts Martial Arts",
		},
		{
			name: "empty themes leave trailing separator",
			item: &core.Item{
				Title:       "Bleach",
				Description: "Spirits",
				Genres:      []string{"Action"},
			},
			repeat:   2,
			expected: "Bleach Spirits Action Action ",
		},
		{
			name:     "no tags",
			item:     &core.Item{Title: "Solo", Description: "Alone"},
			repeat:   2,
			expected: "Solo Alone  ",
		},
		{
			name: "single repeat",
			item: &core.Item{
				Title:  "Death Note",
				Genres: []string{"Thriller"},
				Themes: []string{"Psychological"},
			},
			repeat:   1,
			expected: "Death Note  Thriller Psychological",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComposeDocument(tt.item, tt.repeat))
		})
	}
}

func TestComposeCorpusPreservesOrder(t *testing.T) {
	corpus := sampleCorpus()
	docs := ComposeCorpus(corpus, 2)
	assert.Len(t, docs, len(corpus))
	for i, item := range corpus {
		assert.Equal(t, ComposeDocument(item, 2), docs[i])
	}
}
