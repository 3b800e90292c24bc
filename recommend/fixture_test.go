package recommend

import (
	"context"

	"github.com/poiesic/mangarec/core"
)

func sampleCorpus() []*core.Item {
	return []*core.Item{
		{
			Title:       "Naruto",
			Description: "A ninja's journey to become Hokage.",
			Genres:      []string{"Action", "Adventure"},
			Themes:      []string{"Martial Arts"},
			ImageURL:    "https://example.com/naruto.jpg",
		},
		{
			Title:       "One Piece",
			Description: "Pirate crew sails to find the One Piece.",
			Genres:      []string{"Action", "Adventure"},
			Themes:      []string{},
			ImageURL:    "https://example.com/onepiece.jpg",
		},
		{
			Title:       "Bleach",
			Description: "Teen gains powers to fight evil spirits.",
			Genres:      []string{"Action", "Supernatural"},
			Themes:      []string{},
			ImageURL:    "https://example.com/bleach.jpg",
		},
		{
			Title:       "Attack on Titan",
			Description: "Humans fight for survival against Titans.",
			Genres:      []string{"Action", "Drama"},
			Themes:      []string{"Gore"},
			ImageURL:    "https://example.com/aot.jpg",
		},
		{
			Title:       "Death Note",
			Description: "A notebook grants power to kill.",
			Genres:      []string{"Supernatural", "Thriller"},
			Themes:      []string{"Psychological"},
			ImageURL:    "https://example.com/deathnote.jpg",
		},
	}
}

// mirrorCorpus has two items with identical text and disjoint genres,
// plus an unrelated third item so the vocabulary survives pruning.
func mirrorCorpus() []*core.Item {
	return []*core.Item{
		{
			Title:       "Mirror Alpha",
			Description: "sword magic kingdom",
			Genres:      []string{"Action"},
		},
		{
			Title:       "Mirror Beta",
			Description: "sword magic kingdom",
			Genres:      []string{"Romance"},
		},
		{
			Title:       "Garden Tales",
			Description: "quiet flowers bloom",
			Genres:      []string{"Slice of Life"},
		},
	}
}

type sliceLoader struct {
	items []*core.Item
	err   error
	calls int
}

func (l *sliceLoader) LoadCorpus(_ context.Context) ([]*core.Item, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return l.items, nil
}

func titles(results []*core.Recommendation) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Title
	}
	return out
}
