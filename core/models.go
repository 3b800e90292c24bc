package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Items derive theirs from the title so re-imports land on the same record.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// IDFromTitle returns the content ID for an item title.
// Surrounding whitespace is ignored; case is significant.
func IDFromTitle(title string) ID {
	return IDFromContent(strings.TrimSpace(title))
}

// Item is a single manga entry in the corpus.
// Only Title, Description, Genres and Themes feed the recommender; the
// remaining catalog fields are carried through for display.
type Item struct {
	Id          ID
	Title       string   `validate:"required"`
	Description string
	Genres      []string `validate:"dive,required"`
	Themes      []string `validate:"dive,required"`
	ImageURL    string
	Score       float64 `validate:"gte=0"`
	Popularity  int     `validate:"gte=0"`
	Favorites   int     `validate:"gte=0"`
	Year        string
	Authors     []string
	InsertedAt  time.Time // Set by the store on first insert
	UpdatedAt   time.Time // Set by the store on every write
}

// Recommendation is a single ranked result.
// Score is the boosted similarity and is not normalized to [0,1].
type Recommendation struct {
	Title    string
	Score    float64
	Genres   []string
	Themes   []string
	ImageURL string
}

// NewRecommendation builds a Recommendation for item with the given score.
func NewRecommendation(item *Item, score float64) *Recommendation {
	return &Recommendation{
		Title:    item.Title,
		Score:    score,
		Genres:   item.Genres,
		Themes:   item.Themes,
		ImageURL: item.ImageURL,
	}
}
