package file

import "github.com/poiesic/mangarec/core"

// record is the on-disk layout of one corpus entry.
// The JSON shape matches the catalog export written by the data fetcher
// (manga_data.json); the Parquet columns use the same names.
type record struct {
	Title       string   `json:"title" parquet:"title"`
	Description string   `json:"description" parquet:"description"`
	Genres      []string `json:"genres" parquet:"genres,list"`
	Themes      []string `json:"themes" parquet:"themes,list"`
	Score       float64  `json:"score" parquet:"score"`
	ImageURL    string   `json:"image_url" parquet:"image_url"`
	Popularity  int64    `json:"popularity" parquet:"popularity"`
	Favorites   int64    `json:"favorites" parquet:"favorites"`
	Year        string   `json:"year" parquet:"year"`
	Authors     []string `json:"authors" parquet:"authors,list"`
}

func (r *record) toItem() *core.Item {
	item := &core.Item{
		Title:       r.Title,
		Description: r.Description,
		Genres:      r.Genres,
		Themes:      r.Themes,
		ImageURL:    r.ImageURL,
		Score:       r.Score,
		Popularity:  int(r.Popularity),
		Favorites:   int(r.Favorites),
		Year:        r.Year,
		Authors:     r.Authors,
	}
	core.NormalizeItem(item)
	return item
}

func fromItem(item *core.Item) record {
	return record{
		Title:       item.Title,
		Description: item.Description,
		Genres:      nonNil(item.Genres),
		Themes:      nonNil(item.Themes),
		Score:       item.Score,
		ImageURL:    item.ImageURL,
		Popularity:  int64(item.Popularity),
		Favorites:   int64(item.Favorites),
		Year:        item.Year,
		Authors:     nonNil(item.Authors),
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
