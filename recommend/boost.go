package recommend

import "github.com/poiesic/mangarec/core"

// BoostConfig weights the tag-overlap multiplier.
type BoostConfig struct {
	GenreWeight float64
	ThemeWeight float64
}

// Boost scales raw similarities by genre and theme overlap with the query item:
//
//	boosted[i] = raw[i] * (1 + GenreWeight*J(genres) + ThemeWeight*J(themes))
//
// The query item's own score is returned unchanged. raw is not modified.
func Boost(corpus []*core.Item, index int, raw []float64, cfg BoostConfig) []float64 {
	boosted := make([]float64, len(raw))
	query := corpus[index]
	queryGenres := toSet(query.Genres)
	queryThemes := toSet(query.Themes)

	for i, score := range raw {
		if i == index {
			boosted[i] = score
			continue
		}
		g := jaccard(queryGenres, toSet(corpus[i].Genres))
		t := jaccard(queryThemes, toSet(corpus[i].Themes))
		boosted[i] = score * (1 + cfg.GenreWeight*g + cfg.ThemeWeight*t)
	}
	return boosted
}

// Jaccard returns |a∩b| / max(1, |a∪b|) over the de-duplicated tags.
// Two empty lists yield 0.
func Jaccard(a, b []string) float64 {
	return jaccard(toSet(a), toSet(b))
}

func jaccard(a, b map[string]struct{}) float64 {
	inter := 0
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union < 1 {
		union = 1
	}
	return float64(inter) / float64(union)
}

func toSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}
