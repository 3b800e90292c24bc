package recommend

import (
	"sort"

	"github.com/poiesic/mangarec/core"
)

// Rank orders every item except index by descending score and keeps the
// first topN. Equal scores keep corpus order. Zero scores are still eligible.
func Rank(corpus []*core.Item, index int, scores []float64, topN int) []*core.Recommendation {
	candidates := make([]int, 0, len(corpus))
	for i := range corpus {
		if i != index {
			candidates = append(candidates, i)
		}
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return scores[candidates[a]] > scores[candidates[b]]
	})
	if len(candidates) > topN {
		candidates = candidates[:topN]
	}

	results := make([]*core.Recommendation, len(candidates))
	for k, i := range candidates {
		results[k] = core.NewRecommendation(corpus[i], scores[i])
	}
	return results
}
