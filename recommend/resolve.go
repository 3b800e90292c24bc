package recommend

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/mangarec/core"
)

// ResolveQuery maps a free-text query to a corpus index. Matching is a
// case-insensitive substring test against titles. When several titles match,
// the shortest wins; ties go to the earliest item.
func ResolveQuery(corpus []*core.Item, query string) (int, error) {
	q := strings.ToLower(query)
	best, bestLen := -1, 0
	for i, item := range corpus {
		title := strings.ToLower(item.Title)
		if !strings.Contains(title, q) {
			continue
		}
		n := utf8.RuneCountInString(title)
		if best < 0 || n < bestLen {
			best, bestLen = i, n
		}
	}
	if best < 0 {
		return -1, fmt.Errorf("%w: %q", ErrNotFound, query)
	}
	return best, nil
}
