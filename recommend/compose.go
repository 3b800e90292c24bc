package recommend

import (
	"strings"

	"github.com/poiesic/mangarec/core"
)

// ComposeDocument builds the text the vectorizer sees for one item:
// title, description, then every genre and every theme written repeat times.
// Repetition gives tags a fixed lexical weight relative to free text.
func ComposeDocument(item *core.Item, repeat int) string {
	var b strings.Builder
	b.WriteString(item.Title)
	b.WriteByte(' ')
	b.WriteString(item.Description)
	b.WriteByte(' ')
	writeRepeated(&b, item.Genres, repeat)
	b.WriteByte(' ')
	writeRepeated(&b, item.Themes, repeat)
	return b.String()
}

func writeRepeated(b *strings.Builder, tags []string, repeat int) {
	first := true
	for _, tag := range tags {
		for i := 0; i < repeat; i++ {
			if !first {
				b.WriteByte(' ')
			}
			b.WriteString(tag)
			first = false
		}
	}
}

// ComposeCorpus composes every item in corpus order.
func ComposeCorpus(corpus []*core.Item, repeat int) []string {
	docs := make([]string, len(corpus))
	for i, item := range corpus {
		docs[i] = ComposeDocument(item, repeat)
	}
	return docs
}
