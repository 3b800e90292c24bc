package recommend

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenPattern matches runs of two or more letters, digits or underscores.
// Combining marks are not word characters, so decomposed accents split a
// token; catalogs are expected in composed form.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// VectorizerConfig controls vocabulary selection.
type VectorizerConfig struct {
	MinDocumentFrequency int
	MaxDocumentFrequency float64
	MaxNGram             int
}

// sparseRow is one document vector; indices are ascending column numbers.
type sparseRow struct {
	indices []int
	values  []float64
}

// TermMatrix holds one L2-normalized TF-IDF row per document.
type TermMatrix struct {
	vocabulary []string
	columns    map[string]int
	idf        []float64
	rows       []sparseRow
}

// NumDocuments returns the number of rows.
func (m *TermMatrix) NumDocuments() int {
	return len(m.rows)
}

// Vocabulary returns the retained terms in column order.
func (m *TermMatrix) Vocabulary() []string {
	return m.vocabulary
}

// Weight returns the normalized weight of term in document doc, or 0.
func (m *TermMatrix) Weight(doc int, term string) float64 {
	col, ok := m.columns[term]
	if !ok || doc < 0 || doc >= len(m.rows) {
		return 0
	}
	row := m.rows[doc]
	i := sort.SearchInts(row.indices, col)
	if i < len(row.indices) && row.indices[i] == col {
		return row.values[i]
	}
	return 0
}

// Tokenize lower-cases text and splits it into word tokens.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// analyze produces the unigram..maxN n-grams of a document.
// Stop-words are dropped before n-grams are formed.
func analyze(doc string, maxN int) []string {
	tokens := Tokenize(doc)
	words := tokens[:0]
	for _, t := range tokens {
		if !IsStopWord(t) {
			words = append(words, t)
		}
	}

	terms := make([]string, 0, len(words)*maxN)
	terms = append(terms, words...)
	for n := 2; n <= maxN; n++ {
		for i := 0; i+n <= len(words); i++ {
			terms = append(terms, strings.Join(words[i:i+n], " "))
		}
	}
	return terms
}

// Vectorize builds the TF-IDF term matrix for docs.
//
// Terms kept are those appearing in at least MinDocumentFrequency documents
// and in at most MaxDocumentFrequency*len(docs) documents. Weights are raw
// counts times the smoothed idf ln((1+N)/(1+df))+1, and each row is scaled to
// unit length. Rows with no retained term stay all-zero.
func Vectorize(docs []string, cfg VectorizerConfig) (*TermMatrix, error) {
	n := len(docs)
	if n < 2 {
		return nil, fmt.Errorf("%w: %d documents", ErrEmptyVocabulary, n)
	}

	counts := make([]map[string]int, n)
	df := make(map[string]int)
	for i, doc := range docs {
		tc := make(map[string]int)
		for _, term := range analyze(doc, cfg.MaxNGram) {
			tc[term]++
		}
		for term := range tc {
			df[term]++
		}
		counts[i] = tc
	}
	if len(df) == 0 {
		return nil, fmt.Errorf("%w: documents contain only stop words", ErrEmptyVocabulary)
	}

	maxDocs := cfg.MaxDocumentFrequency * float64(n)
	if maxDocs < float64(cfg.MinDocumentFrequency) {
		return nil, fmt.Errorf("%w: %d documents cannot satisfy document frequency bounds", ErrEmptyVocabulary, n)
	}

	vocabulary := make([]string, 0, len(df))
	for term, d := range df {
		if d >= cfg.MinDocumentFrequency && float64(d) <= maxDocs {
			vocabulary = append(vocabulary, term)
		}
	}
	if len(vocabulary) == 0 {
		return nil, fmt.Errorf("%w: no terms remain after pruning", ErrEmptyVocabulary)
	}
	sort.Strings(vocabulary)

	m := &TermMatrix{
		vocabulary: vocabulary,
		columns:    make(map[string]int, len(vocabulary)),
		idf:        make([]float64, len(vocabulary)),
		rows:       make([]sparseRow, n),
	}
	for col, term := range vocabulary {
		m.columns[term] = col
		m.idf[col] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}

	for i, tc := range counts {
		row := sparseRow{}
		for term := range tc {
			if col, ok := m.columns[term]; ok {
				row.indices = append(row.indices, col)
			}
		}
		sort.Ints(row.indices)
		row.values = make([]float64, len(row.indices))
		var norm float64
		for k, col := range row.indices {
			w := float64(tc[vocabulary[col]]) * m.idf[col]
			row.values[k] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for k := range row.values {
				row.values[k] /= norm
			}
		}
		m.rows[i] = row
	}

	return m, nil
}
