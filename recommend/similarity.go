package recommend

import "fmt"

// CosineSimilarities returns the cosine similarity of document row against
// every document, including itself, in corpus order. Rows are unit length so
// the cosine is the sparse dot product.
func (m *TermMatrix) CosineSimilarities(row int) ([]float64, error) {
	if row < 0 || row >= len(m.rows) {
		return nil, fmt.Errorf("row %d out of range [0,%d)", row, len(m.rows))
	}
	query := m.rows[row]
	scores := make([]float64, len(m.rows))
	for i, other := range m.rows {
		scores[i] = dot(query, other)
	}
	return scores, nil
}

func dot(a, b sparseRow) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.indices) && j < len(b.indices) {
		switch {
		case a.indices[i] == b.indices[j]:
			sum += a.values[i] * b.values[j]
			i++
			j++
		case a.indices[i] < b.indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}
