package vector

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// Search scores every doc against query and sorts by descending similarity.
// Ties keep their input order.
func Search(metric DistanceMetric, query []float64, docs []Embedding) ([]SearchResult, error) {
	results := make([]SearchResult, 0, len(docs))
	for _, doc := range docs {
		score, err := Similarity(metric, query, doc.Vector)
		if err != nil {
			return nil, fmt.Errorf("doc %d: %w", doc.Index, err)
		}
		results = append(results, SearchResult{Embedding: doc, Similarity: score})
	}

	slices.SortStableFunc(results, func(a, b SearchResult) int {
		return cmp.Compare(b.Similarity, a.Similarity)
	})

	return results, nil
}

func Similarity(metric DistanceMetric, a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, &EmbeddingError{Message: fmt.Sprintf("dimension mismatch: %d != %d", len(a), len(b))}
	}

	switch metric {
	case DistanceCosine:
		return Cosine(a, b), nil
	case DistanceL2:
		return -L2(a, b), nil
	case DistanceL1:
		return -L1(a, b), nil
	}
	return 0, &EmbeddingError{Message: "unknown distance metric " + string(metric)}
}

// Cosine returns 0 when either vector has zero magnitude.
func Cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

func L2(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func L1(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum
}
