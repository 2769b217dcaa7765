package vector

type Embedding struct {
	Index  int
	Text   string
	Vector []float64
}

type SearchResult struct {
	Embedding
	// Similarity is higher for closer vectors under every metric; distance
	// metrics report the negated distance.
	Similarity float64
}

type DistanceMetric string

const (
	DistanceL2     DistanceMetric = "l2"
	DistanceCosine DistanceMetric = "cosine"
	DistanceL1     DistanceMetric = "l1"
)

func ParseMetric(s string) (DistanceMetric, error) {
	switch m := DistanceMetric(s); m {
	case DistanceL2, DistanceCosine, DistanceL1:
		return m, nil
	}
	return "", &EmbeddingError{Message: "unknown distance metric " + s}
}
