package vector

import (
	"context"
	"fmt"

	"github.com/PauloHFS/gollama/internal/ollama"
)

// Embedder is the subset of the Ollama client used here.
type Embedder interface {
	Embed(ctx context.Context, req ollama.EmbedRequest) (*ollama.EmbedResponse, error)
}

type Service struct {
	client Embedder
	model  string
}

// NewService returns a Service that embeds with model, or with the client's
// default model when model is empty.
func NewService(client Embedder, model string) *Service {
	return &Service{
		client: client,
		model:  model,
	}
}

func (s *Service) Embed(ctx context.Context, text string) ([]float64, error) {
	embeddings, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return embeddings[0], nil
}

// EmbedBatch embeds texts in one request and returns one vector per input, in
// input order.
func (s *Service) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, ErrNoInput
	}

	resp, err := s.client.Embed(ctx, ollama.EmbedRequest{
		Model: s.model,
		Input: texts,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Embeddings) == 0 {
		return nil, ErrNoEmbedding
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, &EmbeddingError{
			Message: fmt.Sprintf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings)),
		}
	}

	return resp.Embeddings, nil
}

// Rank embeds query and candidates in a single request and returns the
// candidates ordered from most to least similar under metric.
func (s *Service) Rank(ctx context.Context, metric DistanceMetric, query string, candidates []string) ([]SearchResult, error) {
	if len(candidates) == 0 {
		return nil, ErrNoInput
	}

	vectors, err := s.EmbedBatch(ctx, append([]string{query}, candidates...))
	if err != nil {
		return nil, err
	}

	docs := make([]Embedding, len(candidates))
	for i, text := range candidates {
		docs[i] = Embedding{Index: i, Text: text, Vector: vectors[i+1]}
	}

	return Search(metric, vectors[0], docs)
}

var (
	ErrNoEmbedding = &EmbeddingError{Message: "no embedding returned"}
	ErrNoInput     = &EmbeddingError{Message: "no input to embed"}
)

type EmbeddingError struct {
	Message string
}

func (e *EmbeddingError) Error() string {
	return e.Message
}
