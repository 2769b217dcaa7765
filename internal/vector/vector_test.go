package vector

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/PauloHFS/gollama/internal/ollama"
)

type fakeEmbedder struct {
	vectors map[string][]float64
	got     ollama.EmbedRequest
}

func (f *fakeEmbedder) Embed(_ context.Context, req ollama.EmbedRequest) (*ollama.EmbedResponse, error) {
	f.got = req
	resp := &ollama.EmbedResponse{Model: "fake"}
	for _, in := range req.Input {
		if v, ok := f.vectors[in]; ok {
			resp.Embeddings = append(resp.Embeddings, v)
		}
	}
	return resp, nil
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cosine(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimilarity_DimensionMismatch(t *testing.T) {
	if _, err := Similarity(DistanceCosine, []float64{1}, []float64{1, 2}); err == nil {
		t.Error("expected error for mismatched dimensions")
	}
}

func TestRank(t *testing.T) {
	fake := &fakeEmbedder{vectors: map[string][]float64{
		"cat":    {1, 0},
		"kitten": {0.9, 0.1},
		"car":    {0, 1},
	}}
	svc := NewService(fake, "nomic-embed-text")

	results, err := svc.Rank(context.Background(), DistanceCosine, "cat", []string{"car", "kitten"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if fake.got.Model != "nomic-embed-text" {
		t.Errorf("expected model nomic-embed-text, got %s", fake.got.Model)
	}
	if len(fake.got.Input) != 3 {
		t.Errorf("expected one batched request with 3 inputs, got %v", fake.got.Input)
	}

	if len(results) != 2 || results[0].Text != "kitten" || results[1].Text != "car" {
		t.Fatalf("unexpected ranking %+v", results)
	}
	if results[0].Index != 1 {
		t.Errorf("expected kitten to keep its input index 1, got %d", results[0].Index)
	}
}

func TestEmbedBatch_CountMismatch(t *testing.T) {
	fake := &fakeEmbedder{vectors: map[string][]float64{"a": {1}}}
	svc := NewService(fake, "")

	_, err := svc.EmbedBatch(context.Background(), []string{"a", "b"})
	if err == nil {
		t.Fatal("expected error when the server returns fewer vectors")
	}
}

func TestEmbedBatch_NoInput(t *testing.T) {
	svc := NewService(&fakeEmbedder{}, "")

	_, err := svc.EmbedBatch(context.Background(), nil)
	if !errors.Is(err, ErrNoInput) {
		t.Errorf("expected ErrNoInput, got %v", err)
	}
}

func TestParseMetric(t *testing.T) {
	if m, err := ParseMetric("l2"); err != nil || m != DistanceL2 {
		t.Errorf("ParseMetric(l2) = %v, %v", m, err)
	}
	if _, err := ParseMetric("hamming"); err == nil {
		t.Error("expected error for unknown metric")
	}
}
