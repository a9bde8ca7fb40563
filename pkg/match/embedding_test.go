package match

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/ilkoid/vibe-stylist/pkg/catalog"
	"github.com/ilkoid/vibe-stylist/pkg/vocab"
)

// stubEmbedder возвращает заранее заданные векторы в порядке текстов.
type stubEmbedder struct {
	vectors [][]float32
	err     error
}

func (s *stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	if len(texts) != len(s.vectors) {
		return nil, fmt.Errorf("stub expects %d texts, got %d", len(s.vectors), len(texts))
	}
	return s.vectors, nil
}

func TestEmbeddingMatcherRanking(t *testing.T) {
	// запрос = [1,0]: A идентичен, B ортогонален
	emb := &stubEmbedder{vectors: [][]float32{
		{1, 0}, // запрос
		{1, 0}, // A
		{0, 1}, // B
	}}
	m := NewEmbeddingMatcher(emb, testMatchingConfig())

	q := Query{vocab.FieldFit: {{Value: "Relaxed"}}}
	items := []catalog.Item{
		testItem("A", map[vocab.Field]catalog.AttrValue{vocab.FieldFit: catalog.Single("Relaxed")}),
		testItem("B", nil),
	}

	batch, err := m.Match(context.Background(), q, items)
	if err != nil {
		t.Fatal(err)
	}
	if len(batch.Results) == 0 || batch.Results[0].ItemID != "A" {
		t.Fatalf("expected A ranked first, got %+v", batch.Results)
	}
	// cosine 1.0 * scale 2.0
	if got := batch.Results[0].Score; got != 2.0 {
		t.Errorf("expected scaled score 2.0, got %v", got)
	}
	// точное совпадение fit фиксируется информационно
	if len(batch.Results[0].MatchedFields) != 1 || batch.Results[0].MatchedFields[0] != vocab.FieldFit {
		t.Errorf("expected informational matched field fit, got %v", batch.Results[0].MatchedFields)
	}
}

func TestEmbeddingMatcherUnavailable(t *testing.T) {
	items := []catalog.Item{testItem("A", nil)}
	q := Query{vocab.FieldFit: {{Value: "Relaxed"}}}

	tests := []struct {
		name string
		m    *EmbeddingMatcher
	}{
		{"nil embedder", NewEmbeddingMatcher(nil, testMatchingConfig())},
		{"backend failure", NewEmbeddingMatcher(&stubEmbedder{err: errors.New("boom")}, testMatchingConfig())},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.m.Match(context.Background(), q, items)
			if !errors.Is(err, ErrStrategyUnavailable) {
				t.Errorf("expected ErrStrategyUnavailable, got %v", err)
			}
		})
	}
}

func TestEmbeddingMatcherEmptyQuery(t *testing.T) {
	m := NewEmbeddingMatcher(&stubEmbedder{}, testMatchingConfig())
	batch, err := m.Match(context.Background(), Query{}, []catalog.Item{testItem("A", nil)})
	if err != nil {
		t.Fatal(err)
	}
	if len(batch.Results) != 0 {
		t.Errorf("empty query must return no results, got %d", len(batch.Results))
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cosineSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}
