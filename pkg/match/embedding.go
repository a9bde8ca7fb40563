package match

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/ilkoid/vibe-stylist/pkg/catalog"
	"github.com/ilkoid/vibe-stylist/pkg/config"
	"github.com/ilkoid/vibe-stylist/pkg/llm"
)

// EmbeddingMatcher — стратегия на векторной близости.
//
// Запрос и товар рендерятся в текст, кодируются общей embedding-моделью,
// скор — cosine similarity, умноженная на scale чтобы шкала была
// соизмерима с rule-based. Пер-поле весов здесь нет: стратегия ловит
// целостную стилевую связность вместо пер-атрибутной точности.
type EmbeddingMatcher struct {
	embedder llm.Embedder
	scale    float64
}

// NewEmbeddingMatcher собирает матчер из embedding-провайдера.
func NewEmbeddingMatcher(e llm.Embedder, cfg config.MatchingConfig) *EmbeddingMatcher {
	return &EmbeddingMatcher{
		embedder: e,
		scale:    cfg.EmbeddingScale,
	}
}

// Strategy возвращает тег стратегии.
func (m *EmbeddingMatcher) Strategy() Strategy { return StrategyEmbeddingBased }

// Match кодирует запрос и товары одним батчем и ранжирует по близости.
//
// Отказ embedding-провайдера — StrategyUnavailableError: facade или
// combiner деградируют на rule-based вместо аварии всего запроса.
func (m *EmbeddingMatcher) Match(ctx context.Context, q Query, items []catalog.Item) (Batch, error) {
	batch := Batch{Strategy: StrategyEmbeddingBased}

	if q.IsEmpty() {
		return batch, nil
	}
	if m.embedder == nil {
		return Batch{}, &StrategyUnavailableError{
			Strategy: StrategyEmbeddingBased,
			Reason:   "embedding model is not configured",
		}
	}
	if len(items) == 0 {
		return batch, nil
	}

	// Один батч: [запрос, товар1, товар2, ...]
	texts := make([]string, 0, len(items)+1)
	texts = append(texts, QueryText(q))
	for _, it := range items {
		texts = append(texts, ItemText(it))
	}

	vectors, err := m.embedder.Embed(ctx, texts)
	if err != nil {
		return Batch{}, &StrategyUnavailableError{
			Strategy: StrategyEmbeddingBased,
			Reason:   "embedding request failed",
			Err:      err,
		}
	}
	if len(vectors) != len(texts) {
		return Batch{}, &StrategyUnavailableError{
			Strategy: StrategyEmbeddingBased,
			Reason:   fmt.Sprintf("embedder returned %d vectors for %d texts", len(vectors), len(texts)),
		}
	}

	queryVec := vectors[0]
	for i, it := range items {
		similarity := cosineSimilarity(queryVec, vectors[i+1])
		score := similarity * m.scale
		if score < 0 {
			score = 0 // match_score неотрицателен по контракту
		}

		batch.Results = append(batch.Results, Result{
			ItemID: it.ID,
			Name:   it.Name,
			Price:  it.Price,
			Score:  score,
			// Информационно, на скоринг не влияет
			MatchedFields: exactMatchedFields(q, it),
			Reasoning:     fmt.Sprintf("embedding similarity: %.3f (semantic match on overall style attributes)", similarity),
			Strategy:      StrategyEmbeddingBased,
		})
	}

	// Вход в порядке каталога → stable сортировка даёт каталожный tie-break
	sort.SliceStable(batch.Results, func(i, j int) bool {
		return batch.Results[i].Score > batch.Results[j].Score
	})

	return batch, nil
}

// cosineSimilarity — косинусная близость двух векторов.
// Нулевые и разноразмерные векторы дают 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
