package match

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ilkoid/vibe-stylist/pkg/catalog"
	"github.com/ilkoid/vibe-stylist/pkg/config"
	"github.com/ilkoid/vibe-stylist/pkg/llm"
	"github.com/ilkoid/vibe-stylist/pkg/utils"
	"github.com/ilkoid/vibe-stylist/pkg/vocab"
)

// Options — опциональные фильтры запроса рекомендаций.
type Options struct {
	Category string // Фильтр категории ДО скоринга
	Budget   Budget // Ценовое окно, 0 = не задано
}

// Recommendation — ответ фасада.
type Recommendation struct {
	Strategy       Strategy
	Results        []Result
	Degraded       bool   // Hybrid работал не на всех ногах
	DegradedReason string
	Unscored       map[string]string // id → причина (не путать с нулевым матчем)
}

// Comparison — результат прогона всех стратегий для анализа.
type Comparison struct {
	PerStrategy map[Strategy]*Recommendation
	Unavailable map[Strategy]string // Стратегия → причина недоступности
}

// Recommender — верхнеуровневая точка входа движка подбора.
//
// Держит каталог, словарь и по экземпляру каждой стратегии.
// Провайдеры (embedding, LLM) создаются один раз на процесс и дальше
// используются только на чтение — конкурентные запросы безопасны.
type Recommender struct {
	store    *catalog.Store
	vocab    *vocab.Vocabulary
	cfg      config.MatchingConfig
	rule     *RuleMatcher
	embed    *EmbeddingMatcher
	llmMatch *LLMMatcher
	combiner *HybridCombiner
	explain  llm.Provider // Опционально: LLM-переформулировка объяснений
}

// NewRecommender собирает фасад.
//
// embedder и provider могут быть nil — соответствующие стратегии
// будут недоступны (StrategyUnavailableError), это не ошибка сборки.
func NewRecommender(store *catalog.Store, v *vocab.Vocabulary, cfg config.MatchingConfig, embedder llm.Embedder, provider llm.Provider) *Recommender {
	r := &Recommender{
		store:    store,
		vocab:    v,
		cfg:      cfg,
		rule:     NewRuleMatcher(v, cfg),
		combiner: NewHybridCombiner(cfg),
		explain:  provider,
	}
	if embedder != nil {
		r.embed = NewEmbeddingMatcher(embedder, cfg)
	}
	if provider != nil {
		r.llmMatch = NewLLMMatcher(provider, cfg)
	}
	return r
}

// FindRecommendations — основная операция: оценить каталог выбранной
// стратегией, отфильтровать и обрезать до maxResults.
//
// Фильтр категории и бюджета применяется ДО скоринга, чтобы не тратить
// бюджет maxResults на заведомо неподходящие товары. Пустой запрос —
// пустой список, не ошибка.
func (r *Recommender) FindRecommendations(ctx context.Context, q Query, strategy Strategy, maxResults int, opts *Options) (*Recommendation, error) {
	// Ошибки вызывающего проверяем до любой работы
	validated, err := ParseStrategy(string(strategy))
	if err != nil {
		return nil, err
	}
	if maxResults <= 0 {
		return nil, &InvalidQueryError{Reason: fmt.Sprintf("max_results must be positive, got %d", maxResults)}
	}

	rec := &Recommendation{Strategy: validated, Results: []Result{}}

	if q.IsEmpty() {
		return rec, nil
	}

	items := r.filterItems(opts)
	if len(items) == 0 {
		return rec, nil
	}

	utils.Debug("Finding recommendations",
		"strategy", validated,
		"candidates", len(items),
		"max_results", maxResults)

	switch validated {
	case StrategyRuleBased:
		batch, err := r.rule.Match(ctx, q, items)
		if err != nil {
			return nil, err
		}
		rec.Results = batch.Results

	case StrategyEmbeddingBased:
		batch, err := r.embedMatch(ctx, q, items)
		if err != nil {
			return nil, err
		}
		rec.Results = batch.Results

	case StrategyLLMBased:
		if r.llmMatch == nil {
			return nil, &StrategyUnavailableError{Strategy: StrategyLLMBased, Reason: "llm provider is not configured"}
		}
		batch, err := r.llmMatch.Match(ctx, q, items)
		if err != nil {
			return nil, err
		}
		rec.Results = batch.Results
		rec.Unscored = batch.Unscored

	case StrategyHybrid:
		if err := r.hybrid(ctx, q, items, rec); err != nil {
			return nil, err
		}
	}

	rec.Results = r.applyFloor(rec.Results)
	if len(rec.Results) > maxResults {
		rec.Results = rec.Results[:maxResults]
	}

	return rec, nil
}

// ForCategory — convenience-обёртка с фильтром категории.
func (r *Recommender) ForCategory(ctx context.Context, q Query, category string, strategy Strategy, maxResults int) (*Recommendation, error) {
	return r.FindRecommendations(ctx, q, strategy, maxResults, &Options{Category: category})
}

// CompareStrategies прогоняет все стратегии для одного запроса.
//
// Недоступная стратегия попадает в Unavailable с причиной — частично
// заполненное сравнение полезнее аварии.
func (r *Recommender) CompareStrategies(ctx context.Context, q Query, maxResults int, opts *Options) (*Comparison, error) {
	if maxResults <= 0 {
		return nil, &InvalidQueryError{Reason: fmt.Sprintf("max_results must be positive, got %d", maxResults)}
	}

	cmp := &Comparison{
		PerStrategy: make(map[Strategy]*Recommendation),
		Unavailable: make(map[Strategy]string),
	}

	for _, strategy := range AllStrategies() {
		rec, err := r.FindRecommendations(ctx, q, strategy, maxResults, opts)
		if err != nil {
			if errors.Is(err, ErrStrategyUnavailable) {
				cmp.Unavailable[strategy] = err.Error()
				continue
			}
			return nil, err
		}
		cmp.PerStrategy[strategy] = rec
	}

	return cmp, nil
}

// Explain строит развёрнутое обоснование рекомендации.
//
// Детерминированная формулировка из matched fields + reasoning;
// если настроен LLM провайдер — он переформулирует живее, при его
// отказе молча возвращаем детерминированный вариант.
func (r *Recommender) Explain(ctx context.Context, res Result) string {
	base := r.deterministicExplanation(res)

	if r.explain == nil {
		return base
	}

	styled, err := r.explain.Chat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "You are a fashion stylist. Rewrite the following recommendation justification as one enthusiastic, personal sentence. Reply with the sentence only."},
			{Role: llm.RoleUser, Content: base},
		},
	})
	if err != nil || strings.TrimSpace(styled) == "" {
		utils.Warn("Explain: llm rephrase failed, using fallback", "error", err)
		return base
	}
	return strings.TrimSpace(styled)
}

// deterministicExplanation — fallback-обоснование без внешних вызовов.
func (r *Recommender) deterministicExplanation(res Result) string {
	if len(res.MatchedFields) == 0 {
		return fmt.Sprintf("%s ($%.2f) is a close overall match for your vibe (score %.2f): %s",
			res.Name, res.Price, res.Score, res.Reasoning)
	}

	fields := make([]string, len(res.MatchedFields))
	for i, f := range res.MatchedFields {
		fields[i] = strings.ReplaceAll(string(f), "_", " ")
	}
	return fmt.Sprintf("%s ($%.2f) matches your vibe on %s (score %.2f): %s",
		res.Name, res.Price, strings.Join(fields, ", "), res.Score, res.Reasoning)
}

// embedMatch — embedding-стратегия с проверкой доступности.
func (r *Recommender) embedMatch(ctx context.Context, q Query, items []catalog.Item) (Batch, error) {
	if r.embed == nil {
		return Batch{}, &StrategyUnavailableError{Strategy: StrategyEmbeddingBased, Reason: "embedding model is not configured"}
	}
	return r.embed.Match(ctx, q, items)
}

// hybrid — rule-based + embedding с деградацией.
//
// Выпадение embedding-ноги (модель не сконфигурирована/недоступна)
// не валит запрос: остаёмся на rule-based ноге, перенормируем веса
// и помечаем ответ как деградированный.
func (r *Recommender) hybrid(ctx context.Context, q Query, items []catalog.Item, rec *Recommendation) error {
	ruleBatch, err := r.rule.Match(ctx, q, items)
	if err != nil {
		return err
	}

	legs := []Leg{{Weight: r.cfg.RuleWeight, Batch: ruleBatch}}

	embedBatch, err := r.embedMatch(ctx, q, items)
	switch {
	case err == nil:
		legs = append(legs, Leg{Weight: r.cfg.EmbedWeight, Batch: embedBatch})
	case errors.Is(err, ErrStrategyUnavailable):
		rec.Degraded = true
		rec.DegradedReason = err.Error()
		utils.Warn("Hybrid degraded to rule-based only", "reason", err.Error())
	default:
		return err
	}

	rec.Results = r.combiner.Combine(legs)
	return nil
}

// filterItems применяет фильтры категории и бюджета до скоринга.
func (r *Recommender) filterItems(opts *Options) []catalog.Item {
	items := r.store.Items()
	if opts == nil {
		return items
	}

	// Категорию резолвим через словарь ("dresses" → "dress")
	category := strings.TrimSpace(opts.Category)
	if canonical, ok := r.vocab.Canonical(vocab.FieldCategory, category); ok {
		category = canonical
	}

	var filtered []catalog.Item
	for _, it := range items {
		if category != "" && !itemInCategory(it, category) {
			continue
		}
		if opts.Budget.Min > 0 && it.Price < opts.Budget.Min {
			continue
		}
		if opts.Budget.Max > 0 && it.Price > opts.Budget.Max {
			continue
		}
		filtered = append(filtered, it)
	}
	return filtered
}

// applyFloor отсекает результаты ниже порога min_score.
func (r *Recommender) applyFloor(results []Result) []Result {
	if r.cfg.MinScore <= 0 {
		return results
	}
	filtered := results[:0:len(results)]
	for _, res := range results {
		if res.Score >= r.cfg.MinScore {
			filtered = append(filtered, res)
		}
	}
	return filtered
}

func itemInCategory(it catalog.Item, category string) bool {
	for _, v := range it.Attr(vocab.FieldCategory).Values() {
		if strings.EqualFold(v, category) {
			return true
		}
	}
	return false
}
