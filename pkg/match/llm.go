package match

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/ilkoid/vibe-stylist/pkg/catalog"
	"github.com/ilkoid/vibe-stylist/pkg/config"
	"github.com/ilkoid/vibe-stylist/pkg/llm"
	"github.com/ilkoid/vibe-stylist/pkg/utils"
)

const llmScoringSystemPrompt = `You are a fashion stylist scoring how well a clothing item matches a customer's style request.

Compare the requested attributes with the item attributes and reply with a JSON object:
  {"score": <number between 0.0 and 1.0>, "reasoning": "<one or two short sentences>"}

Score 1.0 means a perfect match on every requested attribute, 0.0 means nothing matches. Reply with the JSON object only.`

// LLMMatcher — стратегия, делегирующая оценку внешнему генеративному
// сервису. Сервис недетерминирован и может быть медленным: вызовы
// идут через rate limiter и с пер-товарным timeout. Частичный результат
// (часть товаров оценена) — допустимый деградированный исход,
// неоценённые товары репортятся, а не выбрасываются молча.
type LLMMatcher struct {
	provider      llm.Provider
	limiter       *rate.Limiter
	timeout       time.Duration
	maxCandidates int
	workers       int
}

// NewLLMMatcher собирает матчер из chat-провайдера и конфигурации.
func NewLLMMatcher(p llm.Provider, cfg config.MatchingConfig) *LLMMatcher {
	timeout, err := time.ParseDuration(cfg.LLM.Timeout)
	if err != nil || timeout <= 0 {
		timeout = 30 * time.Second
	}

	// rate_limit задаётся в запросах в минуту
	limit := rate.Limit(float64(cfg.LLM.RateLimit) / 60.0)

	return &LLMMatcher{
		provider:      p,
		limiter:       rate.NewLimiter(limit, cfg.LLM.BurstLimit),
		timeout:       timeout,
		maxCandidates: cfg.LLM.MaxCandidates,
		workers:       cfg.Workers,
	}
}

// Strategy возвращает тег стратегии.
func (m *LLMMatcher) Strategy() Strategy { return StrategyLLMBased }

// judgment — структурированный ответ внешнего сервиса.
type judgment struct {
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
}

// Match оценивает товары внешним сервисом.
//
// Отсутствие провайдера (нет credentials) — StrategyUnavailableError,
// не авария. Ошибка/timeout на отдельном товаре исключает его из
// ранжирования и попадает в Batch.Unscored; один зависший вызов не
// блокирует скоринг остальных товаров.
func (m *LLMMatcher) Match(ctx context.Context, q Query, items []catalog.Item) (Batch, error) {
	batch := Batch{Strategy: StrategyLLMBased}

	if q.IsEmpty() {
		return batch, nil
	}
	if m.provider == nil {
		return Batch{}, &StrategyUnavailableError{
			Strategy: StrategyLLMBased,
			Reason:   "llm provider is not configured",
		}
	}

	// Внешний вызов на каждый товар — ограничиваем кандидатов
	if m.maxCandidates > 0 && len(items) > m.maxCandidates {
		items = items[:m.maxCandidates]
	}
	if len(items) == 0 {
		return batch, nil
	}

	queryText := QueryText(q)

	var mu sync.Mutex
	scored := make([]Result, len(items))
	ok := make([]bool, len(items))
	unscored := make(map[string]string)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i := range items {
		g.Go(func() error {
			item := items[i]

			if err := m.limiter.Wait(gctx); err != nil {
				// Контекст отменён целиком — прекращаем батч
				return err
			}

			res, err := m.scoreItem(gctx, q, queryText, item)
			if err != nil {
				utils.Warn("LLM scoring failed for item",
					"item_id", item.ID,
					"error", err)
				mu.Lock()
				unscored[item.ID] = err.Error()
				mu.Unlock()
				return nil // Частичный результат лучше аварии батча
			}

			scored[i] = res
			ok[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Batch{}, err
	}

	for i := range scored {
		if ok[i] {
			batch.Results = append(batch.Results, scored[i])
		}
	}
	if len(unscored) > 0 {
		batch.Unscored = unscored
	}

	// Все товары без оценки — сервис фактически недоступен
	if len(batch.Results) == 0 && len(unscored) > 0 {
		return Batch{}, &StrategyUnavailableError{
			Strategy: StrategyLLMBased,
			Reason:   fmt.Sprintf("all %d scoring calls failed", len(unscored)),
		}
	}

	sort.SliceStable(batch.Results, func(i, j int) bool {
		return batch.Results[i].Score > batch.Results[j].Score
	})

	return batch, nil
}

// scoreItem выполняет один внешний вызов с пер-товарным timeout.
func (m *LLMMatcher) scoreItem(ctx context.Context, q Query, queryText string, item catalog.Item) (Result, error) {
	itemCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	userPrompt := fmt.Sprintf("Customer request:\n%s\n\nCatalog item:\n%s", queryText, ItemText(item))

	raw, err := m.provider.Chat(itemCtx, llm.ChatRequest{
		Format: llm.FormatJSON,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: llmScoringSystemPrompt},
			{Role: llm.RoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return Result{}, fmt.Errorf("llm call failed: %w", err)
	}

	var j judgment
	if err := json.Unmarshal([]byte(extractJSON(raw)), &j); err != nil {
		return Result{}, fmt.Errorf("cannot parse llm judgment: %w", err)
	}

	// Скор обязан лежать в [0,1], модель иногда выходит за рамки
	if j.Score < 0 {
		j.Score = 0
	}
	if j.Score > 1 {
		j.Score = 1
	}

	return Result{
		ItemID:        item.ID,
		Name:          item.Name,
		Price:         item.Price,
		Score:         j.Score,
		MatchedFields: exactMatchedFields(q, item), // информационно, скор от модели
		Reasoning:     j.Reasoning,
		Strategy:      StrategyLLMBased,
	}, nil
}

// extractJSON достаёт JSON объект из ответа модели.
// Модели любят оборачивать JSON в markdown-ограждения.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
