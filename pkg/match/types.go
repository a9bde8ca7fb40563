package match

import (
	"context"
	"fmt"
	"strings"

	"github.com/ilkoid/vibe-stylist/pkg/catalog"
	"github.com/ilkoid/vibe-stylist/pkg/vocab"
)

// Strategy — стратегия подбора. Закрытый набор вариантов,
// известных на этапе сборки; диспетчеризация явным switch,
// а не реестром колбэков.
type Strategy string

const (
	StrategyRuleBased      Strategy = "rule_based"
	StrategyEmbeddingBased Strategy = "embedding_based"
	StrategyLLMBased       Strategy = "llm_based"
	StrategyHybrid         Strategy = "hybrid"
)

// AllStrategies возвращает все стратегии в фиксированном порядке.
func AllStrategies() []Strategy {
	return []Strategy{StrategyRuleBased, StrategyEmbeddingBased, StrategyLLMBased, StrategyHybrid}
}

// ParseStrategy валидирует имя стратегии.
//
// Неизвестное имя — ошибка вызывающего, никакого молчаливого дефолта.
func ParseStrategy(s string) (Strategy, error) {
	candidate := Strategy(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllStrategies() {
		if candidate == known {
			return known, nil
		}
	}
	return "", &InvalidQueryError{Reason: fmt.Sprintf("unknown strategy '%s' (want one of: rule_based, embedding_based, llm_based, hybrid)", s)}
}

// QueryValue — одно допустимое значение поля запроса.
//
// Confidence приходит от внешнего сервиса извлечения атрибутов;
// 0 означает "не задан" и трактуется как 1.0.
type QueryValue struct {
	Value      string
	Confidence float64
}

// Query — частично заданный набор атрибутов ("completion").
//
// Отсутствующие поля не накладывают ограничений. Несколько значений
// поля — OR-семантика: любое из них устраивает.
type Query map[vocab.Field][]QueryValue

// IsEmpty — true если запрос не накладывает ни одного ограничения.
func (q Query) IsEmpty() bool {
	for _, vals := range q {
		for _, v := range vals {
			if strings.TrimSpace(v.Value) != "" {
				return false
			}
		}
	}
	return true
}

// fieldValues возвращает непустые значения поля.
func (q Query) fieldValues(f vocab.Field) []QueryValue {
	var result []QueryValue
	for _, v := range q[f] {
		if strings.TrimSpace(v.Value) != "" {
			result = append(result, v)
		}
	}
	return result
}

// Result — результат оценки одного товара.
//
// MatchedFields — подмножество полей, присутствующих и в запросе,
// и у товара. FieldScores — вклад каждого поля (только rule-based).
type Result struct {
	ItemID        string
	Name          string
	Price         float64
	Score         float64
	MatchedFields []vocab.Field
	FieldScores   map[vocab.Field]float64
	Reasoning     string
	Strategy      Strategy
}

// Batch — ранжированный ответ одной стратегии.
//
// Results отсортированы по убыванию Score, ties — порядок каталога.
// Unscored (id → причина) отделяет "не удалось оценить" от честного
// нулевого матча.
type Batch struct {
	Strategy Strategy
	Results  []Result
	Unscored map[string]string
}

// Matcher — контракт стратегии подбора.
type Matcher interface {
	Strategy() Strategy
	// Match оценивает товары против запроса и возвращает ранжированный батч.
	Match(ctx context.Context, q Query, items []catalog.Item) (Batch, error)
}

// QueryText — текстовое представление запроса для embedding/LLM.
//
// Формат "field: v1, v2; field: v" — поля в каноническом порядке.
func QueryText(q Query) string {
	var parts []string
	for _, field := range vocab.Fields() {
		vals := q.fieldValues(field)
		if len(vals) == 0 {
			continue
		}
		strs := make([]string, len(vals))
		for i, v := range vals {
			strs[i] = v.Value
		}
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(strs, ", ")))
	}
	return strings.Join(parts, "; ")
}

// ItemText — текстовое представление товара.
//
// Имя добавляется в конец для дополнительного контекста.
func ItemText(it catalog.Item) string {
	var parts []string
	for _, field := range vocab.Fields() {
		attr := it.Attr(field)
		if attr.IsAbsent() {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", field, attr.String()))
	}
	if it.Name != "" {
		parts = append(parts, fmt.Sprintf("name: %s", it.Name))
	}
	return strings.Join(parts, "; ")
}

// exactMatchedFields — лёгкая детекция точных совпадений запроса и товара.
//
// Используется embedding/LLM стратегиями чтобы matched fields в ответе
// оставались человекочитаемыми. На скоринг не влияет.
func exactMatchedFields(q Query, it catalog.Item) []vocab.Field {
	var matched []vocab.Field
	for _, field := range vocab.Fields() {
		qvals := q.fieldValues(field)
		if len(qvals) == 0 {
			continue
		}
		attr := it.Attr(field)
		if attr.IsAbsent() {
			continue
		}
	outer:
		for _, qv := range qvals {
			for _, iv := range attr.Values() {
				if strings.EqualFold(strings.TrimSpace(qv.Value), strings.TrimSpace(iv)) {
					matched = append(matched, field)
					break outer
				}
			}
		}
	}
	return matched
}
