// Package match — движок подбора товаров по извлечённым атрибутам.
//
// Ошибки следуют единому правилу: возвращаются вверх по стеку, никаких
// panic. Явные типы ошибок для обработки на верхних уровнях,
// поддержка errors.Is() для error wrapping.
//
// Таксономия:
//   - ErrInvalidQuery — ошибка вызывающего (неизвестная стратегия,
//     неположительный max_results); не влияет на другие запросы.
//   - ErrStrategyUnavailable — embedding-модель или внешний LLM сервис
//     не готовы/недоступны; facade в hybrid-режиме деградирует на
//     доступную ногу вместо аварии.
//   - ErrPartialScoring — часть товаров не удалось оценить (timeout
//     внешнего сервиса); они исключаются из ранжирования и
//     репортятся в метаданных ответа, отличимо от честного нуля.
package match

import (
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidQuery возвращается на некорректные параметры вызова.
var ErrInvalidQuery = fmt.Errorf("invalid query")

// ErrStrategyUnavailable возвращается когда стратегия не может работать.
var ErrStrategyUnavailable = fmt.Errorf("strategy unavailable")

// ErrPartialScoring сигнализирует что часть товаров осталась без оценки.
var ErrPartialScoring = fmt.Errorf("partial scoring")

// InvalidQueryError — ошибка вызывающего с причиной.
//
// Пример использования:
//
//	if maxResults <= 0 {
//	    return nil, &InvalidQueryError{Reason: "max_results must be positive"}
//	}
type InvalidQueryError struct {
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("invalid query: %s", e.Reason)
}

// Is проверяет что ошибка является ErrInvalidQuery.
func (e *InvalidQueryError) Is(target error) bool {
	return target == ErrInvalidQuery
}

// StrategyUnavailableError — стратегия недоступна, с контекстом причины.
//
// Поддерживает errors.Is(err, ErrStrategyUnavailable) и Unwrap()
// до исходной ошибки провайдера.
type StrategyUnavailableError struct {
	Strategy Strategy
	Reason   string
	Err      error
}

func (e *StrategyUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("strategy '%s' unavailable: %s: %v", e.Strategy, e.Reason, e.Err)
	}
	return fmt.Sprintf("strategy '%s' unavailable: %s", e.Strategy, e.Reason)
}

// Is проверяет что ошибка является ErrStrategyUnavailable.
func (e *StrategyUnavailableError) Is(target error) bool {
	return target == ErrStrategyUnavailable
}

func (e *StrategyUnavailableError) Unwrap() error { return e.Err }

// PartialScoringError — часть товаров не получила оценку.
//
// Unscored: id товара → причина. Это НЕ нулевой матч: товары с
// нулевым скором отличимы от товаров, которые не удалось оценить.
type PartialScoringError struct {
	Strategy Strategy
	Unscored map[string]string
}

func (e *PartialScoringError) Error() string {
	ids := make([]string, 0, len(e.Unscored))
	for id := range e.Unscored {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return fmt.Sprintf("strategy '%s': %d items left unscored: %s",
		e.Strategy, len(ids), strings.Join(ids, ", "))
}

// Is проверяет что ошибка является ErrPartialScoring.
func (e *PartialScoringError) Is(target error) bool {
	return target == ErrPartialScoring
}
