package match

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ilkoid/vibe-stylist/pkg/config"
)

// Leg — вклад одной стратегии в hybrid-комбинацию.
type Leg struct {
	Weight float64
	Batch  Batch
}

// HybridCombiner сводит ранжированные списки нескольких стратегий
// в один: нормализация скора внутри ноги, взвешенная сумма и бонус
// за консенсус (товар в top-K сразу у нескольких стратегий).
type HybridCombiner struct {
	agreementBonus float64
	agreementTopK  int
}

// NewHybridCombiner собирает combiner из конфигурации.
func NewHybridCombiner(cfg config.MatchingConfig) *HybridCombiner {
	return &HybridCombiner{
		agreementBonus: cfg.AgreementBonus,
		agreementTopK:  cfg.AgreementTopK,
	}
}

// Combine сводит ноги в единый ранжированный список.
//
// Алгоритм:
//  1. Скор каждой ноги нормализуется в [0,1] относительно максимума,
//     наблюдаемого этой ногой в данном вызове.
//  2. hybrid = Σ w_i * norm_i; веса перенормируются на доступные ноги
//     (выпавшая нога не перекашивает шкалу).
//  3. Товар в top-K как минимум двух ног получает agreement bonus.
//  4. Товар, отсутствующий в списке какой-то ноги, считается нулём
//     от неё, но не исключается.
//
// Tie-break — ранг товара в первой ноге (по соглашению rule-based).
func (c *HybridCombiner) Combine(legs []Leg) []Result {
	if len(legs) == 0 {
		return nil
	}

	// Перенормировка весов на фактически доступные ноги
	var totalWeight float64
	for _, leg := range legs {
		totalWeight += leg.Weight
	}
	if totalWeight == 0 {
		for i := range legs {
			legs[i].Weight = 1
		}
		totalWeight = float64(len(legs))
	}

	type itemState struct {
		result      Result // Метаданные из первой ноги, где товар встретился
		hybrid      float64
		topKCount   int
		primaryRank int // Ранг в первой ноге, для tie-break
		contribs    []string
	}
	states := make(map[string]*itemState)
	var order []string // Порядок первого появления — детерминизм обхода map

	for legIdx, leg := range legs {
		normWeight := leg.Weight / totalWeight

		var maxScore float64
		for _, r := range leg.Batch.Results {
			if r.Score > maxScore {
				maxScore = r.Score
			}
		}

		for rank, r := range leg.Batch.Results {
			st, seen := states[r.ItemID]
			if !seen {
				st = &itemState{result: r, primaryRank: int(^uint(0) >> 1)}
				states[r.ItemID] = st
				order = append(order, r.ItemID)
			}
			if legIdx == 0 {
				st.primaryRank = rank
			}

			var norm float64
			if maxScore > 0 {
				norm = r.Score / maxScore
			}
			st.hybrid += normWeight * norm
			st.contribs = append(st.contribs, fmt.Sprintf("%s=%.2f", r.Strategy, norm))

			if rank < c.agreementTopK {
				st.topKCount++
			}
		}
	}

	combined := make([]Result, 0, len(order))
	for _, id := range order {
		st := states[id]

		reasoning := fmt.Sprintf("hybrid: %s", strings.Join(st.contribs, ", "))
		if st.topKCount >= 2 {
			st.hybrid += c.agreementBonus
			reasoning += fmt.Sprintf("; agreement bonus +%.2f", c.agreementBonus)
		}

		r := st.result
		r.Score = st.hybrid
		r.Reasoning = reasoning
		r.Strategy = StrategyHybrid
		r.FieldScores = nil // Пер-поле вклады не переживают нормализацию
		combined = append(combined, r)
	}

	// Явная сортировка: скор по убыванию, tie-break — ранг первой ноги
	sort.SliceStable(combined, func(i, j int) bool {
		if combined[i].Score != combined[j].Score {
			return combined[i].Score > combined[j].Score
		}
		return states[combined[i].ItemID].primaryRank < states[combined[j].ItemID].primaryRank
	})

	return combined
}
