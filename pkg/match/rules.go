package match

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ilkoid/vibe-stylist/pkg/catalog"
	"github.com/ilkoid/vibe-stylist/pkg/config"
	"github.com/ilkoid/vibe-stylist/pkg/vocab"
)

// defaultWeights — дефолтные веса полей. Иллюстративные значения,
// переопределяются секцией matching.weights конфига.
var defaultWeights = map[vocab.Field]float64{
	vocab.FieldCategory:     1.0,
	vocab.FieldFit:          1.0,
	vocab.FieldFabric:       0.9,
	vocab.FieldColorOrPrint: 0.8,
	vocab.FieldOccasion:     0.7,
	vocab.FieldSleeveLength: 0.6,
	vocab.FieldNeckline:     0.5,
	vocab.FieldLength:       0.5,
}

// RuleMatcher — rule-based стратегия: взвешенный пер-поле скоринг
// с точным (без учёта регистра) и fuzzy (через таблицу синонимов)
// сравнением значений.
type RuleMatcher struct {
	vocab       *vocab.Vocabulary
	weights     map[vocab.Field]float64
	baseline    float64 // Вес полей без явного веса
	fuzzyFactor float64 // Множитель fuzzy-совпадения, < 1.0
	workers     int
}

// NewRuleMatcher собирает матчер из словаря и конфигурации.
//
// Конфиг накладывается поверх дефолтных весов: не перечисленные
// в config.yaml поля сохраняют дефолт.
func NewRuleMatcher(v *vocab.Vocabulary, cfg config.MatchingConfig) *RuleMatcher {
	weights := make(map[vocab.Field]float64, len(defaultWeights))
	for f, w := range defaultWeights {
		weights[f] = w
	}
	for name, w := range cfg.Weights {
		if field, ok := vocab.ParseField(name); ok {
			weights[field] = w
		}
		// Неизвестное имя поля в конфиге игнорируем — схема полей закрыта
	}

	return &RuleMatcher{
		vocab:       v,
		weights:     weights,
		baseline:    cfg.BaselineWeight,
		fuzzyFactor: cfg.FuzzyFactor,
		workers:     cfg.Workers,
	}
}

// Strategy возвращает тег стратегии.
func (m *RuleMatcher) Strategy() Strategy { return StrategyRuleBased }

// weight возвращает вес поля (baseline для полей без явного веса).
func (m *RuleMatcher) weight(f vocab.Field) float64 {
	if w, ok := m.weights[f]; ok {
		return w
	}
	return m.baseline
}

// fieldMatch — исход сравнения одного поля.
type fieldMatch struct {
	matched    bool
	fuzzy      bool
	queryValue string // Значение запроса, которое совпало
	itemValue  string // Значение товара, которое совпало
	canonical  string // Каноническая форма при fuzzy-совпадении
	confidence float64
}

// matchField сравнивает значения поля запроса со значениями товара.
//
// OR-семантика с обеих сторон: совпадение засчитывается, если ЛЮБОЕ
// значение запроса матчится с ЛЮБЫМ значением товара. Сначала ищем
// точное совпадение (без учёта регистра), потом fuzzy через
// канонизацию синонимов. Точное совпадение всегда приоритетнее.
func (m *RuleMatcher) matchField(f vocab.Field, qvals []QueryValue, itemVals []string) fieldMatch {
	best := fieldMatch{}

	for _, qv := range qvals {
		conf := qv.Confidence
		if conf <= 0 {
			conf = 1.0 // Confidence не задан — полный вес
		}

		for _, iv := range itemVals {
			if strings.EqualFold(strings.TrimSpace(qv.Value), strings.TrimSpace(iv)) {
				// Точное совпадение: берём лучшее по confidence
				if !best.matched || best.fuzzy || conf > best.confidence {
					best = fieldMatch{
						matched:    true,
						fuzzy:      false,
						queryValue: qv.Value,
						itemValue:  iv,
						confidence: conf,
					}
				}
			}
		}
	}
	if best.matched {
		return best
	}

	// Fuzzy: канонизируем обе стороны через таблицу синонимов.
	// Расширенные (не из закрытого словаря) значения сюда не попадают —
	// для них Canonical возвращает false.
	for _, qv := range qvals {
		conf := qv.Confidence
		if conf <= 0 {
			conf = 1.0
		}

		qCanon, ok := m.vocab.Canonical(f, qv.Value)
		if !ok {
			continue
		}
		for _, iv := range itemVals {
			iCanon, ok := m.vocab.Canonical(f, iv)
			if !ok || qCanon != iCanon {
				continue
			}
			if !best.matched || conf > best.confidence {
				best = fieldMatch{
					matched:    true,
					fuzzy:      true,
					queryValue: qv.Value,
					itemValue:  iv,
					canonical:  qCanon,
					confidence: conf,
				}
			}
		}
	}

	return best
}

// Score оценивает один товар против запроса.
//
// Итоговый скор — сумма вкладов полей: weight * factor * confidence,
// где factor = 1.0 для точного совпадения и fuzzyFactor для fuzzy.
// Добавление корректного совпадения никогда не уменьшает скор.
// Несовпадение по category обнуляет товар целиком.
func (m *RuleMatcher) Score(q Query, item catalog.Item) Result {
	result := Result{
		ItemID:      item.ID,
		Name:        item.Name,
		Price:       item.Price,
		FieldScores: make(map[vocab.Field]float64),
		Strategy:    StrategyRuleBased,
	}

	var reasons []string

	for _, field := range vocab.Fields() {
		qvals := q.fieldValues(field)
		if len(qvals) == 0 {
			continue // Поле не ограничено запросом
		}

		attr := item.Attr(field)
		fm := m.matchField(field, qvals, attr.Values())

		if !fm.matched {
			// Category — жёсткий фильтр: запрос хочет "dress",
			// а товар "pants" — остальные поля не важны
			if field == vocab.FieldCategory {
				return Result{
					ItemID:      item.ID,
					Name:        item.Name,
					Price:       item.Price,
					FieldScores: map[vocab.Field]float64{},
					Reasoning:   fmt.Sprintf("category mismatch: wanted %s", joinQueryValues(qvals)),
					Strategy:    StrategyRuleBased,
				}
			}
			continue
		}

		contribution := m.weight(field) * fm.confidence
		if fm.fuzzy {
			contribution *= m.fuzzyFactor
			reasons = append(reasons, fmt.Sprintf("%s: fuzzy match '%s' → '%s'", field, fm.queryValue, fm.canonical))
		} else {
			reasons = append(reasons, fmt.Sprintf("%s: exact match on '%s'", field, fm.itemValue))
		}

		result.Score += contribution
		result.FieldScores[field] = contribution
		result.MatchedFields = append(result.MatchedFields, field)
	}

	if len(reasons) > 0 {
		result.Reasoning = strings.Join(reasons, "; ")
	} else {
		result.Reasoning = "no attribute matches"
	}

	return result
}

// Match оценивает батч товаров параллельно.
//
// Скоринг товаров независим; порядок итогового списка не зависит от
// порядка завершения горутин — сортируем явно после сбора всех оценок.
func (m *RuleMatcher) Match(ctx context.Context, q Query, items []catalog.Item) (Batch, error) {
	batch := Batch{Strategy: StrategyRuleBased}

	// Пустой запрос: все товары дают 0 — пустой список, не ошибка
	if q.IsEmpty() {
		return batch, nil
	}

	scored := make([]Result, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i := range items {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scored[i] = m.Score(q, items[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Batch{}, err
	}

	// Нулевой скор — честный не-матч, в ранжирование не попадает
	for _, r := range scored {
		if r.Score > 0 {
			batch.Results = append(batch.Results, r)
		}
	}

	// scored идёт в порядке каталога, stable сортировка сохраняет
	// этот порядок для равных скоров
	sort.SliceStable(batch.Results, func(i, j int) bool {
		return batch.Results[i].Score > batch.Results[j].Score
	})

	return batch, nil
}

func joinQueryValues(qvals []QueryValue) string {
	strs := make([]string, len(qvals))
	for i, v := range qvals {
		strs[i] = v.Value
	}
	return strings.Join(strs, ", ")
}
