package match

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ilkoid/vibe-stylist/pkg/vocab"
)

// Budget — ценовое окно из budget_min/budget_max извлечённых атрибутов.
// Нулевое значение означает "не задано".
type Budget struct {
	Min float64
	Max float64
}

// ParseQueryJSON разбирает структурированный объект атрибутов
// на границе с внешним сервисом извлечения.
//
// Принимает три формы значения поля:
//
//	{"fit": "Relaxed"}
//	{"fabric": ["Satin", "Silk"]}
//	{"fit": [{"value": "Relaxed", "confidence": 0.9}]}
//
// Неизвестные поля игнорируются (не ошибка). budget_min/budget_max
// выносятся в Budget. Пустые строки трактуются как отсутствие ограничения.
func ParseQueryJSON(data []byte) (Query, Budget, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, Budget{}, &InvalidQueryError{Reason: fmt.Sprintf("malformed query json: %v", err)}
	}

	q := make(Query)
	var budget Budget

	for key, rawVal := range raw {
		keyLower := strings.ToLower(strings.TrimSpace(key))

		// Бюджет — не атрибут, а фильтр
		if keyLower == "budget_min" || keyLower == "budget_max" {
			amount, err := parseBudgetValue(rawVal)
			if err != nil {
				return nil, Budget{}, &InvalidQueryError{Reason: fmt.Sprintf("bad %s: %v", keyLower, err)}
			}
			if keyLower == "budget_min" {
				budget.Min = amount
			} else {
				budget.Max = amount
			}
			continue
		}

		field, ok := vocab.ParseField(keyLower)
		if !ok {
			continue // Неизвестное поле — игнорируем
		}

		vals, err := parseFieldValues(rawVal)
		if err != nil {
			return nil, Budget{}, &InvalidQueryError{Reason: fmt.Sprintf("bad value for field '%s': %v", field, err)}
		}
		if len(vals) > 0 {
			q[field] = vals
		}
	}

	return q, budget, nil
}

// parseFieldValues разбирает значение поля в любой из трёх форм.
func parseFieldValues(raw json.RawMessage) ([]QueryValue, error) {
	// Форма 1: одиночная строка
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return nil, nil
		}
		return []QueryValue{{Value: strings.TrimSpace(s)}}, nil
	}

	// Формы 2 и 3: массив строк или массив {value, confidence}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("expected string or array")
	}

	var result []QueryValue
	for _, item := range items {
		var str string
		if err := json.Unmarshal(item, &str); err == nil {
			if strings.TrimSpace(str) != "" {
				result = append(result, QueryValue{Value: strings.TrimSpace(str)})
			}
			continue
		}

		var obj struct {
			Value      string  `json:"value"`
			Confidence float64 `json:"confidence"`
		}
		if err := json.Unmarshal(item, &obj); err != nil {
			return nil, fmt.Errorf("array element must be string or {value, confidence}")
		}
		if strings.TrimSpace(obj.Value) != "" {
			result = append(result, QueryValue{
				Value:      strings.TrimSpace(obj.Value),
				Confidence: obj.Confidence,
			})
		}
	}
	return result, nil
}

// parseBudgetValue достаёт число из строки, числа или массива
// {value, confidence} (форма вывода сервиса извлечения).
func parseBudgetValue(raw json.RawMessage) (float64, error) {
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return num, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, nil
		}
		return strconv.ParseFloat(s, 64)
	}

	vals, err := parseFieldValues(raw)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, nil
	}
	return strconv.ParseFloat(vals[0].Value, 64)
}
