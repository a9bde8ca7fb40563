package ui

import (
	"fmt"
	"strings"

	"github.com/ilkoid/vibe-stylist/pkg/catalog"
	"github.com/ilkoid/vibe-stylist/pkg/match"
	"github.com/ilkoid/vibe-stylist/pkg/vocab"
)

// Session — состояние диалога стилиста между запросами.
//
// Мутируется только из горутины Bubble Tea Update (однопоточно),
// синхронизация не нужна.
type Session struct {
	Recommender *match.Recommender
	Store       *catalog.Store
	Vocab       *vocab.Vocabulary

	Strategy   match.Strategy
	MaxResults int
	Options    match.Options

	// Последняя выдача — для команды explain <n>
	LastResults []match.Result
}

// NewSession создаёт сессию с дефолтными настройками выдачи.
func NewSession(r *match.Recommender, store *catalog.Store, v *vocab.Vocabulary) *Session {
	return &Session{
		Recommender: r,
		Store:       store,
		Vocab:       v,
		Strategy:    match.StrategyRuleBased,
		MaxResults:  5,
	}
}

// ParseAttrInput разбирает строку атрибутов вида
//
//	"fit=relaxed; fabric=satin,silk; occasion=vacation"
//
// в Query. Имена полей валидируются по словарю, значения остаются
// сырыми (fuzzy-резолюция — дело матчера).
func ParseAttrInput(input string) (match.Query, error) {
	q := make(match.Query)

	for _, part := range strings.Split(input, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		key, rawVals, found := strings.Cut(part, "=")
		if !found {
			return nil, fmt.Errorf("expected field=value, got '%s'", part)
		}

		field, ok := vocab.ParseField(key)
		if !ok {
			return nil, fmt.Errorf("unknown field '%s' (known: %s)", strings.TrimSpace(key), knownFields())
		}

		var vals []match.QueryValue
		for _, v := range strings.Split(rawVals, ",") {
			v = strings.TrimSpace(v)
			if v != "" {
				vals = append(vals, match.QueryValue{Value: v})
			}
		}
		if len(vals) == 0 {
			return nil, fmt.Errorf("field '%s' has no values", field)
		}
		q[field] = vals
	}

	if len(q) == 0 {
		return nil, fmt.Errorf("no attributes given")
	}
	return q, nil
}

func knownFields() string {
	fields := vocab.Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
