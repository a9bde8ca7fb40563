// Форматирование выдачи движка для лога диалога.

package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/ilkoid/vibe-stylist/pkg/match"
)

// reasoningWidth — ширина переноса для длинных обоснований.
const reasoningWidth = 76

// renderRecommendation форматирует ответ движка в текст лога.
func renderRecommendation(rec *match.Recommendation) string {
	var b strings.Builder

	if len(rec.Results) == 0 {
		b.WriteString(systemMsgStyle("STYLIST: ") + "nothing in the catalog matches that vibe, try relaxing the attributes")
		return b.String()
	}

	b.WriteString(systemMsgStyle(fmt.Sprintf("STYLIST [%s]:", rec.Strategy)))
	if rec.Degraded {
		b.WriteString("\n" + dimStyle(wordwrap.String("note: "+rec.DegradedReason+", ranked by rules only", reasoningWidth)))
	}

	for i, res := range rec.Results {
		b.WriteString(fmt.Sprintf("\n%2d. %s ($%.2f) %s",
			i+1, res.Name, res.Price, scoreStyle(fmt.Sprintf("score %.2f", res.Score))))
		if len(res.MatchedFields) > 0 {
			fields := make([]string, len(res.MatchedFields))
			for j, f := range res.MatchedFields {
				fields[j] = string(f)
			}
			b.WriteString("\n    " + dimStyle("matched: "+strings.Join(fields, ", ")))
		}
		if res.Reasoning != "" {
			wrapped := wordwrap.String(res.Reasoning, reasoningWidth)
			b.WriteString("\n    " + dimStyle(strings.ReplaceAll(wrapped, "\n", "\n    ")))
		}
	}

	if len(rec.Unscored) > 0 {
		ids := make([]string, 0, len(rec.Unscored))
		for id := range rec.Unscored {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		b.WriteString("\n" + dimStyle(fmt.Sprintf("unscored (%d): %s", len(ids), strings.Join(ids, ", "))))
	}

	return b.String()
}

// renderComparison форматирует сравнение стратегий.
func renderComparison(cmp *match.Comparison) string {
	var b strings.Builder
	b.WriteString(systemMsgStyle("STYLIST [compare]:"))

	for _, strategy := range match.AllStrategies() {
		if reason, unavailable := cmp.Unavailable[strategy]; unavailable {
			b.WriteString(fmt.Sprintf("\n%s: %s", strategy, dimStyle(wordwrap.String(reason, reasoningWidth))))
			continue
		}
		rec, ok := cmp.PerStrategy[strategy]
		if !ok {
			continue
		}

		b.WriteString(fmt.Sprintf("\n%s:", strategy))
		if len(rec.Results) == 0 {
			b.WriteString(" " + dimStyle("no matches"))
			continue
		}
		for i, res := range rec.Results {
			b.WriteString(fmt.Sprintf("\n  %2d. %s %s",
				i+1, res.Name, scoreStyle(fmt.Sprintf("%.2f", res.Score))))
		}
	}

	return b.String()
}
