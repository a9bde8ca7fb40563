// recommend — одноразовый запрос к движку подбора.
//
// Использование:
//
//	recommend -query '{"fit": "relaxed", "fabric": ["linen"]}'
//	recommend -config config.yaml -strategy hybrid -max 3 -category dresses -query @query.json
//
// Запрос — JSON объект извлечённых атрибутов; "@file" читает его из файла.
// budget_min/budget_max внутри запроса становятся ценовым окном.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/ilkoid/vibe-stylist/internal/app"
	"github.com/ilkoid/vibe-stylist/pkg/match"
	"github.com/ilkoid/vibe-stylist/pkg/utils"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "путь к конфигурации")
	queryArg := flag.String("query", "", "JSON атрибутов или @файл")
	strategyArg := flag.String("strategy", "rule_based", "rule_based | embedding_based | llm_based | hybrid")
	maxResults := flag.Int("max", 5, "сколько результатов вернуть")
	category := flag.String("category", "", "фильтр категории")
	explain := flag.Bool("explain", false, "добавить развёрнутое обоснование топ-результата")
	flag.Parse()

	if *queryArg == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := utils.InitLogger(); err != nil {
		log.Printf("Warning: failed to init logger: %v", err)
	}
	defer utils.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer utils.SetupGracefulShutdown(cancel)()

	components, err := app.Bootstrap(ctx, *cfgPath)
	if err != nil {
		log.Fatalf("Failed to bootstrap: %v", err)
	}

	raw := []byte(*queryArg)
	if strings.HasPrefix(*queryArg, "@") {
		raw, err = os.ReadFile(strings.TrimPrefix(*queryArg, "@"))
		if err != nil {
			log.Fatalf("Failed to read query file: %v", err)
		}
	}

	q, budget, err := match.ParseQueryJSON(raw)
	if err != nil {
		log.Fatalf("Bad query: %v", err)
	}

	rec, err := components.Recommender.FindRecommendations(ctx, q, match.Strategy(*strategyArg), *maxResults, &match.Options{
		Category: *category,
		Budget:   budget,
	})
	if err != nil {
		log.Fatalf("Recommendation failed: %v", err)
	}

	fmt.Printf("🔍 Strategy: %s", rec.Strategy)
	if rec.Degraded {
		fmt.Printf(" (degraded: %s)", rec.DegradedReason)
	}
	fmt.Println()

	if len(rec.Results) == 0 {
		fmt.Println("😕 No matches. Try relaxing the attributes or the budget.")
		return
	}

	for i, res := range rec.Results {
		fmt.Printf("%2d. %s  $%.2f  score %.2f\n", i+1, res.Name, res.Price, res.Score)
		if len(res.MatchedFields) > 0 {
			fields := make([]string, len(res.MatchedFields))
			for j, f := range res.MatchedFields {
				fields[j] = string(f)
			}
			fmt.Printf("    matched: %s\n", strings.Join(fields, ", "))
		}
		if res.Reasoning != "" {
			fmt.Printf("    %s\n", res.Reasoning)
		}
	}

	if len(rec.Unscored) > 0 {
		partial := &match.PartialScoringError{Strategy: rec.Strategy, Unscored: rec.Unscored}
		fmt.Printf("⚠️  %v\n", partial)
		ids := make([]string, 0, len(rec.Unscored))
		for id := range rec.Unscored {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			utils.Warn("Item left unscored", "item_id", id, "reason", rec.Unscored[id])
		}
	}

	if *explain {
		fmt.Printf("\n💬 %s\n", components.Recommender.Explain(ctx, rec.Results[0]))
	}
}
