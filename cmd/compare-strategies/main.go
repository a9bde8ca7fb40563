// compare-strategies — прогоняет один запрос через все стратегии
// и печатает выдачу рядом для сравнения.
//
// Использование:
//
//	compare-strategies -query '{"fit": "relaxed", "fabric": ["linen"]}' -max 3
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ilkoid/vibe-stylist/internal/app"
	"github.com/ilkoid/vibe-stylist/pkg/match"
	"github.com/ilkoid/vibe-stylist/pkg/utils"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "путь к конфигурации")
	queryArg := flag.String("query", "", "JSON атрибутов или @файл")
	maxResults := flag.Int("max", 5, "сколько результатов на стратегию")
	flag.Parse()

	if *queryArg == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := utils.InitLogger(); err != nil {
		log.Printf("Warning: failed to init logger: %v", err)
	}
	defer utils.Close()

	ctx := context.Background()

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

	cmp, err := components.Recommender.CompareStrategies(ctx, q, *maxResults, &match.Options{Budget: budget})
	if err != nil {
		log.Fatalf("Comparison failed: %v", err)
	}

	for _, strategy := range match.AllStrategies() {
		if reason, unavailable := cmp.Unavailable[strategy]; unavailable {
			fmt.Printf("❌ %s: %s\n\n", strategy, reason)
			continue
		}
		rec, ok := cmp.PerStrategy[strategy]
		if !ok {
			continue
		}

		fmt.Printf("✅ %s", strategy)
		if rec.Degraded {
			fmt.Printf(" (degraded)")
		}
		fmt.Println()

		if len(rec.Results) == 0 {
			fmt.Println("   no matches")
		}
		for i, res := range rec.Results {
			fmt.Printf("   %2d. %-30s $%7.2f  score %.2f\n", i+1, res.Name, res.Price, res.Score)
		}
		fmt.Println()
	}
}
