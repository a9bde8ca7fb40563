// catalog-info — печатает сводку по загруженному каталогу.
//
// Полезно для проверки источника (file/sqlite/s3) и полноты атрибутов
// перед запуском стилиста.
//
// Использование:
//
//	catalog-info
//	catalog-info -config config.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sort"

	"github.com/ilkoid/vibe-stylist/pkg/catalog"
	"github.com/ilkoid/vibe-stylist/pkg/config"
	"github.com/ilkoid/vibe-stylist/pkg/utils"
	"github.com/ilkoid/vibe-stylist/pkg/vocab"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "путь к конфигурации")
	flag.Parse()

	if err := utils.InitLogger(); err != nil {
		log.Printf("Warning: failed to init logger: %v", err)
	}
	defer utils.Close()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := catalog.Load(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	source := cfg.Catalog.Source
	if source == "" {
		source = "file"
	}
	fmt.Printf("📦 Catalog: %d items (source: %s)\n\n", store.Len(), source)

	// Количество товаров по категориям
	counts := make(map[string]int)
	var categories []string
	for _, it := range store.Items() {
		for _, c := range it.Attr(vocab.FieldCategory).Values() {
			if counts[c] == 0 {
				categories = append(categories, c)
			}
			counts[c]++
		}
	}
	sort.Strings(categories)
	fmt.Println("Categories:")
	for _, c := range categories {
		fmt.Printf("  %-16s %d\n", c, counts[c])
	}
	fmt.Println()

	// Заполненность и разнообразие по каждому полю
	fmt.Println("Field coverage:")
	for _, field := range vocab.Fields() {
		filled := 0
		distinct := make(map[string]struct{})
		for _, it := range store.Items() {
			attr := it.Attr(field)
			if attr.IsAbsent() {
				continue
			}
			filled++
			for _, v := range attr.Values() {
				distinct[v] = struct{}{}
			}
		}
		fmt.Printf("  %-16s %4d/%d items, %d distinct values\n",
			field, filled, store.Len(), len(distinct))
	}

	// Значения каталога вне закрытых словарей
	v := vocab.Default()
	var novel int
	for _, it := range store.Items() {
		for field, attr := range it.Attrs {
			for _, val := range attr.Values() {
				if _, known := v.Canonical(field, val); !known {
					novel++
					v.Extend(field, val)
				}
			}
		}
	}
	fmt.Printf("\n🔤 Values outside the built-in vocabulary: %d (exact-match only)\n", novel)

	var minPrice, maxPrice, sum float64
	for i, it := range store.Items() {
		if i == 0 || it.Price < minPrice {
			minPrice = it.Price
		}
		if it.Price > maxPrice {
			maxPrice = it.Price
		}
		sum += it.Price
	}
	if store.Len() > 0 {
		fmt.Printf("💰 Price: min $%.2f, max $%.2f, avg $%.2f\n", minPrice, maxPrice, sum/float64(store.Len()))
	}
}
