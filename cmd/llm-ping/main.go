// llm-ping — утилита для проверки доступности chat и embedding моделей.
//
// Использование:
//
//	llm-ping
//	llm-ping config.yaml
//
// Конфигурация:
//
//	Использует config.yaml из текущей директории
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilkoid/vibe-stylist/pkg/config"
	"github.com/ilkoid/vibe-stylist/pkg/factory"
	"github.com/ilkoid/vibe-stylist/pkg/llm"
)

func main() {
	// 1. Загружаем конфигурацию
	cfgPath := "config.yaml"
	if len(os.Args) > 1 {
		cfgPath = os.Args[1]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config from %s: %v", cfgPath, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	exitCode := 0

	// 2. Проверяем chat модель
	if modelDef, ok := cfg.GetChatModel(""); ok && modelDef.APIKey != "" {
		fmt.Printf("🔍 Testing chat model: %s (%s)\n", cfg.Models.DefaultChat, modelDef.ModelName)

		provider, err := factory.NewLLMProvider(modelDef)
		if err != nil {
			fmt.Printf("❌ Chat provider: %v\n", err)
			exitCode = 1
		} else {
			start := time.Now()
			reply, err := provider.Chat(ctx, llm.ChatRequest{
				MaxTokens: 20,
				Messages: []llm.Message{
					{Role: llm.RoleUser, Content: "Reply with the single word: pong"},
				},
			})
			if err != nil {
				fmt.Printf("❌ Chat ping failed: %v\n", err)
				exitCode = 1
			} else {
				fmt.Printf("✅ Chat OK in %v: %q\n", time.Since(start).Round(time.Millisecond), reply)
			}
		}
	} else {
		fmt.Println("⚠️  No chat model configured (models.default_chat), llm_based strategy will be unavailable")
	}

	// 3. Проверяем embedding модель
	if modelDef, ok := cfg.GetEmbeddingModel(""); ok && modelDef.APIKey != "" {
		fmt.Printf("🔍 Testing embedding model: %s (%s)\n", cfg.Models.DefaultEmbedding, modelDef.ModelName)

		embedder, err := factory.NewEmbedder(modelDef)
		if err != nil {
			fmt.Printf("❌ Embedding provider: %v\n", err)
			exitCode = 1
		} else {
			start := time.Now()
			vectors, err := embedder.Embed(ctx, []string{"fit: relaxed; fabric: linen"})
			if err != nil {
				fmt.Printf("❌ Embedding ping failed: %v\n", err)
				exitCode = 1
			} else {
				fmt.Printf("✅ Embeddings OK in %v: %d dims\n", time.Since(start).Round(time.Millisecond), len(vectors[0]))
			}
		}
	} else {
		fmt.Println("⚠️  No embedding model configured (models.default_embedding), embedding_based strategy will be unavailable")
	}

	os.Exit(exitCode)
}
