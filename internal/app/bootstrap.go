// Package app — сборка компонентов приложения из конфигурации.
//
// Общий код для всех точек входа: CLI утилиты и TUI собирают движок
// одинаково и отличаются только интерфейсом.
package app

import (
	"context"
	"fmt"

	"github.com/ilkoid/vibe-stylist/pkg/catalog"
	"github.com/ilkoid/vibe-stylist/pkg/config"
	"github.com/ilkoid/vibe-stylist/pkg/factory"
	"github.com/ilkoid/vibe-stylist/pkg/llm"
	"github.com/ilkoid/vibe-stylist/pkg/match"
	"github.com/ilkoid/vibe-stylist/pkg/utils"
	"github.com/ilkoid/vibe-stylist/pkg/vocab"
)

// Components — всё, что нужно точке входа.
type Components struct {
	Config      *config.AppConfig
	Store       *catalog.Store
	Vocab       *vocab.Vocabulary
	Recommender *match.Recommender

	// nil если соответствующая модель не сконфигурирована
	Provider llm.Provider
	Embedder llm.Embedder
}

// Bootstrap загружает конфиг, каталог и словарь, создаёт провайдеров
// и собирает движок подбора.
//
// Отсутствие chat/embedding модели в конфиге — не ошибка: стратегии,
// которым они нужны, будут недоступны, rule-based работает всегда.
func Bootstrap(ctx context.Context, cfgPath string) (*Components, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	store, err := catalog.Load(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	v := vocab.Default()
	if cfg.Vocab.OverlayPath != "" {
		if err := v.LoadOverlay(cfg.Vocab.OverlayPath); err != nil {
			return nil, fmt.Errorf("vocab overlay: %w", err)
		}
		utils.Info("Vocab overlay loaded", "path", cfg.Vocab.OverlayPath)
	}
	// Значения из каталога, отсутствующие в закрытых словарях,
	// регистрируются для точного матчинга
	store.ExtendVocabulary(v)

	c := &Components{Config: cfg, Store: store, Vocab: v}

	if modelDef, ok := cfg.GetChatModel(""); ok && modelDef.APIKey != "" {
		provider, err := factory.NewLLMProvider(modelDef)
		if err != nil {
			return nil, fmt.Errorf("chat provider: %w", err)
		}
		c.Provider = provider
		utils.Info("Chat provider ready", "provider", modelDef.Provider, "model", modelDef.ModelName)
	} else {
		utils.Warn("No chat model configured, llm_based strategy unavailable")
	}

	if modelDef, ok := cfg.GetEmbeddingModel(""); ok && modelDef.APIKey != "" {
		embedder, err := factory.NewEmbedder(modelDef)
		if err != nil {
			return nil, fmt.Errorf("embedding provider: %w", err)
		}
		c.Embedder = embedder
		utils.Info("Embedding provider ready", "provider", modelDef.Provider, "model", modelDef.ModelName)
	} else {
		utils.Warn("No embedding model configured, embedding_based strategy unavailable")
	}

	c.Recommender = match.NewRecommender(store, v, cfg.Matching, c.Embedder, c.Provider)
	return c, nil
}
