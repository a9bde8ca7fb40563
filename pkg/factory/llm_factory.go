package factory

import (
	"fmt"

	"github.com/ilkoid/vibe-stylist/pkg/config"
	"github.com/ilkoid/vibe-stylist/pkg/llm"
	"github.com/ilkoid/vibe-stylist/pkg/llm/openai"
)

// NewLLMProvider создает chat-провайдера на основе конфигурации модели
func NewLLMProvider(modelDef config.ModelDef) (llm.Provider, error) {
	switch modelDef.Provider {
	case "zai", "openai", "deepseek":
		return openai.NewClient(modelDef), nil

	default:
		return nil, fmt.Errorf("unknown provider type: %s", modelDef.Provider)
	}
}

// NewEmbedder создает embedding-провайдера на основе конфигурации модели
func NewEmbedder(modelDef config.ModelDef) (llm.Embedder, error) {
	switch modelDef.Provider {
	case "zai", "openai", "deepseek":
		return openai.NewEmbeddingClient(modelDef), nil

	default:
		return nil, fmt.Errorf("unknown embedding provider type: %s", modelDef.Provider)
	}
}
