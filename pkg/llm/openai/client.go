// Package openai реализует адаптеры llm.Provider и llm.Embedder
// для OpenAI-совместимых API.
//
// Работает с любым провайдером, понимающим протокол OpenAI
// (custom BaseURL: Zai, DeepSeek и т.д.).
package openai

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ilkoid/vibe-stylist/pkg/config"
	"github.com/ilkoid/vibe-stylist/pkg/llm"
	"github.com/ilkoid/vibe-stylist/pkg/utils"
)

// Client реализует интерфейс llm.Provider для OpenAI-совместимых API.
type Client struct {
	api         *openai.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewClient создает OpenAI клиент на основе конфигурации модели.
//
// Принимает ModelDef напрямую для упрощения создания клиентов через factory.
// Все настройки из конфигурации, никакого хардкода.
func NewClient(modelDef config.ModelDef) *Client {
	// Поддержка custom BaseURL для non-OpenAI провайдеров
	cfg := openai.DefaultConfig(modelDef.APIKey)
	if modelDef.BaseURL != "" {
		cfg.BaseURL = modelDef.BaseURL
	}

	return &Client{
		api:         openai.NewClientWithConfig(cfg),
		model:       modelDef.ModelName,
		temperature: modelDef.Temperature,
		maxTokens:   modelDef.MaxTokens,
	}
}

// Chat выполняет запрос к API и возвращает текст ответа модели.
//
// Алгоритм:
//  1. Конвертирует внутренние сообщения в формат OpenAI SDK
//  2. Переопределяет temperature/max_tokens если заданы в запросе
//  3. Вызывает API, все ошибки возвращаются — никаких panic
func (c *Client) Chat(ctx context.Context, req llm.ChatRequest) (string, error) {
	startTime := time.Now()

	utils.Debug("LLM request started",
		"model", c.model,
		"messages_count", len(req.Messages))

	openaiMsgs := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, m := range req.Messages {
		openaiMsgs[i] = openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}

	apiReq := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    openaiMsgs,
		Temperature: float32(c.temperature),
		MaxTokens:   c.maxTokens,
	}
	if req.Temperature > 0 {
		apiReq.Temperature = float32(req.Temperature)
	}
	if req.MaxTokens > 0 {
		apiReq.MaxTokens = req.MaxTokens
	}
	if req.Format == llm.FormatJSON {
		apiReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.api.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		utils.Error("LLM API request failed",
			"error", err,
			"model", c.model,
			"duration_ms", time.Since(startTime).Milliseconds())
		return "", fmt.Errorf("openai api error: %w", err)
	}

	// Проверяем что есть хотя бы один выбор
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	utils.Info("LLM response received",
		"model", c.model,
		"content_length", len(resp.Choices[0].Message.Content),
		"duration_ms", time.Since(startTime).Milliseconds())

	return resp.Choices[0].Message.Content, nil
}

// EmbeddingClient реализует llm.Embedder поверх OpenAI embeddings API.
type EmbeddingClient struct {
	api   *openai.Client
	model string
}

// NewEmbeddingClient создает embedding клиент из конфигурации модели.
func NewEmbeddingClient(modelDef config.ModelDef) *EmbeddingClient {
	cfg := openai.DefaultConfig(modelDef.APIKey)
	if modelDef.BaseURL != "" {
		cfg.BaseURL = modelDef.BaseURL
	}

	return &EmbeddingClient{
		api:   openai.NewClientWithConfig(cfg),
		model: modelDef.ModelName,
	}
}

// Embed кодирует пачку текстов одним запросом.
//
// Возвращает векторы в том же порядке, что и входные тексты.
func (c *EmbeddingClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	startTime := time.Now()

	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(c.model),
		Input: texts,
	})
	if err != nil {
		utils.Error("Embedding API request failed",
			"error", err,
			"model", c.model,
			"texts_count", len(texts))
		return nil, fmt.Errorf("openai embeddings error: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embeddings count mismatch: sent %d texts, got %d vectors", len(texts), len(resp.Data))
	}

	// API может вернуть данные не по порядку — раскладываем по Index
	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}

	utils.Debug("Embeddings received",
		"model", c.model,
		"texts_count", len(texts),
		"duration_ms", time.Since(startTime).Milliseconds())

	return vectors, nil
}
