package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig — корневая структура конфигурации.
// Она зеркалит структуру config.yaml.
type AppConfig struct {
	Models   ModelsConfig   `yaml:"models"`
	Matching MatchingConfig `yaml:"matching"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	S3       S3Config       `yaml:"s3"`
	Vocab    VocabConfig    `yaml:"vocab"`
	App      AppSpecific    `yaml:"app"`
}

// ModelsConfig — настройки AI моделей.
type ModelsConfig struct {
	DefaultChat      string              `yaml:"default_chat"`      // Алиас chat-модели (LLM скоринг, объяснения)
	DefaultEmbedding string              `yaml:"default_embedding"` // Алиас embedding-модели
	Definitions      map[string]ModelDef `yaml:"definitions"`       // Словарь определений моделей
}

// ModelDef — параметры конкретной модели.
type ModelDef struct {
	Provider    string        `yaml:"provider"`   // "openai", "zai", "deepseek" и т.д.
	ModelName   string        `yaml:"model_name"` // Реальное имя в API
	APIKey      string        `yaml:"api_key"`    // Поддерживает ${VAR}
	BaseURL     string        `yaml:"base_url"`   // Для OpenAI-совместимых провайдеров
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"` // Go умеет парсить строки вида "60s", "1m"
}

// MatchingConfig — параметры движка подбора.
//
// Все числовые константы (fuzzy factor, бонус согласия и т.д.)
// конфигурируемые: зашитые значения — иллюстративные дефолты,
// а не контракт.
type MatchingConfig struct {
	Weights        map[string]float64 `yaml:"weights"`         // Вес по имени поля (fit, fabric, ...)
	BaselineWeight float64            `yaml:"baseline_weight"` // Вес для полей без явного веса
	FuzzyFactor    float64            `yaml:"fuzzy_factor"`    // Множитель fuzzy-совпадения, < 1.0
	EmbeddingScale float64            `yaml:"embedding_scale"` // Масштаб cosine similarity под шкалу rule-based
	MinScore       float64            `yaml:"min_score"`       // Порог отсечения слабых результатов
	RuleWeight     float64            `yaml:"rule_weight"`     // Вес rule-based ноги в hybrid
	EmbedWeight    float64            `yaml:"embed_weight"`    // Вес embedding ноги в hybrid
	AgreementBonus float64            `yaml:"agreement_bonus"` // Бонус за консенсус стратегий
	AgreementTopK  int                `yaml:"agreement_top_k"` // Top-K для бонуса согласия
	Workers        int                `yaml:"workers"`         // Параллелизм батч-скоринга
	LLM            LLMScoringConfig   `yaml:"llm"`
}

// LLMScoringConfig — настройки внешних LLM-вызовов при скоринге.
type LLMScoringConfig struct {
	RateLimit     int    `yaml:"rate_limit"`     // Запросов в минуту
	BurstLimit    int    `yaml:"burst_limit"`    // Burst для rate limiter
	Timeout       string `yaml:"timeout"`        // Timeout одного вызова (например, "30s")
	MaxCandidates int    `yaml:"max_candidates"` // Сколько товаров отдавать LLM на оценку
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (c *MatchingConfig) GetDefaults() MatchingConfig {
	result := *c // Копируем текущие значения

	if result.BaselineWeight == 0 {
		result.BaselineWeight = 0.5
	}
	if result.FuzzyFactor == 0 {
		result.FuzzyFactor = 0.85
	}
	if result.EmbeddingScale == 0 {
		result.EmbeddingScale = 2.0
	}
	if result.RuleWeight == 0 {
		result.RuleWeight = 0.5
	}
	if result.EmbedWeight == 0 {
		result.EmbedWeight = 0.5
	}
	if result.AgreementBonus == 0 {
		result.AgreementBonus = 0.1
	}
	if result.AgreementTopK == 0 {
		result.AgreementTopK = 5
	}
	if result.Workers == 0 {
		result.Workers = 4
	}
	if result.LLM.RateLimit == 0 {
		result.LLM.RateLimit = 60 // запросов в минуту
	}
	if result.LLM.BurstLimit == 0 {
		result.LLM.BurstLimit = 3
	}
	if result.LLM.Timeout == "" {
		result.LLM.Timeout = "30s"
	}
	if result.LLM.MaxCandidates == 0 {
		result.LLM.MaxCandidates = 20
	}

	return result
}

// CatalogConfig — откуда грузить каталог.
type CatalogConfig struct {
	Source string `yaml:"source"` // "file", "sqlite" или "s3"
	Path   string `yaml:"path"`   // CSV файл или SQLite база
	Table  string `yaml:"table"`  // Имя таблицы для sqlite (default: "items")
	S3Key  string `yaml:"s3_key"` // Ключ CSV объекта в бакете
}

// S3Config — настройки объектного хранилища.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	AccessKey string `yaml:"access_key"` // Поддерживает ${VAR}
	SecretKey string `yaml:"secret_key"` // Поддерживает ${VAR}
	UseSSL    bool   `yaml:"use_ssl"`
}

// VocabConfig — настройки словаря атрибутов.
type VocabConfig struct {
	OverlayPath string `yaml:"overlay_path"` // YAML с дополнительными значениями/синонимами
}

// AppSpecific — общие настройки приложения.
type AppSpecific struct {
	Debug bool `yaml:"debug"`
}

// Load читает YAML файл, подставляет ENV переменные и возвращает готовую структуру.
func Load(path string) (*AppConfig, error) {
	// 1. Проверяем существование файла
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at: %s", path)
	}

	// 2. Читаем файл целиком
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// 3. Подставляем переменные окружения.
	// os.ExpandEnv заменяет ${VAR} или $VAR на значение из системы.
	contentWithEnv := os.ExpandEnv(string(rawBytes))

	// 4. Парсим YAML в структуру
	var cfg AppConfig
	if err := yaml.Unmarshal([]byte(contentWithEnv), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	// 5. Валидируем критические настройки
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.Matching = cfg.Matching.GetDefaults()

	return &cfg, nil
}

// validate проверяет обязательные поля.
func (c *AppConfig) validate() error {
	switch c.Catalog.Source {
	case "", "file":
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog.path is required for file source")
		}
	case "sqlite":
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog.path is required for sqlite source")
		}
	case "s3":
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket is required for s3 catalog source")
		}
		if c.S3.Endpoint == "" {
			return fmt.Errorf("s3.endpoint is required for s3 catalog source")
		}
		if c.Catalog.S3Key == "" {
			return fmt.Errorf("catalog.s3_key is required for s3 catalog source")
		}
	default:
		return fmt.Errorf("unknown catalog source: %s", c.Catalog.Source)
	}

	// 0 означает "возьми дефолт", поэтому проверяем только явные значения
	if c.Matching.FuzzyFactor != 0 && (c.Matching.FuzzyFactor < 0 || c.Matching.FuzzyFactor >= 1.0) {
		return fmt.Errorf("matching.fuzzy_factor must be in (0, 1), got %v", c.Matching.FuzzyFactor)
	}

	// Проверка наличия дефолтных моделей в definitions
	if c.Models.DefaultChat != "" {
		if _, ok := c.Models.Definitions[c.Models.DefaultChat]; !ok {
			return fmt.Errorf("default_chat model '%s' is not defined in definitions", c.Models.DefaultChat)
		}
	}
	if c.Models.DefaultEmbedding != "" {
		if _, ok := c.Models.Definitions[c.Models.DefaultEmbedding]; !ok {
			return fmt.Errorf("default_embedding model '%s' is not defined in definitions", c.Models.DefaultEmbedding)
		}
	}
	return nil
}

// Helper методы для удобства доступа (Syntactic sugar)

// GetChatModel возвращает конфигурацию chat-модели по умолчанию или по имени.
func (c *AppConfig) GetChatModel(name string) (ModelDef, bool) {
	if name == "" {
		name = c.Models.DefaultChat
	}
	m, ok := c.Models.Definitions[name]
	return m, ok
}

// GetEmbeddingModel возвращает конфигурацию embedding-модели по умолчанию или по имени.
func (c *AppConfig) GetEmbeddingModel(name string) (ModelDef, bool) {
	if name == "" {
		name = c.Models.DefaultEmbedding
	}
	m, ok := c.Models.Definitions[name]
	return m, ok
}
