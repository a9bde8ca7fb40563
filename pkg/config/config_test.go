package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	t.Setenv("TEST_VIBE_KEY", "secret-key-123")

	path := writeConfig(t, `
models:
  default_chat: "main"
  default_embedding: "embed"
  definitions:
    main:
      provider: "zai"
      model_name: "glm-4.5"
      api_key: "${TEST_VIBE_KEY}"
      base_url: "https://api.example.com/v1"
      max_tokens: 4096
      temperature: 0.3
      timeout: 60s
    embed:
      provider: "openai"
      model_name: "text-embedding-3-small"
      api_key: "${TEST_VIBE_KEY}"

matching:
  fuzzy_factor: 0.8
  weights:
    fit: 1.5
  llm:
    rate_limit: 30

catalog:
  source: "file"
  path: "data/apparels.csv"

app:
  debug: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	chat, ok := cfg.GetChatModel("")
	if !ok {
		t.Fatal("default chat model must resolve")
	}
	if chat.APIKey != "secret-key-123" {
		t.Errorf("env expansion failed: %q", chat.APIKey)
	}
	if chat.Timeout != 60*time.Second {
		t.Errorf("timeout = %v, want 60s", chat.Timeout)
	}

	embed, ok := cfg.GetEmbeddingModel("")
	if !ok || embed.ModelName != "text-embedding-3-small" {
		t.Errorf("embedding model = %+v, ok=%v", embed, ok)
	}

	// Явные значения сохраняются, остальное — дефолты
	if cfg.Matching.FuzzyFactor != 0.8 {
		t.Errorf("fuzzy_factor = %v, want 0.8", cfg.Matching.FuzzyFactor)
	}
	if cfg.Matching.Weights["fit"] != 1.5 {
		t.Errorf("weights[fit] = %v", cfg.Matching.Weights["fit"])
	}
	if cfg.Matching.BaselineWeight != 0.5 {
		t.Errorf("baseline_weight default = %v, want 0.5", cfg.Matching.BaselineWeight)
	}
	if cfg.Matching.LLM.RateLimit != 30 {
		t.Errorf("llm.rate_limit = %v, want 30", cfg.Matching.LLM.RateLimit)
	}
	if cfg.Matching.LLM.Timeout != "30s" {
		t.Errorf("llm.timeout default = %v", cfg.Matching.LLM.Timeout)
	}
	if !cfg.App.Debug {
		t.Error("app.debug must be true")
	}
}

func TestLoadValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			"missing catalog path",
			"catalog:\n  source: \"file\"\n",
		},
		{
			"unknown catalog source",
			"catalog:\n  source: \"ftp\"\n  path: \"x.csv\"\n",
		},
		{
			"s3 without bucket",
			"catalog:\n  source: \"s3\"\n  s3_key: \"items.csv\"\ns3:\n  endpoint: \"s3.example.com\"\n",
		},
		{
			"fuzzy factor out of range",
			"catalog:\n  path: \"x.csv\"\nmatching:\n  fuzzy_factor: 1.5\n",
		},
		{
			"default chat not defined",
			"catalog:\n  path: \"x.csv\"\nmodels:\n  default_chat: \"ghost\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestGetDefaultsKeepsExplicitValues(t *testing.T) {
	c := MatchingConfig{FuzzyFactor: 0.7, AgreementTopK: 3}
	got := c.GetDefaults()

	if got.FuzzyFactor != 0.7 {
		t.Errorf("explicit fuzzy_factor overwritten: %v", got.FuzzyFactor)
	}
	if got.AgreementTopK != 3 {
		t.Errorf("explicit agreement_top_k overwritten: %v", got.AgreementTopK)
	}
	if got.EmbeddingScale != 2.0 || got.Workers != 4 || got.LLM.MaxCandidates != 20 {
		t.Errorf("defaults not applied: %+v", got)
	}
}
