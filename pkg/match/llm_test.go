package match

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ilkoid/vibe-stylist/pkg/catalog"
	"github.com/ilkoid/vibe-stylist/pkg/llm"
	"github.com/ilkoid/vibe-stylist/pkg/vocab"
)

// stubProvider отвечает score по подстроке имени товара в промпте.
type stubProvider struct {
	scores map[string]float64 // подстрока промпта -> score
	errFor map[string]error   // подстрока промпта -> ошибка
	reply  string             // сырой ответ, если задан — возвращается как есть
}

func (s *stubProvider) Chat(ctx context.Context, req llm.ChatRequest) (string, error) {
	if s.reply != "" {
		return s.reply, nil
	}
	prompt := req.Messages[len(req.Messages)-1].Content
	for sub, err := range s.errFor {
		if strings.Contains(prompt, sub) {
			return "", err
		}
	}
	for sub, score := range s.scores {
		if strings.Contains(prompt, sub) {
			return fmt.Sprintf(`{"score": %v, "reasoning": "stub judgment"}`, score), nil
		}
	}
	return `{"score": 0.0, "reasoning": "no opinion"}`, nil
}

func llmTestItems() []catalog.Item {
	return []catalog.Item{
		testItem("A", map[vocab.Field]catalog.AttrValue{vocab.FieldFit: catalog.Single("Relaxed")}),
		testItem("B", nil),
		testItem("C", nil),
	}
}

var llmTestQuery = Query{vocab.FieldFit: {{Value: "Relaxed"}}}

func TestLLMMatcherRanking(t *testing.T) {
	p := &stubProvider{scores: map[string]float64{
		"Item A": 0.3,
		"Item B": 0.9,
		"Item C": 0.6,
	}}
	m := NewLLMMatcher(p, testMatchingConfig())

	batch, err := m.Match(context.Background(), llmTestQuery, llmTestItems())
	if err != nil {
		t.Fatal(err)
	}

	got := make([]string, len(batch.Results))
	for i, r := range batch.Results {
		got[i] = r.ItemID
	}
	want := []string{"B", "C", "A"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected order %v, got %v", want, got)
		}
	}
	if batch.Results[0].Reasoning != "stub judgment" {
		t.Errorf("expected provider reasoning carried through, got %q", batch.Results[0].Reasoning)
	}
	// Точное совпадение fit у A фиксируется информационно
	for _, r := range batch.Results {
		if r.ItemID == "A" {
			if len(r.MatchedFields) != 1 || r.MatchedFields[0] != vocab.FieldFit {
				t.Errorf("expected informational matched field for A, got %v", r.MatchedFields)
			}
		}
	}
}

func TestLLMMatcherScoreClamped(t *testing.T) {
	p := &stubProvider{reply: `{"score": 1.7, "reasoning": "overenthusiastic"}`}
	m := NewLLMMatcher(p, testMatchingConfig())

	batch, err := m.Match(context.Background(), llmTestQuery, llmTestItems()[:1])
	if err != nil {
		t.Fatal(err)
	}
	if batch.Results[0].Score != 1.0 {
		t.Errorf("score must be clamped to 1.0, got %v", batch.Results[0].Score)
	}
}

// TestLLMMatcherPartialFailure: упавший вызов на одном товаре не валит
// батч — товар попадает в Unscored, остальные ранжируются.
func TestLLMMatcherPartialFailure(t *testing.T) {
	p := &stubProvider{
		scores: map[string]float64{"Item A": 0.8, "Item C": 0.4},
		errFor: map[string]error{"Item B": errors.New("upstream timeout")},
	}
	m := NewLLMMatcher(p, testMatchingConfig())

	batch, err := m.Match(context.Background(), llmTestQuery, llmTestItems())
	if err != nil {
		t.Fatal(err)
	}
	if len(batch.Results) != 2 {
		t.Fatalf("expected 2 scored items, got %d", len(batch.Results))
	}
	if _, found := batch.Unscored["B"]; !found {
		t.Errorf("expected B reported in Unscored, got %v", batch.Unscored)
	}
}

func TestLLMMatcherUnavailable(t *testing.T) {
	t.Run("nil provider", func(t *testing.T) {
		m := NewLLMMatcher(nil, testMatchingConfig())
		_, err := m.Match(context.Background(), llmTestQuery, llmTestItems())
		if !errors.Is(err, ErrStrategyUnavailable) {
			t.Errorf("expected ErrStrategyUnavailable, got %v", err)
		}
	})

	t.Run("all calls failed", func(t *testing.T) {
		p := &stubProvider{errFor: map[string]error{"Catalog item": errors.New("boom")}}
		m := NewLLMMatcher(p, testMatchingConfig())
		_, err := m.Match(context.Background(), llmTestQuery, llmTestItems())
		if !errors.Is(err, ErrStrategyUnavailable) {
			t.Errorf("expected ErrStrategyUnavailable when every call fails, got %v", err)
		}
	})
}

func TestLLMMatcherMaxCandidates(t *testing.T) {
	var calls int
	p := &stubProvider{reply: `{"score": 0.5, "reasoning": "ok"}`}
	cfg := testMatchingConfig()
	cfg.LLM.MaxCandidates = 2
	cfg.Workers = 1 // последовательный счётчик вызовов без гонок

	counting := llm.ProviderFunc(func(ctx context.Context, req llm.ChatRequest) (string, error) {
		calls++
		return p.Chat(ctx, req)
	})
	m := NewLLMMatcher(counting, cfg)

	batch, err := m.Match(context.Background(), llmTestQuery, llmTestItems())
	if err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("expected 2 provider calls with max_candidates=2, got %d", calls)
	}
	if len(batch.Results) != 2 {
		t.Errorf("expected 2 results, got %d", len(batch.Results))
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", `{"score": 0.5}`, `{"score": 0.5}`},
		{"fenced json", "```json\n{\"score\": 0.5}\n```", `{"score": 0.5}`},
		{"fenced bare", "```\n{\"score\": 0.5}\n```", `{"score": 0.5}`},
		{"prose around", `Here you go: {"score": 0.5} hope that helps`, `{"score": 0.5}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSON(tt.raw); got != tt.want {
				t.Errorf("extractJSON(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
