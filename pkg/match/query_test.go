package match

import (
	"errors"
	"testing"

	"github.com/ilkoid/vibe-stylist/pkg/vocab"
)

func TestParseQueryJSONForms(t *testing.T) {
	data := []byte(`{
		"fit": "Relaxed",
		"fabric": ["Satin", "Silk"],
		"occasion": [{"value": "Vacation", "confidence": 0.9}]
	}`)

	q, _, err := ParseQueryJSON(data)
	if err != nil {
		t.Fatal(err)
	}

	if got := q[vocab.FieldFit]; len(got) != 1 || got[0].Value != "Relaxed" {
		t.Errorf("string form: got %+v", got)
	}
	if got := q[vocab.FieldFabric]; len(got) != 2 || got[0].Value != "Satin" || got[1].Value != "Silk" {
		t.Errorf("string array form: got %+v", got)
	}
	if got := q[vocab.FieldOccasion]; len(got) != 1 || got[0].Value != "Vacation" || got[0].Confidence != 0.9 {
		t.Errorf("object form: got %+v", got)
	}
}

func TestParseQueryJSONBudget(t *testing.T) {
	tests := []struct {
		name string
		data string
		min  float64
		max  float64
	}{
		{"numbers", `{"budget_min": 40, "budget_max": 120.5}`, 40, 120.5},
		{"strings", `{"budget_max": "150"}`, 0, 150},
		{"extraction form", `{"budget_max": [{"value": "100", "confidence": 0.8}]}`, 0, 100},
		{"empty string means unset", `{"budget_min": ""}`, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, budget, err := ParseQueryJSON([]byte(tt.data))
			if err != nil {
				t.Fatal(err)
			}
			if budget.Min != tt.min || budget.Max != tt.max {
				t.Errorf("budget = %+v, want min %v max %v", budget, tt.min, tt.max)
			}
			// Бюджет не должен просачиваться в атрибуты
			if len(q) != 0 {
				t.Errorf("budget keys must not become query fields: %+v", q)
			}
		})
	}
}

func TestParseQueryJSONUnknownFieldIgnored(t *testing.T) {
	q, _, err := ParseQueryJSON([]byte(`{"fit": "Relaxed", "brand": "Acme", "season": "winter"}`))
	if err != nil {
		t.Fatal(err)
	}
	if len(q) != 1 {
		t.Errorf("unknown fields must be ignored, got %+v", q)
	}
}

func TestParseQueryJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed json", `{"fit": `},
		{"bad field value", `{"fit": 42}`},
		{"bad budget", `{"budget_min": {"nested": true}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseQueryJSON([]byte(tt.data))
			if !errors.Is(err, ErrInvalidQuery) {
				t.Errorf("expected ErrInvalidQuery, got %v", err)
			}
		})
	}
}

func TestQueryText(t *testing.T) {
	q := Query{
		vocab.FieldFit:    {{Value: "Relaxed"}},
		vocab.FieldFabric: {{Value: "Satin"}, {Value: "Silk"}},
	}
	got := QueryText(q)
	want := "fit: Relaxed; fabric: Satin, Silk"
	if got != want {
		t.Errorf("QueryText = %q, want %q", got, want)
	}
}
