package ui

import (
	"testing"

	"github.com/ilkoid/vibe-stylist/pkg/vocab"
)

func TestParseAttrInput(t *testing.T) {
	q, err := ParseAttrInput("fit=relaxed; fabric=satin, silk ;occasion=vacation")
	if err != nil {
		t.Fatal(err)
	}

	if got := q[vocab.FieldFit]; len(got) != 1 || got[0].Value != "relaxed" {
		t.Errorf("fit = %+v", got)
	}
	if got := q[vocab.FieldFabric]; len(got) != 2 || got[0].Value != "satin" || got[1].Value != "silk" {
		t.Errorf("fabric = %+v", got)
	}
	if got := q[vocab.FieldOccasion]; len(got) != 1 || got[0].Value != "vacation" {
		t.Errorf("occasion = %+v", got)
	}
}

func TestParseAttrInputErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no separator", "relaxed linen"},
		{"unknown field", "brand=acme"},
		{"empty values", "fit= ,"},
		{"empty input", "  ;  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseAttrInput(tt.input); err == nil {
				t.Errorf("expected error for %q", tt.input)
			}
		})
	}
}

func TestParseBudgetArgs(t *testing.T) {
	budget, err := parseBudgetArgs([]string{"40", "120"})
	if err != nil {
		t.Fatal(err)
	}
	if budget.Min != 40 || budget.Max != 120 {
		t.Errorf("budget = %+v", budget)
	}

	budget, err = parseBudgetArgs([]string{"0", "100"})
	if err != nil {
		t.Fatal(err)
	}
	if budget.Min != 0 || budget.Max != 100 {
		t.Errorf("budget = %+v", budget)
	}

	if _, err := parseBudgetArgs([]string{"cheap"}); err == nil {
		t.Error("expected error for non-numeric budget")
	}
}
