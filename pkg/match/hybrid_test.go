package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resultRow(id string, score float64, strategy Strategy) Result {
	return Result{ItemID: id, Name: "Item " + id, Score: score, Strategy: strategy}
}

func TestHybridCombineNormalization(t *testing.T) {
	c := NewHybridCombiner(testMatchingConfig())

	legs := []Leg{
		{Weight: 0.5, Batch: Batch{Strategy: StrategyRuleBased, Results: []Result{
			resultRow("A", 2.0, StrategyRuleBased), // max ноги -> norm 1.0
			resultRow("B", 1.0, StrategyRuleBased), // norm 0.5
		}}},
		{Weight: 0.5, Batch: Batch{Strategy: StrategyEmbeddingBased, Results: []Result{
			resultRow("B", 0.9, StrategyEmbeddingBased), // norm 1.0
			resultRow("A", 0.45, StrategyEmbeddingBased), // norm 0.5
		}}},
	}

	combined := c.Combine(legs)
	require.Len(t, combined, 2)

	// Оба в top-K обеих ног: 0.5*1.0 + 0.5*0.5 + bonus = 0.85
	for _, r := range combined {
		assert.InDelta(t, 0.85, r.Score, 1e-9, "item %s", r.ItemID)
		assert.Equal(t, StrategyHybrid, r.Strategy)
		assert.Contains(t, r.Reasoning, "agreement bonus")
	}
	// Tie-break — ранг первой ноги: A выше B
	assert.Equal(t, "A", combined[0].ItemID)
	assert.Equal(t, "B", combined[1].ItemID)
}

// TestHybridAgreementBonus: товар в top-K нескольких ног не ранжируется
// ниже, чем он был бы без бонуса.
func TestHybridAgreementBonus(t *testing.T) {
	legs := func() []Leg {
		return []Leg{
			{Weight: 0.5, Batch: Batch{Results: []Result{
				resultRow("A", 1.0, StrategyRuleBased),
				resultRow("B", 0.9, StrategyRuleBased),
			}}},
			{Weight: 0.5, Batch: Batch{Results: []Result{
				resultRow("B", 1.0, StrategyEmbeddingBased),
			}}},
		}
	}

	withBonus := NewHybridCombiner(testMatchingConfig()).Combine(legs())

	noBonusCfg := testMatchingConfig()
	noBonusCfg.AgreementBonus = 0
	withoutBonus := NewHybridCombiner(noBonusCfg).Combine(legs())

	scoreOf := func(rs []Result, id string) float64 {
		for _, r := range rs {
			if r.ItemID == id {
				return r.Score
			}
		}
		t.Fatalf("item %s missing", id)
		return 0
	}

	// B в top-K обеих ног, A — только одной
	assert.GreaterOrEqual(t, scoreOf(withBonus, "B"), scoreOf(withoutBonus, "B"))
	assert.InDelta(t, scoreOf(withBonus, "A"), scoreOf(withoutBonus, "A"), 1e-9)

	// С бонусом B обгоняет A: 0.45+0.5+0.1 = 1.05 против 0.5
	assert.Equal(t, "B", withBonus[0].ItemID)
}

// TestHybridMissingFromLeg: отсутствие товара в списке одной ноги даёт
// нулевой вклад от неё, но не исключает товар.
func TestHybridMissingFromLeg(t *testing.T) {
	c := NewHybridCombiner(testMatchingConfig())

	legs := []Leg{
		{Weight: 0.5, Batch: Batch{Results: []Result{
			resultRow("A", 1.0, StrategyRuleBased),
		}}},
		{Weight: 0.5, Batch: Batch{Results: []Result{
			resultRow("B", 1.0, StrategyEmbeddingBased),
		}}},
	}

	combined := c.Combine(legs)
	require.Len(t, combined, 2)
	for _, r := range combined {
		assert.InDelta(t, 0.5, r.Score, 1e-9, "item %s", r.ItemID)
	}
}

// TestHybridWeightRenormalization: с одной ногой перенормированный вес
// равен 1 независимо от номинала.
func TestHybridWeightRenormalization(t *testing.T) {
	c := NewHybridCombiner(testMatchingConfig())

	combined := c.Combine([]Leg{
		{Weight: 0.5, Batch: Batch{Results: []Result{
			resultRow("A", 2.0, StrategyRuleBased),
			resultRow("B", 1.0, StrategyRuleBased),
		}}},
	})

	require.Len(t, combined, 2)
	assert.InDelta(t, 1.0, combined[0].Score, 1e-9)
	assert.InDelta(t, 0.5, combined[1].Score, 1e-9)
}

func TestHybridZeroWeightsFallBackToEqual(t *testing.T) {
	c := NewHybridCombiner(testMatchingConfig())

	combined := c.Combine([]Leg{
		{Weight: 0, Batch: Batch{Results: []Result{resultRow("A", 1.0, StrategyRuleBased)}}},
		{Weight: 0, Batch: Batch{Results: []Result{resultRow("A", 1.0, StrategyEmbeddingBased)}}},
	})

	require.Len(t, combined, 1)
	// 0.5 + 0.5 + agreement bonus
	assert.InDelta(t, 1.1, combined[0].Score, 1e-9)
}

func TestHybridEmptyLegs(t *testing.T) {
	c := NewHybridCombiner(testMatchingConfig())
	assert.Nil(t, c.Combine(nil))
	assert.Empty(t, c.Combine([]Leg{{Weight: 1, Batch: Batch{}}}))
}
