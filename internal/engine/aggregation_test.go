package engine_test

import (
	"testing"

	"github.com/AlessioMurgia/capitaltracker/internal/engine"
	"github.com/AlessioMurgia/capitaltracker/internal/model"
)

// TestGroupStates_ByClass verifies the basic bucketing: positions of the same
// class sum into one pair, distinct classes stay separate, and output order is
// by label.
func TestGroupStates_ByClass(t *testing.T) {
	assets := map[string]model.Asset{
		"a1": {ID: "a1", Class: model.ClassStock},
		"a2": {ID: "a2", Class: model.ClassStock},
		"a3": {ID: "a3", Class: model.ClassETF},
	}
	states := []engine.PortfolioState{
		{AssetID: "a1", CurrentValue: 100},
		{AssetID: "a2", CurrentValue: 250},
		{AssetID: "a3", CurrentValue: 50},
	}

	pairs := engine.GroupStates(states, assets, engine.ByClass)

	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0].Label != model.ClassETF || pairs[1].Label != model.ClassStock {
		t.Errorf("unexpected label order: %s, %s", pairs[0].Label, pairs[1].Label)
	}
	approx(t, "ETF", pairs[0].Value, 50)
	approx(t, "Stock", pairs[1].Value, 350)
}

// TestGroupStates_Uncategorized verifies that assets with empty metadata for
// the chosen dimension land in the Uncategorized bucket rather than an empty
// label.
func TestGroupStates_Uncategorized(t *testing.T) {
	assets := map[string]model.Asset{
		"a1": {ID: "a1", Class: model.ClassStock, Sector: "Tech"},
		"a2": {ID: "a2", Class: model.ClassStock},
	}
	states := []engine.PortfolioState{
		{AssetID: "a1", CurrentValue: 100},
		{AssetID: "a2", CurrentValue: 40},
	}

	pairs := engine.GroupStates(states, assets, engine.BySector)

	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	found := false
	for _, p := range pairs {
		if p.Label == model.Uncategorized {
			found = true
			approx(t, "Uncategorized", p.Value, 40)
		}
	}
	if !found {
		t.Error("no Uncategorized bucket for asset with empty sector")
	}
}

// TestGroupStates_DropsNoiseBuckets verifies that buckets at or below the
// epsilon threshold are dropped from the output.
func TestGroupStates_DropsNoiseBuckets(t *testing.T) {
	assets := map[string]model.Asset{
		"a1": {ID: "a1", Class: model.ClassStock},
		"a2": {ID: "a2", Class: model.ClassETF},
	}
	states := []engine.PortfolioState{
		{AssetID: "a1", CurrentValue: 100},
		{AssetID: "a2", CurrentValue: engine.Epsilon / 2},
	}

	pairs := engine.GroupStates(states, assets, engine.ByClass)

	if len(pairs) != 1 {
		t.Fatalf("expected the noise bucket dropped, got %d pairs", len(pairs))
	}
	if pairs[0].Label != model.ClassStock {
		t.Errorf("kept bucket %s, want %s", pairs[0].Label, model.ClassStock)
	}
}

// TestGroupStates_TotalInvariant verifies that for any key function the sum of
// grouped values equals the sum of the input current values, as long as no
// bucket falls below the noise threshold.
func TestGroupStates_TotalInvariant(t *testing.T) {
	assets := map[string]model.Asset{
		"a1": {ID: "a1", Class: model.ClassStock, Sector: "Tech", Geography: "US", Platform: "BrokerA"},
		"a2": {ID: "a2", Class: model.ClassETF, Geography: "EU", Platform: "BrokerA"},
		"a3": {ID: "a3", Class: model.ClassRealEstate, Sector: "Housing"},
		"a4": {ID: "a4", Class: model.ClassCash},
	}
	states := []engine.PortfolioState{
		{AssetID: "a1", CurrentValue: 123.45},
		{AssetID: "a2", CurrentValue: 67.89},
		{AssetID: "a3", CurrentValue: 1000},
		{AssetID: "a4", CurrentValue: 500},
	}

	var inputTotal float64
	for _, s := range states {
		inputTotal += s.CurrentValue
	}

	keys := map[string]engine.KeyFunc{
		"class":     engine.ByClass,
		"sector":    engine.BySector,
		"geography": engine.ByGeography,
		"platform":  engine.ByPlatform,
	}
	for name, key := range keys {
		t.Run(name, func(t *testing.T) {
			var total float64
			for _, p := range engine.GroupStates(states, assets, key) {
				total += p.Value
			}
			approx(t, "grouped total", total, inputTotal)
		})
	}
}

// TestGroupStates_Empty verifies the no-position edge case.
func TestGroupStates_Empty(t *testing.T) {
	pairs := engine.GroupStates(nil, nil, engine.ByClass)
	if len(pairs) != 0 {
		t.Errorf("expected no pairs, got %d", len(pairs))
	}
}
