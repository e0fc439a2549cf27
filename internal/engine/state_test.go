package engine_test

import (
	"testing"

	"github.com/AlessioMurgia/capitaltracker/internal/engine"
	"github.com/AlessioMurgia/capitaltracker/internal/model"
)

// TestCalculateStates_Scenario verifies the reference scenario through the
// current-state path: 3 units held at cost 300, valued at 120, must show
// currentValue 360 and unrealized gain 60 on top of the realized 100.
func TestCalculateStates_Scenario(t *testing.T) {
	assets := stockAssets("AssetA")
	ledger := engine.Replay([]model.Transaction{
		buy("p1", "AssetA", 5, 100, date(2023, 1, 1)),
		sell("p1", "AssetA", 2, 150, date(2023, 6, 1)),
	}, assets)
	index := engine.NewValuationIndex([]model.Valuation{
		valuation("AssetA", date(2024, 1, 1), 120),
	})

	result := engine.CalculateStates(ledger, index, assets)

	if len(result.States) != 1 {
		t.Fatalf("expected 1 state, got %d", len(result.States))
	}
	s := result.States[0]
	approx(t, "currentValue", s.CurrentValue, 360)
	approx(t, "unrealized", s.UnrealizedGainLoss, 60)
	approx(t, "TotalRealizedGainLoss", result.TotalRealizedGainLoss, 100)
	approx(t, "TotalGainLoss", result.TotalGainLoss, 160)
}

// TestCalculateStates_CashNotSquared verifies the cash rule: a cash asset with
// a balance of 500 and a valuation of 500 reports a value of 500, never
// quantity times price.
func TestCalculateStates_CashNotSquared(t *testing.T) {
	assets := map[string]model.Asset{
		"cash": {ID: "cash", Name: "Savings", Class: model.ClassCash},
	}
	ledger := engine.Replay([]model.Transaction{
		buy("p1", "cash", 500, 1, date(2023, 1, 1)),
	}, assets)
	index := engine.NewValuationIndex([]model.Valuation{
		valuation("cash", date(2023, 2, 1), 500),
	})

	result := engine.CalculateStates(ledger, index, assets)

	approx(t, "TotalValue", result.TotalValue, 500)
}

// TestCalculateStates_CashWithoutValuation verifies that a cash asset with no
// valuation yet falls back to its ledger balance instead of vanishing.
func TestCalculateStates_CashWithoutValuation(t *testing.T) {
	assets := map[string]model.Asset{
		"cash": {ID: "cash", Name: "Savings", Class: model.ClassCash},
	}
	ledger := engine.Replay([]model.Transaction{
		buy("p1", "cash", 750, 1, date(2023, 1, 1)),
	}, assets)

	result := engine.CalculateStates(ledger, engine.NewValuationIndex(nil), assets)

	approx(t, "TotalValue", result.TotalValue, 750)
}

// TestCalculateStates_MissingValuation verifies that a non-cash asset with no
// valuation contributes zero value, without an error: the position still shows
// its cost basis and an unrealized loss of the same size.
func TestCalculateStates_MissingValuation(t *testing.T) {
	assets := stockAssets("a1")
	ledger := engine.Replay([]model.Transaction{
		buy("p1", "a1", 10, 50, date(2023, 1, 1)),
	}, assets)

	result := engine.CalculateStates(ledger, engine.NewValuationIndex(nil), assets)

	s := result.States[0]
	approx(t, "currentValue", s.CurrentValue, 0)
	approx(t, "unrealized", s.UnrealizedGainLoss, -500)
}

// TestCalculateStates_ClosedPositionsExcluded verifies that holdings at or
// below the epsilon threshold are excluded from the active view while their
// realized results stay in the totals.
func TestCalculateStates_ClosedPositionsExcluded(t *testing.T) {
	assets := stockAssets("closed", "open")
	ledger := engine.Replay([]model.Transaction{
		buy("p1", "closed", 5, 10, date(2023, 1, 1)),
		sell("p1", "closed", 5, 20, date(2023, 2, 1)),
		buy("p1", "open", 2, 100, date(2023, 1, 1)),
	}, assets)
	index := engine.NewValuationIndex([]model.Valuation{
		valuation("open", date(2023, 3, 1), 110),
	})

	result := engine.CalculateStates(ledger, index, assets)

	if len(result.States) != 1 {
		t.Fatalf("expected only the open position, got %d states", len(result.States))
	}
	if result.States[0].AssetID != "open" {
		t.Errorf("unexpected active asset %s", result.States[0].AssetID)
	}
	approx(t, "TotalRealizedGainLoss", result.TotalRealizedGainLoss, 50)
}

// TestCalculateStates_Empty verifies the no-data edge case.
func TestCalculateStates_Empty(t *testing.T) {
	result := engine.CalculateStates(engine.Replay(nil, nil), engine.NewValuationIndex(nil), nil)

	if len(result.States) != 0 {
		t.Errorf("expected no states, got %d", len(result.States))
	}
	approx(t, "TotalValue", result.TotalValue, 0)
	approx(t, "TotalGainLoss", result.TotalGainLoss, 0)
}
