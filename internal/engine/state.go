package engine

import "github.com/AlessioMurgia/capitaltracker/internal/model"

// PortfolioState is the valued current position for one (portfolio, asset)
// pair: the holding combined with its latest known valuation.
type PortfolioState struct {
	PortfolioID        string  `json:"portfolioId"`
	AssetID            string  `json:"assetId"`
	Quantity           float64 `json:"quantity"`
	CostBasis          float64 `json:"costBasis"`
	Price              float64 `json:"price"` // Latest known unit price (for Cash, the balance itself)
	CurrentValue       float64 `json:"currentValue"`
	UnrealizedGainLoss float64 `json:"unrealizedGainLoss"`
	RealizedGainLoss   float64 `json:"realizedGainLoss"`
	Inconsistent       bool    `json:"inconsistent"`
}

// StateResult aggregates valued positions with ledger-wide totals.
type StateResult struct {
	States                  []PortfolioState `json:"states"`
	TotalValue              float64          `json:"totalValue"`
	TotalCost               float64          `json:"totalCost"`
	TotalUnrealizedGainLoss float64          `json:"totalUnrealizedGainLoss"`
	TotalRealizedGainLoss   float64          `json:"totalRealizedGainLoss"`
	TotalGainLoss           float64          `json:"totalGainLoss"`
	TotalCapitalInvested    float64          `json:"totalCapitalInvested"`
	Inconsistent            bool             `json:"inconsistent"`
}

// CalculateStates values every open holding against the latest known
// valuations. Holdings with quantity <= Epsilon are fully closed and excluded
// from the active view; their realized gain/loss is still carried through the
// ledger totals.
//
// A missing valuation is not an error: the asset contributes zero value until a
// valuation exists. Cash-class holdings take the raw latest valuation as their
// value (the balance); when a cash asset has no valuation yet, the ledger
// balance itself is used, so a cash balance is never multiplied by a price.
func CalculateStates(ledger LedgerResult, index *ValuationIndex, assets map[string]model.Asset) StateResult {
	result := StateResult{
		States:                []PortfolioState{},
		TotalRealizedGainLoss: ledger.TotalRealizedGainLoss,
		TotalCapitalInvested:  ledger.TotalCapitalInvested,
		Inconsistent:          ledger.Inconsistent,
	}

	for _, h := range ledger.Holdings {
		if h.Quantity <= Epsilon {
			continue
		}

		var price, value float64
		if assets[h.AssetID].IsCash() {
			if v, ok := index.Latest(h.AssetID); ok {
				value = v.Value
			} else {
				value = h.Quantity
			}
			price = value
		} else {
			if v, ok := index.Latest(h.AssetID); ok {
				price = v.Value
			}
			value = h.Quantity * price
		}

		state := PortfolioState{
			PortfolioID:        h.PortfolioID,
			AssetID:            h.AssetID,
			Quantity:           h.Quantity,
			CostBasis:          h.CostBasis,
			Price:              price,
			CurrentValue:       value,
			UnrealizedGainLoss: value - h.CostBasis,
			RealizedGainLoss:   h.RealizedGainLoss,
			Inconsistent:       h.Inconsistent,
		}

		result.States = append(result.States, state)
		result.TotalValue += state.CurrentValue
		result.TotalCost += state.CostBasis
		result.TotalUnrealizedGainLoss += state.UnrealizedGainLoss
	}

	result.TotalGainLoss = result.TotalUnrealizedGainLoss + result.TotalRealizedGainLoss
	return result
}
