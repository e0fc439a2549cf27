package engine

import (
	"sort"

	"github.com/AlessioMurgia/capitaltracker/internal/model"
)

// Holding is the derived running position for one (portfolio, asset) pair.
// It is recomputed from scratch on every replay and never persisted.
type Holding struct {
	PortfolioID      string  `json:"portfolioId"`
	AssetID          string  `json:"assetId"`
	Quantity         float64 `json:"quantity"`  // May be negative after an oversell; see Inconsistent
	CostBasis        float64 `json:"costBasis"` // Cost attributed to the open quantity, never negative
	RealizedGainLoss float64 `json:"realizedGainLoss"`
	Inconsistent     bool    `json:"inconsistent"` // A SELL exceeded the tracked open quantity
}

// LedgerResult is the output of replaying a transaction stream.
type LedgerResult struct {
	Holdings              []Holding `json:"holdings"`
	TotalRealizedGainLoss float64   `json:"totalRealizedGainLoss"`
	TotalCapitalInvested  float64   `json:"totalCapitalInvested"`
	Inconsistent          bool      `json:"inconsistent"`
}

type holdingKey struct {
	portfolioID string
	assetID     string
}

// Replay computes running holdings from a transaction stream using average-cost
// accounting. Transactions are replayed in ascending date order per asset;
// within the same date the input (insertion) order is preserved.
//
// On BUY, quantity and cost basis grow by the transaction amount plus fee. On
// SELL, the cost of the sold units is their share of the blended average cost;
// the difference between net proceeds and that cost is realized gain/loss.
//
// Cash-class assets move by face value: quantity is the balance, the recorded
// price is ignored, and cash never contributes to realized gain/loss or the
// capital-invested accumulator.
//
// An oversell (SELL beyond the tracked open quantity) is not rejected. The raw,
// possibly negative quantity is kept so output stays comparable across loads,
// and the holding is flagged Inconsistent instead.
func Replay(transactions []model.Transaction, assets map[string]model.Asset) LedgerResult {
	ordered := make([]model.Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	holdings := make(map[holdingKey]*Holding)
	keys := []holdingKey{}
	result := LedgerResult{}

	for _, t := range ordered {
		key := holdingKey{portfolioID: t.PortfolioID, assetID: t.AssetID}
		h, ok := holdings[key]
		if !ok {
			h = &Holding{PortfolioID: t.PortfolioID, AssetID: t.AssetID}
			holdings[key] = h
			keys = append(keys, key)
		}

		cash := assets[t.AssetID].IsCash()

		switch t.Type {
		case model.TransactionBuy:
			amount := t.Quantity * t.Price
			if cash {
				amount = t.Quantity
			}
			cost := amount + t.Fee

			h.Quantity += t.Quantity
			h.CostBasis += cost
			if !cash {
				result.TotalCapitalInvested += cost
			}

		case model.TransactionSell:
			avgCost := 0.0
			if h.Quantity > 0 {
				avgCost = h.CostBasis / h.Quantity
			} else {
				// Selling from an empty position; avgCost stays 0 so the math
				// cannot divide by zero.
				h.Inconsistent = true
			}
			costOfSold := t.Quantity * avgCost

			h.Quantity -= t.Quantity
			h.CostBasis -= costOfSold
			if h.Quantity <= 0 || h.CostBasis < 0 {
				h.CostBasis = 0
			}
			if h.Quantity < 0 {
				h.Inconsistent = true
			}

			if !cash {
				proceeds := t.Quantity*t.Price - t.Fee
				realized := proceeds - costOfSold
				h.RealizedGainLoss += realized
				result.TotalRealizedGainLoss += realized
				result.TotalCapitalInvested -= costOfSold
			}
		}
	}

	// Deterministic output order regardless of map iteration.
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].portfolioID != keys[j].portfolioID {
			return keys[i].portfolioID < keys[j].portfolioID
		}
		return keys[i].assetID < keys[j].assetID
	})

	result.Holdings = make([]Holding, 0, len(keys))
	for _, key := range keys {
		h := holdings[key]
		if h.Inconsistent {
			result.Inconsistent = true
		}
		result.Holdings = append(result.Holdings, *h)
	}

	return result
}
