// Package engine implements the portfolio valuation and holdings-reconstruction
// core: average-cost replay of transactions, latest-valuation lookup with
// forward-fill, current-state calculation, historical time-series
// reconstruction, and categorical aggregation.
//
// Everything in this package is a pure function over a fully materialized
// Snapshot. The engine performs no I/O, holds no state between invocations and
// never returns an error: degenerate inputs (missing valuations, oversells,
// empty sets) produce degenerate but well-defined results, because a blank
// chart is preferable to a broken page.
package engine

import "github.com/AlessioMurgia/capitaltracker/internal/model"

// Epsilon is the quantity threshold below which a holding is treated as fully
// closed, and the value threshold below which aggregation buckets are dropped.
// The same threshold is used everywhere in the engine.
const Epsilon = 1e-4

// Snapshot is the engine's input: a point-in-time read of all records relevant
// to a scope (one portfolio or many). The engine only ever reads it.
type Snapshot struct {
	Transactions []model.Transaction
	Valuations   []model.Valuation
	Assets       []model.Asset
}

// AssetIndex returns the snapshot's assets keyed by ID.
func (s Snapshot) AssetIndex() map[string]model.Asset {
	assets := make(map[string]model.Asset, len(s.Assets))
	for _, a := range s.Assets {
		assets[a.ID] = a
	}
	return assets
}
