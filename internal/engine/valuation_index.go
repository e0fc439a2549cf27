package engine

import (
	"sort"
	"time"

	"github.com/AlessioMurgia/capitaltracker/internal/model"
)

// ValuationIndex is a read-only view over valuation records, indexed by asset
// and sorted by date. It answers "latest known value of asset X as of date D"
// in O(log n) and "latest overall" in O(1).
type ValuationIndex struct {
	byAsset map[string][]model.Valuation
}

// NewValuationIndex builds the index from raw valuation records. The input is
// not mutated. When the same asset carries multiple valuations for the same
// date, the latest inserted record wins and the earlier ones are discarded.
func NewValuationIndex(valuations []model.Valuation) *ValuationIndex {
	byAsset := make(map[string][]model.Valuation)
	for _, v := range valuations {
		byAsset[v.AssetID] = append(byAsset[v.AssetID], v)
	}

	for assetID, vals := range byAsset {
		// Stable keeps insertion order within a date, so the last record for a
		// duplicated date is the latest inserted one.
		sort.SliceStable(vals, func(i, j int) bool {
			return vals[i].Date.Before(vals[j].Date)
		})

		deduped := vals[:0]
		for i, v := range vals {
			if i+1 < len(vals) && vals[i+1].Date.Equal(v.Date) {
				continue
			}
			deduped = append(deduped, v)
		}
		byAsset[assetID] = deduped
	}

	return &ValuationIndex{byAsset: byAsset}
}

// LatestAsOf returns the most recent valuation for the asset with date <= asOf.
// Returns false when the asset has no valuation on or before that date; this is
// not an error, the asset simply contributes no value yet.
func (ix *ValuationIndex) LatestAsOf(assetID string, asOf time.Time) (model.Valuation, bool) {
	vals := ix.byAsset[assetID]
	if len(vals) == 0 {
		return model.Valuation{}, false
	}

	// First index strictly after asOf; the record before it is the answer.
	i := sort.Search(len(vals), func(i int) bool {
		return vals[i].Date.After(asOf)
	})
	if i == 0 {
		return model.Valuation{}, false
	}
	return vals[i-1], true
}

// Latest returns the single most recent valuation for the asset, regardless of
// date. Returns false when the asset has no valuations at all.
func (ix *ValuationIndex) Latest(assetID string) (model.Valuation, bool) {
	vals := ix.byAsset[assetID]
	if len(vals) == 0 {
		return model.Valuation{}, false
	}
	return vals[len(vals)-1], true
}
