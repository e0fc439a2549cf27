package engine

import (
	"sort"

	"github.com/AlessioMurgia/capitaltracker/internal/model"
)

// AggregationPair is a grouped (label, value) result ready for presentation.
// The presentation layer decides ordering and colors; pairs are returned sorted
// by label only so identical inputs yield identical output.
type AggregationPair struct {
	Label string  `json:"name"`
	Value float64 `json:"value"`
}

// KeyFunc extracts a grouping label from asset metadata.
type KeyFunc func(model.Asset) string

// Built-in key extractors for the classification dimensions carried on assets.
// Absent metadata maps to the Uncategorized label.
var (
	ByClass     KeyFunc = func(a model.Asset) string { return orUncategorized(a.Class) }
	BySector    KeyFunc = func(a model.Asset) string { return orUncategorized(a.Sector) }
	ByGeography KeyFunc = func(a model.Asset) string { return orUncategorized(a.Geography) }
	ByPlatform  KeyFunc = func(a model.Asset) string { return orUncategorized(a.Platform) }
)

// GroupStates buckets valued positions by the extracted key and sums their
// current values. Buckets whose total is <= Epsilon are dropped; they are
// zero-value noise on a chart.
func GroupStates(states []PortfolioState, assets map[string]model.Asset, key KeyFunc) []AggregationPair {
	totals := make(map[string]float64)
	for _, s := range states {
		totals[key(assets[s.AssetID])] += s.CurrentValue
	}

	pairs := make([]AggregationPair, 0, len(totals))
	for label, value := range totals {
		if value <= Epsilon {
			continue
		}
		pairs = append(pairs, AggregationPair{Label: label, Value: value})
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Label < pairs[j].Label })
	return pairs
}

func orUncategorized(label string) string {
	if label == "" {
		return model.Uncategorized
	}
	return label
}
