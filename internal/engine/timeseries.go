package engine

import (
	"sort"
	"time"

	"github.com/AlessioMurgia/capitaltracker/internal/model"
)

// TimeSeriesPoint is the total portfolio value on a single date.
type TimeSeriesPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// AllocationRow is the value held per asset class on a single date. Rows are
// cumulative snapshots, not deltas.
type AllocationRow struct {
	Date   time.Time          `json:"date"`
	Values map[string]float64 `json:"values"`
}

// ReconstructValueSeries replays the snapshot across every distinct historical
// date (the union of transaction and valuation dates) and produces the total
// portfolio value per date. If the last such date is earlier than today, a
// point for today is appended, carrying the value forward.
//
// For each date D the open quantity per asset is the cumulative BUY-SELL sum of
// transactions with date <= D, valued at the latest valuation <= D. Gaps in
// valuation data are forward-filled by that lookup; there is no interpolation.
// The replay is deliberately naive, O(dates x transactions); personal-portfolio
// volumes make that a non-issue.
func ReconstructValueSeries(snap Snapshot, today time.Time) []TimeSeriesPoint {
	dates := seriesDates(snap, today)
	if len(dates) == 0 {
		return []TimeSeriesPoint{}
	}

	index := NewValuationIndex(snap.Valuations)
	assets := snap.AssetIndex()

	points := make([]TimeSeriesPoint, 0, len(dates))
	for _, date := range dates {
		var total float64
		for assetID, qty := range quantitiesAsOf(snap.Transactions, date) {
			if qty > Epsilon {
				total += assetValueAsOf(index, assets[assetID], assetID, qty, date)
			}
		}
		points = append(points, TimeSeriesPoint{Date: date, Value: total})
	}

	return points
}

// ReconstructAllocationSeries produces the value held per asset class for every
// distinct historical date, using the same cumulative-quantity logic as the
// value series.
//
// A class with no open position on a date but with a position on an earlier
// date forward-fills its last known value rather than dropping to zero; only
// classes that never had a position up to that date report 0.
func ReconstructAllocationSeries(snap Snapshot, today time.Time) []AllocationRow {
	dates := seriesDates(snap, today)
	if len(dates) == 0 {
		return []AllocationRow{}
	}

	index := NewValuationIndex(snap.Valuations)
	assets := snap.AssetIndex()
	classes := transactedClasses(snap.Transactions, assets)

	lastKnown := make(map[string]float64)
	rows := make([]AllocationRow, 0, len(dates))

	for _, date := range dates {
		perClass := make(map[string]float64)
		for assetID, qty := range quantitiesAsOf(snap.Transactions, date) {
			if qty > Epsilon {
				perClass[classLabel(assets[assetID])] += assetValueAsOf(index, assets[assetID], assetID, qty, date)
			}
		}

		values := make(map[string]float64, len(classes))
		for _, class := range classes {
			if v, open := perClass[class]; open {
				values[class] = v
				lastKnown[class] = v
			} else if v, seen := lastKnown[class]; seen {
				values[class] = v
			} else {
				values[class] = 0
			}
		}

		rows = append(rows, AllocationRow{Date: date, Values: values})
	}

	return rows
}

// seriesDates returns the sorted, deduplicated union of transaction and
// valuation dates, with today appended when the last point would otherwise be
// in the past.
func seriesDates(snap Snapshot, today time.Time) []time.Time {
	seen := make(map[time.Time]bool)
	dates := []time.Time{}

	add := func(d time.Time) {
		if !seen[d] {
			seen[d] = true
			dates = append(dates, d)
		}
	}
	for _, t := range snap.Transactions {
		add(t.Date)
	}
	for _, v := range snap.Valuations {
		add(v.Date)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	if len(dates) > 0 && dates[len(dates)-1].Before(today) {
		dates = append(dates, today)
	}

	return dates
}

// quantitiesAsOf computes the open quantity per asset as the cumulative
// BUY-SELL sum of transactions with date <= asOf.
func quantitiesAsOf(transactions []model.Transaction, asOf time.Time) map[string]float64 {
	quantities := make(map[string]float64)
	for _, t := range transactions {
		if t.Date.After(asOf) {
			continue
		}
		switch t.Type {
		case model.TransactionBuy:
			quantities[t.AssetID] += t.Quantity
		case model.TransactionSell:
			quantities[t.AssetID] -= t.Quantity
		}
	}
	return quantities
}

// assetValueAsOf values an open quantity at the latest valuation <= asOf.
// Cash-class assets take the raw valuation as their balance, falling back to
// the running balance when no valuation exists; everything else is quantity
// times price, or 0 while no valuation exists.
func assetValueAsOf(index *ValuationIndex, asset model.Asset, assetID string, qty float64, asOf time.Time) float64 {
	v, ok := index.LatestAsOf(assetID, asOf)
	if asset.IsCash() {
		if ok {
			return v.Value
		}
		return qty
	}
	if !ok {
		return 0
	}
	return qty * v.Value
}

// transactedClasses returns the sorted distinct class labels of assets that
// appear in the transaction stream.
func transactedClasses(transactions []model.Transaction, assets map[string]model.Asset) []string {
	seen := make(map[string]bool)
	classes := []string{}
	for _, t := range transactions {
		label := classLabel(assets[t.AssetID])
		if !seen[label] {
			seen[label] = true
			classes = append(classes, label)
		}
	}
	sort.Strings(classes)
	return classes
}

func classLabel(asset model.Asset) string {
	if asset.Class == "" {
		return model.Uncategorized
	}
	return asset.Class
}
