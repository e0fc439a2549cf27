package model

import "time"

// Valuation sources. Informational only; the source tag never affects computation.
const (
	SourceAPI    = "API"
	SourceManual = "MANUAL"
)

// Valuation represents a known value for an asset on a date: a price per unit,
// or for cash-like assets the absolute balance. Multiple valuations may exist
// for the same asset and date; the latest inserted wins.
type Valuation struct {
	ID        string    `json:"id"`
	AssetID   string    `json:"assetId"`
	Date      time.Time `json:"date"`
	Value     float64   `json:"value"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// ValueSnapshot represents a pre-calculated total portfolio value for a specific
// date, stored in the portfolio_value_snapshot table for fast history retrieval.
type ValueSnapshot struct {
	ID           string    // Primary key
	PortfolioID  string    // Portfolio identifier
	Date         time.Time // Date of this snapshot
	Value        float64   // Total portfolio value on this date
	CalculatedAt time.Time // When this record was calculated
}
