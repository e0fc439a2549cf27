package model

// Portfolio represents a portfolio from the database
type Portfolio struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsArchived  bool   `json:"isArchived"`
}

// PortfolioFilter for querying portfolios
type PortfolioFilter struct {
	IncludeArchived bool
}

// PortfolioSummary represents the current state of a portfolio.
// It includes valuation, cost basis, gains/losses (both realized and unrealized)
// and the cumulative non-cash capital invested. All monetary values are rounded
// to two decimal places.
type PortfolioSummary struct {
	ID                      string  `json:"id"`
	Name                    string  `json:"name"`
	Description             string  `json:"description"`
	TotalValue              float64 `json:"totalValue"`              // Current market value
	TotalCost               float64 `json:"totalCost"`               // Current cost basis of open positions
	TotalUnrealizedGainLoss float64 `json:"totalUnrealizedGainLoss"` // Unrealized gain/loss
	TotalRealizedGainLoss   float64 `json:"totalRealizedGainLoss"`   // Realized gain/loss from sales
	TotalGainLoss           float64 `json:"totalGainLoss"`           // Combined realized + unrealized
	CapitalInvested         float64 `json:"capitalInvested"`         // Non-cash capital committed
	Inconsistent            bool    `json:"inconsistent"`            // Transaction history implies an oversell
	IsArchived              bool    `json:"isArchived"`
}

// PositionResponse is a valued open position enriched with asset metadata for
// API responses.
type PositionResponse struct {
	AssetID            string  `json:"assetId"`
	AssetName          string  `json:"assetName"`
	AssetClass         string  `json:"assetClass"`
	Quantity           float64 `json:"quantity"`
	CostBasis          float64 `json:"costBasis"`
	Price              float64 `json:"price"`
	CurrentValue       float64 `json:"currentValue"`
	UnrealizedGainLoss float64 `json:"unrealizedGainLoss"`
	RealizedGainLoss   float64 `json:"realizedGainLoss"`
	Inconsistent       bool    `json:"inconsistent"`
}

// PortfolioStateResponse combines a portfolio's summary with its valued
// positions.
type PortfolioStateResponse struct {
	Summary   PortfolioSummary   `json:"summary"`
	Positions []PositionResponse `json:"positions"`
}

// OverviewResponse aggregates the state of every active portfolio.
type OverviewResponse struct {
	Portfolios      []PortfolioSummary `json:"portfolios"`
	TotalValue      float64            `json:"totalValue"`
	TotalGainLoss   float64            `json:"totalGainLoss"`
	CapitalInvested float64            `json:"capitalInvested"`
	Inconsistent    bool               `json:"inconsistent"`
}

// PortfolioHistoryPoint represents the total portfolio value on a single date.
type PortfolioHistoryPoint struct {
	Date  string  `json:"date"` // Date in YYYY-MM-DD format
	Value float64 `json:"value"`
}

// AllocationHistoryRow represents the value held per asset class on a single date.
// Rows are cumulative snapshots, not deltas.
type AllocationHistoryRow struct {
	Date   string             `json:"date"`
	Values map[string]float64 `json:"values"`
}
