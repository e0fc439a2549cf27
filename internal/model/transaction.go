package model

import "time"

// Transaction types.
const (
	TransactionBuy  = "BUY"
	TransactionSell = "SELL"
)

// Transaction represents a buy or sell of an asset within a portfolio.
// Replay order is by date ascending; ties on the same date are broken by
// insertion order (CreatedAt, then ID).
type Transaction struct {
	ID          string    `json:"id"`
	PortfolioID string    `json:"portfolioId"`
	AssetID     string    `json:"assetId"`
	Type        string    `json:"type"`
	Quantity    float64   `json:"quantity"`
	Price       float64   `json:"price"` // Price per unit, currency-agnostic
	Fee         float64   `json:"fee"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// TransactionResponse represents a transaction with enriched data for API responses.
type TransactionResponse struct {
	ID          string    `json:"id"`
	PortfolioID string    `json:"portfolioId"`
	AssetID     string    `json:"assetId"`
	AssetName   string    `json:"assetName"`
	Type        string    `json:"type"`
	Quantity    float64   `json:"quantity"`
	Price       float64   `json:"price"`
	Fee         float64   `json:"fee"`
	Date        time.Time `json:"date"`
}
