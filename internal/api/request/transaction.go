package request

type CreateTransactionRequest struct {
	PortfolioID string  `json:"portfolioId"`
	AssetID     string  `json:"assetId"`
	Type        string  `json:"type"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Fee         float64 `json:"fee"`
	Date        string  `json:"date"`
}

type UpdateTransactionRequest struct {
	AssetID  *string  `json:"assetId,omitempty"`
	Type     *string  `json:"type,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Price    *float64 `json:"price,omitempty"`
	Fee      *float64 `json:"fee,omitempty"`
	Date     *string  `json:"date,omitempty"`
}
