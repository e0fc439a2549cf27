package request

type CreateValuationRequest struct {
	AssetID string  `json:"assetId"`
	Date    string  `json:"date"`
	Value   float64 `json:"value"`
}

type MarketDataKeyRequest struct {
	APIKey string `json:"apiKey"`
}
