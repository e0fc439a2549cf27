package request

type CreateAssetRequest struct {
	Name      string `json:"name"`
	Class     string `json:"class"`
	Symbol    string `json:"symbol"`
	Sector    string `json:"sector"`
	Geography string `json:"geography"`
	Platform  string `json:"platform"`
}

type UpdateAssetRequest struct {
	Name      *string `json:"name,omitempty"`
	Class     *string `json:"class,omitempty"`
	Symbol    *string `json:"symbol,omitempty"`
	Sector    *string `json:"sector,omitempty"`
	Geography *string `json:"geography,omitempty"`
	Platform  *string `json:"platform,omitempty"`
}
