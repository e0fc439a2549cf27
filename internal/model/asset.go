package model

// Asset classes. Cash is special: its valuation is an absolute balance,
// not a per-unit price.
const (
	ClassCash           = "Cash"
	ClassStock          = "Stock"
	ClassETF            = "ETF"
	ClassRealEstate     = "Real Estate"
	ClassVentureCapital = "Venture Capital"
	ClassOther          = "Other"
)

// Uncategorized is the label substituted for absent classification metadata.
const Uncategorized = "Uncategorized"

// Asset represents an investable asset from the database.
// Sector, geography and platform are free-form classification strings and may
// be empty; presentation maps empty values to Uncategorized.
type Asset struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Class     string `json:"class"`
	Symbol    string `json:"symbol,omitempty"` // Ticker for market-data refresh, optional
	Sector    string `json:"sector,omitempty"`
	Geography string `json:"geography,omitempty"`
	Platform  string `json:"platform,omitempty"`
}

// IsCash reports whether the asset is cash-like, meaning its valuation is a
// balance rather than a per-unit price.
func (a Asset) IsCash() bool {
	return a.Class == ClassCash
}
