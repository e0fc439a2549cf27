package marketdata

// quoteResponse mirrors the Alpha Vantage GLOBAL_QUOTE payload. All numeric
// fields arrive as JSON strings.
type quoteResponse struct {
	GlobalQuote globalQuote `json:"Global Quote"`
	Note        string      `json:"Note"`
	ErrorMsg    string      `json:"Error Message"`
}

type globalQuote struct {
	Symbol           string `json:"01. symbol"`
	Open             string `json:"02. open"`
	High             string `json:"03. high"`
	Low              string `json:"04. low"`
	Price            string `json:"05. price"`
	Volume           string `json:"06. volume"`
	LatestTradingDay string `json:"07. latest trading day"`
	PreviousClose    string `json:"08. previous close"`
	Change           string `json:"09. change"`
	ChangePercent    string `json:"10. change percent"`
}

// Quote is the parsed daily quote for a symbol.
type Quote struct {
	Symbol        string
	Price         float64
	PreviousClose float64
	TradingDay    string
}
