package marketdata

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/AlessioMurgia/capitaltracker/internal/apperrors"
)

// Client fetches daily quotes for ticker symbols. Implemented by the Alpha
// Vantage client below and by test doubles.
type Client interface {
	GetQuote(symbol, apiKey string) (Quote, error)
}

// AlphaVantageClient provides methods for fetching quote data from the Alpha
// Vantage API. It wraps an HTTP client and handles the string-typed numeric
// payload the API returns.
type AlphaVantageClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAlphaVantageClient creates a new client with default HTTP settings.
func NewAlphaVantageClient(baseURL string) *AlphaVantageClient {
	return &AlphaVantageClient{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// GetQuote fetches the latest daily quote for a symbol.
//
// Returns:
//   - Quote: Parsed quote with price and previous close
//   - error: If the HTTP request fails, the API rejects the request, or the
//     symbol is unknown (ErrSymbolNotFound)
func (c *AlphaVantageClient) GetQuote(symbol, apiKey string) (Quote, error) {
	endpoint := fmt.Sprintf(
		"%s/query?function=GLOBAL_QUOTE&symbol=%s&apikey=%s",
		c.baseURL,
		url.QueryEscape(symbol),
		url.QueryEscape(apiKey),
	)

	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return Quote{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Quote{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Quote{}, err
	}

	var response quoteResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return Quote{}, err
	}

	if response.ErrorMsg != "" {
		return Quote{}, fmt.Errorf("market data error: %s", response.ErrorMsg)
	}
	// A Note without quote data means the rate limit was hit.
	if response.Note != "" && response.GlobalQuote.Symbol == "" {
		return Quote{}, fmt.Errorf("market data rate limited: %s", response.Note)
	}
	if response.GlobalQuote.Symbol == "" {
		return Quote{}, apperrors.ErrSymbolNotFound
	}

	price, err := strconv.ParseFloat(response.GlobalQuote.Price, 64)
	if err != nil {
		return Quote{}, fmt.Errorf("failed to parse quote price: %w", err)
	}

	previousClose, err := strconv.ParseFloat(response.GlobalQuote.PreviousClose, 64)
	if err != nil {
		previousClose = 0
	}

	return Quote{
		Symbol:        response.GlobalQuote.Symbol,
		Price:         price,
		PreviousClose: previousClose,
		TradingDay:    response.GlobalQuote.LatestTradingDay,
	}, nil
}
