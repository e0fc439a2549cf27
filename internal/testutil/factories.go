package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/AlessioMurgia/capitaltracker/internal/model"
)

// PortfolioBuilder provides a fluent interface for creating test portfolios.
//
// Example usage:
//
//	// Simple creation with defaults
//	portfolio := testutil.NewPortfolio().Build(t, db)
//
//	// Customized portfolio
//	portfolio := testutil.NewPortfolio().
//	    WithName("Custom Portfolio").
//	    Archived().
//	    Build(t, db)
type PortfolioBuilder struct {
	ID          string
	Name        string
	Description string
	IsArchived  bool
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio() *PortfolioBuilder {
	return &PortfolioBuilder{
		ID:          MakeID(),
		Name:        MakeName("Test Portfolio"),
		Description: "Test description",
	}
}

// WithID sets a custom ID.
func (b *PortfolioBuilder) WithID(id string) *PortfolioBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// Archived marks the portfolio as archived.
func (b *PortfolioBuilder) Archived() *PortfolioBuilder {
	b.IsArchived = true
	return b
}

// Build creates the portfolio in the database and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	query := `
		INSERT INTO portfolio (id, name, description, is_archived)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Description, b.IsArchived)
	if err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}

	return model.Portfolio{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		IsArchived:  b.IsArchived,
	}
}

// AssetBuilder provides a fluent interface for creating test assets.
type AssetBuilder struct {
	ID        string
	Name      string
	Class     string
	Symbol    string
	Sector    string
	Geography string
	Platform  string
}

// NewAsset creates an AssetBuilder with stock defaults.
func NewAsset() *AssetBuilder {
	return &AssetBuilder{
		ID:    MakeID(),
		Name:  MakeName("Test Asset"),
		Class: model.ClassStock,
	}
}

// WithID sets a custom ID.
func (b *AssetBuilder) WithID(id string) *AssetBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *AssetBuilder) WithName(name string) *AssetBuilder {
	b.Name = name
	return b
}

// WithClass sets the asset class.
func (b *AssetBuilder) WithClass(class string) *AssetBuilder {
	b.Class = class
	return b
}

// Cash marks the asset as cash-like.
func (b *AssetBuilder) Cash() *AssetBuilder {
	b.Class = model.ClassCash
	return b
}

// WithSymbol sets a ticker symbol for market data refresh.
func (b *AssetBuilder) WithSymbol(symbol string) *AssetBuilder {
	b.Symbol = symbol
	return b
}

// WithSector sets the sector label.
func (b *AssetBuilder) WithSector(sector string) *AssetBuilder {
	b.Sector = sector
	return b
}

// WithGeography sets the geography label.
func (b *AssetBuilder) WithGeography(geography string) *AssetBuilder {
	b.Geography = geography
	return b
}

// WithPlatform sets the platform label.
func (b *AssetBuilder) WithPlatform(platform string) *AssetBuilder {
	b.Platform = platform
	return b
}

// Build creates the asset in the database and returns it.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	query := `
		INSERT INTO asset (id, name, class, symbol, sector, geography, platform)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Class, b.Symbol, b.Sector, b.Geography, b.Platform)
	if err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}

	return model.Asset{
		ID:        b.ID,
		Name:      b.Name,
		Class:     b.Class,
		Symbol:    b.Symbol,
		Sector:    b.Sector,
		Geography: b.Geography,
		Platform:  b.Platform,
	}
}

// TransactionBuilder provides a fluent interface for creating test transactions.
type TransactionBuilder struct {
	ID          string
	PortfolioID string
	AssetID     string
	Type        string
	Quantity    float64
	Price       float64
	Fee         float64
	Date        string
	CreatedAt   time.Time
}

// NewTransaction creates a TransactionBuilder for a buy of 10 units at 100.
func NewTransaction(portfolioID, assetID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:          MakeID(),
		PortfolioID: portfolioID,
		AssetID:     assetID,
		Type:        model.TransactionBuy,
		Quantity:    10,
		Price:       100,
		Date:        "2023-01-01",
		CreatedAt:   time.Now().UTC(),
	}
}

// Sell turns the transaction into a sell.
func (b *TransactionBuilder) Sell() *TransactionBuilder {
	b.Type = model.TransactionSell
	return b
}

// WithQuantity sets the quantity.
func (b *TransactionBuilder) WithQuantity(quantity float64) *TransactionBuilder {
	b.Quantity = quantity
	return b
}

// WithPrice sets the unit price.
func (b *TransactionBuilder) WithPrice(price float64) *TransactionBuilder {
	b.Price = price
	return b
}

// WithFee sets the transaction fee.
func (b *TransactionBuilder) WithFee(fee float64) *TransactionBuilder {
	b.Fee = fee
	return b
}

// WithDate sets the transaction date (YYYY-MM-DD).
func (b *TransactionBuilder) WithDate(date string) *TransactionBuilder {
	b.Date = date
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO portfolio_transaction (id, portfolio_id, asset_id, type, quantity, price, fee, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.PortfolioID, b.AssetID, b.Type, b.Quantity, b.Price, b.Fee,
		b.Date, b.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	date, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		t.Fatalf("Invalid test transaction date: %v", err)
	}

	return model.Transaction{
		ID:          b.ID,
		PortfolioID: b.PortfolioID,
		AssetID:     b.AssetID,
		Type:        b.Type,
		Quantity:    b.Quantity,
		Price:       b.Price,
		Fee:         b.Fee,
		Date:        date,
		CreatedAt:   b.CreatedAt,
	}
}

// CreatePortfolio creates an active portfolio with the given name.
func CreatePortfolio(t *testing.T, db *sql.DB, name string) model.Portfolio {
	t.Helper()
	return NewPortfolio().WithName(name).Build(t, db)
}

// CreateArchivedPortfolio creates an archived portfolio with the given name.
func CreateArchivedPortfolio(t *testing.T, db *sql.DB, name string) model.Portfolio {
	t.Helper()
	return NewPortfolio().WithName(name).Archived().Build(t, db)
}

// CreateAsset creates an asset with the given name and class.
func CreateAsset(t *testing.T, db *sql.DB, name, class string) model.Asset {
	t.Helper()
	return NewAsset().WithName(name).WithClass(class).Build(t, db)
}

// CreateCashAsset creates a cash-class asset with the given name.
func CreateCashAsset(t *testing.T, db *sql.DB, name string) model.Asset {
	t.Helper()
	return NewAsset().WithName(name).Cash().Build(t, db)
}

// CreateBuy creates a buy transaction on the given date.
func CreateBuy(t *testing.T, db *sql.DB, portfolioID, assetID, date string, quantity, price float64) model.Transaction {
	t.Helper()
	return NewTransaction(portfolioID, assetID).
		WithDate(date).
		WithQuantity(quantity).
		WithPrice(price).
		Build(t, db)
}

// CreateSell creates a sell transaction on the given date.
func CreateSell(t *testing.T, db *sql.DB, portfolioID, assetID, date string, quantity, price float64) model.Transaction {
	t.Helper()
	return NewTransaction(portfolioID, assetID).
		Sell().
		WithDate(date).
		WithQuantity(quantity).
		WithPrice(price).
		Build(t, db)
}

// CreateValuation creates a manual valuation on the given date.
func CreateValuation(t *testing.T, db *sql.DB, assetID, date string, value float64) model.Valuation {
	t.Helper()
	return NewValuation(assetID).WithDate(date).WithValue(value).Build(t, db)
}

// ValuationBuilder provides a fluent interface for creating test valuations.
type ValuationBuilder struct {
	ID      string
	AssetID string
	Date    string
	Value   float64
	Source  string
}

// NewValuation creates a ValuationBuilder with manual source defaults.
func NewValuation(assetID string) *ValuationBuilder {
	return &ValuationBuilder{
		ID:      MakeID(),
		AssetID: assetID,
		Date:    "2023-01-01",
		Value:   100,
		Source:  model.SourceManual,
	}
}

// WithDate sets the valuation date (YYYY-MM-DD).
func (b *ValuationBuilder) WithDate(date string) *ValuationBuilder {
	b.Date = date
	return b
}

// WithValue sets the valuation value.
func (b *ValuationBuilder) WithValue(value float64) *ValuationBuilder {
	b.Value = value
	return b
}

// FromAPI marks the valuation as API-sourced.
func (b *ValuationBuilder) FromAPI() *ValuationBuilder {
	b.Source = model.SourceAPI
	return b
}

// Build creates the valuation in the database and returns it.
func (b *ValuationBuilder) Build(t *testing.T, db *sql.DB) model.Valuation {
	t.Helper()

	query := `
		INSERT INTO asset_valuation (id, asset_id, date, value, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	createdAt := time.Now().UTC()
	_, err := db.Exec(query, b.ID, b.AssetID, b.Date, b.Value, b.Source, createdAt.Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test valuation: %v", err)
	}

	date, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		t.Fatalf("Invalid test valuation date: %v", err)
	}

	return model.Valuation{
		ID:        b.ID,
		AssetID:   b.AssetID,
		Date:      date,
		Value:     b.Value,
		Source:    b.Source,
		CreatedAt: createdAt,
	}
}
