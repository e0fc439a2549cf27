package service_test

import (
	"errors"
	"testing"

	"github.com/AlessioMurgia/capitaltracker/internal/api/request"
	"github.com/AlessioMurgia/capitaltracker/internal/apperrors"
	"github.com/AlessioMurgia/capitaltracker/internal/marketdata"
	"github.com/AlessioMurgia/capitaltracker/internal/model"
	"github.com/AlessioMurgia/capitaltracker/internal/testutil"
)

// mockMarketDataClient is a test double for the market data API.
type mockMarketDataClient struct {
	quotes map[string]marketdata.Quote
	errs   map[string]error
	calls  []string
}

func (m *mockMarketDataClient) GetQuote(symbol, apiKey string) (marketdata.Quote, error) {
	m.calls = append(m.calls, symbol)
	if err, ok := m.errs[symbol]; ok {
		return marketdata.Quote{}, err
	}
	quote, ok := m.quotes[symbol]
	if !ok {
		return marketdata.Quote{}, apperrors.ErrSymbolNotFound
	}
	return quote, nil
}

// TestValuationService_CreateValuation tests manual valuation writes.
//
// WHY: Manual valuations are the only pricing channel for unlisted assets.
// A write for an existing (asset, date) pair must overwrite rather than
// duplicate, and any valuation write must drop stored history.
func TestValuationService_CreateValuation(t *testing.T) {
	t.Run("creates a manual valuation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db, &mockMarketDataClient{})

		asset := testutil.CreateAsset(t, db, "Acme Corp", model.ClassStock)

		v, err := svc.CreateValuation(request.CreateValuationRequest{
			AssetID: asset.ID,
			Date:    "2023-03-01",
			Value:   123.45,
		})
		if err != nil {
			t.Fatalf("CreateValuation() returned unexpected error: %v", err)
		}

		if v.Source != model.SourceManual {
			t.Errorf("Expected source MANUAL, got %q", v.Source)
		}
		testutil.AssertRowCount(t, db, "asset_valuation", 1)
	})

	t.Run("same asset and date overwrites", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db, &mockMarketDataClient{})

		asset := testutil.CreateAsset(t, db, "Acme Corp", model.ClassStock)

		for _, value := range []float64{100, 110} {
			_, err := svc.CreateValuation(request.CreateValuationRequest{
				AssetID: asset.ID,
				Date:    "2023-03-01",
				Value:   value,
			})
			if err != nil {
				t.Fatalf("CreateValuation() returned unexpected error: %v", err)
			}
		}

		testutil.AssertRowCount(t, db, "asset_valuation", 1)

		valuations, err := svc.GetValuations(asset.ID)
		if err != nil {
			t.Fatalf("GetValuations() returned unexpected error: %v", err)
		}
		if len(valuations) != 1 || valuations[0].Value != 110 {
			t.Errorf("Expected single valuation of 110, got %+v", valuations)
		}
	})

	t.Run("write drops stored history for every portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db, &mockMarketDataClient{})
		historySvc := testutil.NewTestHistoryService(t, db)

		portfolio := testutil.CreatePortfolio(t, db, "Main")
		asset := testutil.CreateAsset(t, db, "Acme Corp", model.ClassStock)
		testutil.CreateBuy(t, db, portfolio.ID, asset.ID, "2023-01-01", 10, 100)
		testutil.CreateValuation(t, db, asset.ID, "2023-01-01", 100)

		if _, err := historySvc.GetPortfolioHistory(portfolio.ID); err != nil {
			t.Fatalf("GetPortfolioHistory() returned unexpected error: %v", err)
		}
		if testutil.CountRows(t, db, "portfolio_value_snapshot") == 0 {
			t.Fatal("Expected stored snapshots before the valuation write")
		}

		_, err := svc.CreateValuation(request.CreateValuationRequest{
			AssetID: asset.ID,
			Date:    "2023-06-01",
			Value:   150,
		})
		if err != nil {
			t.Fatalf("CreateValuation() returned unexpected error: %v", err)
		}

		testutil.AssertRowCount(t, db, "portfolio_value_snapshot", 0)
	})

	t.Run("rejects unknown asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db, &mockMarketDataClient{})

		_, err := svc.CreateValuation(request.CreateValuationRequest{
			AssetID: testutil.MakeID(),
			Date:    "2023-03-01",
			Value:   100,
		})
		if !errors.Is(err, apperrors.ErrAssetNotFound) {
			t.Errorf("Expected ErrAssetNotFound, got %v", err)
		}
	})
}

// TestValuationService_RefreshFromMarketData tests the quote refresh run.
//
// WHY: The nightly refresh must keep going when a single symbol fails, skip
// assets that cannot be quoted, and store fetched prices as API-sourced
// valuations dated to the quote's trading day.
func TestValuationService_RefreshFromMarketData(t *testing.T) {
	t.Run("stores quotes and reports skips and failures", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		systemSvc := testutil.NewTestSystemService(t, db)
		if err := systemSvc.SetMarketDataKey("test-api-key"); err != nil {
			t.Fatalf("SetMarketDataKey() returned unexpected error: %v", err)
		}

		mock := &mockMarketDataClient{
			quotes: map[string]marketdata.Quote{
				"ACME": {Symbol: "ACME", Price: 150.5, TradingDay: "2023-06-01"},
			},
			errs: map[string]error{
				"BROKEN": errors.New("rate limited"),
			},
		}
		svc := testutil.NewTestValuationService(t, db, mock)

		quoted := testutil.NewAsset().WithName("Acme Corp").WithSymbol("ACME").Build(t, db)
		testutil.NewAsset().WithName("Broken Corp").WithSymbol("BROKEN").Build(t, db)
		testutil.CreateAsset(t, db, "Unlisted Corp", model.ClassStock)
		testutil.CreateCashAsset(t, db, "Savings Account")

		result, err := svc.RefreshFromMarketData()
		if err != nil {
			t.Fatalf("RefreshFromMarketData() returned unexpected error: %v", err)
		}

		if result.Refreshed != 1 {
			t.Errorf("Expected 1 refreshed, got %d", result.Refreshed)
		}
		if result.Skipped != 2 {
			t.Errorf("Expected 2 skipped (no symbol, cash), got %d", result.Skipped)
		}
		if len(result.Failed) != 1 || result.Failed["BROKEN"] == "" {
			t.Errorf("Expected BROKEN in failures, got %v", result.Failed)
		}

		valuations, err := svc.GetValuations(quoted.ID)
		if err != nil {
			t.Fatalf("GetValuations() returned unexpected error: %v", err)
		}
		if len(valuations) != 1 {
			t.Fatalf("Expected 1 valuation, got %d", len(valuations))
		}
		if valuations[0].Value != 150.5 {
			t.Errorf("Expected value 150.5, got %v", valuations[0].Value)
		}
		if valuations[0].Source != model.SourceAPI {
			t.Errorf("Expected source API, got %q", valuations[0].Source)
		}
		if valuations[0].Date.Format("2006-01-02") != "2023-06-01" {
			t.Errorf("Expected valuation dated 2023-06-01, got %s", valuations[0].Date.Format("2006-01-02"))
		}
	})

	t.Run("fails without a configured API key", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db, &mockMarketDataClient{})

		_, err := svc.RefreshFromMarketData()
		if err == nil {
			t.Error("Expected error without a configured API key, got nil")
		}
	})

	t.Run("does not call the API for cash or symbolless assets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)

		systemSvc := testutil.NewTestSystemService(t, db)
		if err := systemSvc.SetMarketDataKey("test-api-key"); err != nil {
			t.Fatalf("SetMarketDataKey() returned unexpected error: %v", err)
		}

		mock := &mockMarketDataClient{}
		svc := testutil.NewTestValuationService(t, db, mock)

		testutil.CreateAsset(t, db, "Unlisted Corp", model.ClassStock)
		testutil.CreateCashAsset(t, db, "Savings Account")

		result, err := svc.RefreshFromMarketData()
		if err != nil {
			t.Fatalf("RefreshFromMarketData() returned unexpected error: %v", err)
		}

		if len(mock.calls) != 0 {
			t.Errorf("Expected no API calls, got %v", mock.calls)
		}
		if result.Skipped != 2 {
			t.Errorf("Expected 2 skipped, got %d", result.Skipped)
		}
	})
}

// TestValuationService_DeleteValuation tests valuation removal.
//
// WHY: Removing a valuation changes history, so the stored snapshots must be
// dropped along with the record.
func TestValuationService_DeleteValuation(t *testing.T) {
	t.Run("removes the record", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db, &mockMarketDataClient{})

		asset := testutil.CreateAsset(t, db, "Acme Corp", model.ClassStock)
		v := testutil.CreateValuation(t, db, asset.ID, "2023-01-01", 100)

		if err := svc.DeleteValuation(v.ID); err != nil {
			t.Fatalf("DeleteValuation() returned unexpected error: %v", err)
		}
		testutil.AssertRowCount(t, db, "asset_valuation", 0)
	})

	t.Run("returns not found for unknown valuation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestValuationService(t, db, &mockMarketDataClient{})

		err := svc.DeleteValuation(testutil.MakeID())
		if !errors.Is(err, apperrors.ErrValuationNotFound) {
			t.Errorf("Expected ErrValuationNotFound, got %v", err)
		}
	})
}
