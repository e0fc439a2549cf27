package service_test

import (
	"errors"
	"testing"

	"github.com/AlessioMurgia/capitaltracker/internal/apperrors"
	"github.com/AlessioMurgia/capitaltracker/internal/model"
	"github.com/AlessioMurgia/capitaltracker/internal/testutil"
)

// TestPortfolioService_GetPortfolios tests portfolio listing.
//
// WHY: Portfolio retrieval is a fundamental operation. This ensures the service
// correctly returns portfolios from the database and that archived portfolios
// only appear when explicitly requested.
func TestPortfolioService_GetPortfolios(t *testing.T) {
	t.Run("returns empty slice when no portfolios exist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		portfolios, err := svc.GetPortfolios(model.PortfolioFilter{})
		if err != nil {
			t.Fatalf("GetPortfolios() returned unexpected error: %v", err)
		}

		if len(portfolios) != 0 {
			t.Errorf("Expected empty slice, got %d portfolios", len(portfolios))
		}
	})

	t.Run("excludes archived portfolios by default", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		active := testutil.CreatePortfolio(t, db, "Active Portfolio")
		testutil.CreateArchivedPortfolio(t, db, "Archived Portfolio")

		portfolios, err := svc.GetPortfolios(model.PortfolioFilter{})
		if err != nil {
			t.Fatalf("GetPortfolios() returned unexpected error: %v", err)
		}

		if len(portfolios) != 1 {
			t.Fatalf("Expected 1 portfolio, got %d", len(portfolios))
		}
		if portfolios[0].ID != active.ID {
			t.Errorf("Expected active portfolio %s, got %s", active.ID, portfolios[0].ID)
		}
	})

	t.Run("includes archived portfolios when requested", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		testutil.CreatePortfolio(t, db, "Active Portfolio")
		archived := testutil.CreateArchivedPortfolio(t, db, "Archived Portfolio")

		portfolios, err := svc.GetPortfolios(model.PortfolioFilter{IncludeArchived: true})
		if err != nil {
			t.Fatalf("GetPortfolios() returned unexpected error: %v", err)
		}

		if len(portfolios) != 2 {
			t.Fatalf("Expected 2 portfolios, got %d", len(portfolios))
		}

		foundArchived := false
		for _, p := range portfolios {
			if p.ID == archived.ID && p.IsArchived {
				foundArchived = true
			}
		}
		if !foundArchived {
			t.Error("Archived portfolio not found in results")
		}
	})
}

// TestPortfolioService_CreatePortfolio tests portfolio creation.
//
// WHY: Creation must assign a usable ID and persist the record so subsequent
// reads find it.
func TestPortfolioService_CreatePortfolio(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPortfolioService(t, db)

	created, err := svc.CreatePortfolio("Retirement", "Long-term holdings")
	if err != nil {
		t.Fatalf("CreatePortfolio() returned unexpected error: %v", err)
	}

	if created.ID == "" {
		t.Error("Expected generated ID, got empty string")
	}

	loaded, err := svc.GetPortfolio(created.ID)
	if err != nil {
		t.Fatalf("GetPortfolio() returned unexpected error: %v", err)
	}
	if loaded.Name != "Retirement" {
		t.Errorf("Expected name 'Retirement', got %q", loaded.Name)
	}
	if loaded.Description != "Long-term holdings" {
		t.Errorf("Expected description 'Long-term holdings', got %q", loaded.Description)
	}
	if loaded.IsArchived {
		t.Error("New portfolio should not be archived")
	}
}

// TestPortfolioService_GetPortfolio_NotFound tests the missing-portfolio path.
//
// WHY: Handlers map apperrors.ErrPortfolioNotFound to a 404; the service must
// surface that sentinel rather than a generic database error.
func TestPortfolioService_GetPortfolio_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPortfolioService(t, db)

	_, err := svc.GetPortfolio(testutil.MakeID())
	if !errors.Is(err, apperrors.ErrPortfolioNotFound) {
		t.Errorf("Expected ErrPortfolioNotFound, got %v", err)
	}
}

// TestPortfolioService_GetPortfolioState tests position valuation.
//
// WHY: This is the core calculation of the application. The cost basis,
// unrealized and realized gains must come out of average-cost replay exactly,
// and cash must be valued at face value rather than quantity times price.
func TestPortfolioService_GetPortfolioState(t *testing.T) {
	t.Run("values a simple buy against the latest valuation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		portfolio := testutil.CreatePortfolio(t, db, "Main")
		asset := testutil.CreateAsset(t, db, "Acme Corp", model.ClassStock)
		testutil.CreateBuy(t, db, portfolio.ID, asset.ID, "2023-01-01", 10, 100)
		testutil.CreateValuation(t, db, asset.ID, "2023-01-10", 150)

		state, err := svc.GetPortfolioState(portfolio.ID)
		if err != nil {
			t.Fatalf("GetPortfolioState() returned unexpected error: %v", err)
		}

		if len(state.Positions) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(state.Positions))
		}

		pos := state.Positions[0]
		if pos.Quantity != 10 {
			t.Errorf("Expected quantity 10, got %v", pos.Quantity)
		}
		if pos.CostBasis != 1000 {
			t.Errorf("Expected cost basis 1000, got %v", pos.CostBasis)
		}
		if pos.CurrentValue != 1500 {
			t.Errorf("Expected current value 1500, got %v", pos.CurrentValue)
		}
		if pos.UnrealizedGainLoss != 500 {
			t.Errorf("Expected unrealized gain 500, got %v", pos.UnrealizedGainLoss)
		}
		if state.Summary.TotalValue != 1500 {
			t.Errorf("Expected total value 1500, got %v", state.Summary.TotalValue)
		}
		if state.Summary.CapitalInvested != 1000 {
			t.Errorf("Expected capital invested 1000, got %v", state.Summary.CapitalInvested)
		}
	})

	t.Run("average cost sell realizes the gain", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		portfolio := testutil.CreatePortfolio(t, db, "Main")
		asset := testutil.CreateAsset(t, db, "Acme Corp", model.ClassStock)
		testutil.CreateBuy(t, db, portfolio.ID, asset.ID, "2023-01-01", 10, 100)
		testutil.CreateSell(t, db, portfolio.ID, asset.ID, "2023-02-01", 5, 120)
		testutil.CreateValuation(t, db, asset.ID, "2023-02-01", 120)

		state, err := svc.GetPortfolioState(portfolio.ID)
		if err != nil {
			t.Fatalf("GetPortfolioState() returned unexpected error: %v", err)
		}

		if len(state.Positions) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(state.Positions))
		}

		pos := state.Positions[0]
		if pos.Quantity != 5 {
			t.Errorf("Expected quantity 5, got %v", pos.Quantity)
		}
		if pos.CostBasis != 500 {
			t.Errorf("Expected cost basis 500, got %v", pos.CostBasis)
		}
		if pos.RealizedGainLoss != 100 {
			t.Errorf("Expected realized gain 100, got %v", pos.RealizedGainLoss)
		}
		if pos.UnrealizedGainLoss != 100 {
			t.Errorf("Expected unrealized gain 100, got %v", pos.UnrealizedGainLoss)
		}
		if state.Summary.TotalGainLoss != 200 {
			t.Errorf("Expected total gain 200, got %v", state.Summary.TotalGainLoss)
		}
	})

	t.Run("cash is valued at face value without a valuation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		portfolio := testutil.CreatePortfolio(t, db, "Main")
		cash := testutil.CreateCashAsset(t, db, "Savings Account")
		testutil.CreateBuy(t, db, portfolio.ID, cash.ID, "2023-01-01", 500, 1)

		state, err := svc.GetPortfolioState(portfolio.ID)
		if err != nil {
			t.Fatalf("GetPortfolioState() returned unexpected error: %v", err)
		}

		if len(state.Positions) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(state.Positions))
		}
		if state.Positions[0].CurrentValue != 500 {
			t.Errorf("Expected cash value 500, got %v", state.Positions[0].CurrentValue)
		}

		// Cash never counts toward the capital-invested accumulator.
		if state.Summary.CapitalInvested != 0 {
			t.Errorf("Expected capital invested 0, got %v", state.Summary.CapitalInvested)
		}
	})

	t.Run("oversell flags the portfolio inconsistent instead of failing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		portfolio := testutil.CreatePortfolio(t, db, "Main")
		asset := testutil.CreateAsset(t, db, "Acme Corp", model.ClassStock)
		testutil.CreateBuy(t, db, portfolio.ID, asset.ID, "2023-01-01", 5, 100)
		testutil.CreateSell(t, db, portfolio.ID, asset.ID, "2023-02-01", 8, 100)

		state, err := svc.GetPortfolioState(portfolio.ID)
		if err != nil {
			t.Fatalf("GetPortfolioState() returned unexpected error: %v", err)
		}

		if !state.Summary.Inconsistent {
			t.Error("Expected summary flagged inconsistent after oversell")
		}
	})

	t.Run("missing valuation contributes zero value", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		portfolio := testutil.CreatePortfolio(t, db, "Main")
		asset := testutil.CreateAsset(t, db, "Unlisted Corp", model.ClassStock)
		testutil.CreateBuy(t, db, portfolio.ID, asset.ID, "2023-01-01", 10, 100)

		state, err := svc.GetPortfolioState(portfolio.ID)
		if err != nil {
			t.Fatalf("GetPortfolioState() returned unexpected error: %v", err)
		}

		if len(state.Positions) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(state.Positions))
		}
		if state.Positions[0].CurrentValue != 0 {
			t.Errorf("Expected current value 0, got %v", state.Positions[0].CurrentValue)
		}
		if state.Positions[0].UnrealizedGainLoss != -1000 {
			t.Errorf("Expected unrealized loss -1000, got %v", state.Positions[0].UnrealizedGainLoss)
		}
	})
}

// TestPortfolioService_GetOverview tests cross-portfolio aggregation.
//
// WHY: The overview is the landing page of the application. Totals must sum
// across active portfolios only, and an inconsistency anywhere must surface
// on the aggregate.
func TestPortfolioService_GetOverview(t *testing.T) {
	t.Run("sums totals across active portfolios", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		p1 := testutil.CreatePortfolio(t, db, "First")
		p2 := testutil.CreatePortfolio(t, db, "Second")
		asset := testutil.CreateAsset(t, db, "Acme Corp", model.ClassStock)
		testutil.CreateBuy(t, db, p1.ID, asset.ID, "2023-01-01", 10, 100)
		testutil.CreateBuy(t, db, p2.ID, asset.ID, "2023-01-01", 5, 100)
		testutil.CreateValuation(t, db, asset.ID, "2023-01-10", 120)

		overview, err := svc.GetOverview()
		if err != nil {
			t.Fatalf("GetOverview() returned unexpected error: %v", err)
		}

		if len(overview.Portfolios) != 2 {
			t.Fatalf("Expected 2 portfolio summaries, got %d", len(overview.Portfolios))
		}
		if overview.TotalValue != 1800 {
			t.Errorf("Expected total value 1800, got %v", overview.TotalValue)
		}
		if overview.CapitalInvested != 1500 {
			t.Errorf("Expected capital invested 1500, got %v", overview.CapitalInvested)
		}
		if overview.TotalGainLoss != 300 {
			t.Errorf("Expected total gain 300, got %v", overview.TotalGainLoss)
		}
	})

	t.Run("excludes archived portfolios", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		testutil.CreatePortfolio(t, db, "Active")
		archived := testutil.CreateArchivedPortfolio(t, db, "Old")
		asset := testutil.CreateAsset(t, db, "Acme Corp", model.ClassStock)
		testutil.CreateBuy(t, db, archived.ID, asset.ID, "2023-01-01", 10, 100)
		testutil.CreateValuation(t, db, asset.ID, "2023-01-10", 120)

		overview, err := svc.GetOverview()
		if err != nil {
			t.Fatalf("GetOverview() returned unexpected error: %v", err)
		}

		if len(overview.Portfolios) != 1 {
			t.Fatalf("Expected 1 portfolio summary, got %d", len(overview.Portfolios))
		}
		if overview.TotalValue != 0 {
			t.Errorf("Expected total value 0 from archived holdings, got %v", overview.TotalValue)
		}
	})

	t.Run("returns empty overview with no portfolios", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		overview, err := svc.GetOverview()
		if err != nil {
			t.Fatalf("GetOverview() returned unexpected error: %v", err)
		}

		if len(overview.Portfolios) != 0 {
			t.Errorf("Expected no portfolio summaries, got %d", len(overview.Portfolios))
		}
		if overview.TotalValue != 0 {
			t.Errorf("Expected total value 0, got %v", overview.TotalValue)
		}
	})
}

// TestPortfolioService_GetAllocation tests allocation grouping.
//
// WHY: Allocation charts drive rebalancing decisions. Grouping must follow the
// requested dimension, substitute Uncategorized for missing metadata, and fall
// back to class for unknown dimensions.
func TestPortfolioService_GetAllocation(t *testing.T) {
	t.Run("groups current value by class", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		portfolio := testutil.CreatePortfolio(t, db, "Main")
		stock := testutil.CreateAsset(t, db, "Acme Corp", model.ClassStock)
		etf := testutil.CreateAsset(t, db, "World ETF", model.ClassETF)
		testutil.CreateBuy(t, db, portfolio.ID, stock.ID, "2023-01-01", 10, 100)
		testutil.CreateBuy(t, db, portfolio.ID, etf.ID, "2023-01-01", 2, 50)
		testutil.CreateValuation(t, db, stock.ID, "2023-01-10", 100)
		testutil.CreateValuation(t, db, etf.ID, "2023-01-10", 50)

		pairs, err := svc.GetAllocation(portfolio.ID, "class")
		if err != nil {
			t.Fatalf("GetAllocation() returned unexpected error: %v", err)
		}

		if len(pairs) != 2 {
			t.Fatalf("Expected 2 allocation buckets, got %d", len(pairs))
		}

		values := map[string]float64{}
		for _, pair := range pairs {
			values[pair.Label] = pair.Value
		}
		if values[model.ClassStock] != 1000 {
			t.Errorf("Expected Stock bucket 1000, got %v", values[model.ClassStock])
		}
		if values[model.ClassETF] != 100 {
			t.Errorf("Expected ETF bucket 100, got %v", values[model.ClassETF])
		}
	})

	t.Run("missing sector falls into Uncategorized", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		portfolio := testutil.CreatePortfolio(t, db, "Main")
		asset := testutil.CreateAsset(t, db, "Acme Corp", model.ClassStock)
		testutil.CreateBuy(t, db, portfolio.ID, asset.ID, "2023-01-01", 10, 100)
		testutil.CreateValuation(t, db, asset.ID, "2023-01-10", 100)

		pairs, err := svc.GetAllocation(portfolio.ID, "sector")
		if err != nil {
			t.Fatalf("GetAllocation() returned unexpected error: %v", err)
		}

		if len(pairs) != 1 {
			t.Fatalf("Expected 1 allocation bucket, got %d", len(pairs))
		}
		if pairs[0].Label != model.Uncategorized {
			t.Errorf("Expected Uncategorized bucket, got %q", pairs[0].Label)
		}
	})

	t.Run("unknown dimension falls back to class", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		portfolio := testutil.CreatePortfolio(t, db, "Main")
		asset := testutil.CreateAsset(t, db, "Acme Corp", model.ClassStock)
		testutil.CreateBuy(t, db, portfolio.ID, asset.ID, "2023-01-01", 10, 100)
		testutil.CreateValuation(t, db, asset.ID, "2023-01-10", 100)

		pairs, err := svc.GetAllocation(portfolio.ID, "something-else")
		if err != nil {
			t.Fatalf("GetAllocation() returned unexpected error: %v", err)
		}

		if len(pairs) != 1 {
			t.Fatalf("Expected 1 allocation bucket, got %d", len(pairs))
		}
		if pairs[0].Label != model.ClassStock {
			t.Errorf("Expected Stock bucket from class fallback, got %q", pairs[0].Label)
		}
	})

	t.Run("returns not found for unknown portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		_, err := svc.GetAllocation(testutil.MakeID(), "class")
		if !errors.Is(err, apperrors.ErrPortfolioNotFound) {
			t.Errorf("Expected ErrPortfolioNotFound, got %v", err)
		}
	})
}

// TestPortfolioService_DeletePortfolio tests portfolio deletion.
//
// WHY: Deleting a portfolio must also remove its transactions and stored
// history so no orphaned rows survive.
func TestPortfolioService_DeletePortfolio(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPortfolioService(t, db)

	portfolio := testutil.CreatePortfolio(t, db, "Doomed")
	asset := testutil.CreateAsset(t, db, "Acme Corp", model.ClassStock)
	testutil.CreateBuy(t, db, portfolio.ID, asset.ID, "2023-01-01", 10, 100)

	if err := svc.DeletePortfolio(portfolio.ID); err != nil {
		t.Fatalf("DeletePortfolio() returned unexpected error: %v", err)
	}

	testutil.AssertRowCount(t, db, "portfolio", 0)
	testutil.AssertRowCount(t, db, "portfolio_transaction", 0)

	_, err := svc.GetPortfolio(portfolio.ID)
	if !errors.Is(err, apperrors.ErrPortfolioNotFound) {
		t.Errorf("Expected ErrPortfolioNotFound after delete, got %v", err)
	}
}
