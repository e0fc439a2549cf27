package service

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/AlessioMurgia/capitaltracker/internal/engine"
	"github.com/AlessioMurgia/capitaltracker/internal/model"
	"github.com/AlessioMurgia/capitaltracker/internal/repository"
)

// SnapshotLoader centralizes the loading of all data required for portfolio
// calculations. It gathers transactions, asset metadata and valuations into an
// engine.Snapshot so every calculation path starts from the same dataset.
type SnapshotLoader struct {
	transactionRepo *repository.TransactionRepository
	assetRepo       *repository.AssetRepository
	valuationRepo   *repository.ValuationRepository
}

// NewSnapshotLoader creates a new SnapshotLoader with the provided repositories.
func NewSnapshotLoader(
	transactionRepo *repository.TransactionRepository,
	assetRepo *repository.AssetRepository,
	valuationRepo *repository.ValuationRepository,
) *SnapshotLoader {
	return &SnapshotLoader{
		transactionRepo: transactionRepo,
		assetRepo:       assetRepo,
		valuationRepo:   valuationRepo,
	}
}

// Load gathers the full dataset for one portfolio. An empty portfolioID loads
// data across all portfolios, which backs the overview endpoint.
//
// Transactions are loaded first to learn which assets the portfolio touches;
// asset metadata and valuations for those assets then load in parallel.
func (s *SnapshotLoader) Load(portfolioID string) (engine.Snapshot, error) {
	transactions, err := s.transactionRepo.GetTransactions(portfolioID)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("failed to load transactions: %w", err)
	}

	assetIDs := distinctAssetIDs(transactions)

	var assets map[string]model.Asset
	var valuations []model.Valuation

	var g errgroup.Group
	g.Go(func() error {
		var err error
		assets, err = s.assetRepo.GetAssetsByIDs(assetIDs)
		if err != nil {
			return fmt.Errorf("failed to load assets: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		valuations, err = s.valuationRepo.GetValuationsForAssets(assetIDs)
		if err != nil {
			return fmt.Errorf("failed to load valuations: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return engine.Snapshot{}, err
	}

	assetList := make([]model.Asset, 0, len(assets))
	for _, a := range assets {
		assetList = append(assetList, a)
	}

	return engine.Snapshot{
		Transactions: transactions,
		Valuations:   valuations,
		Assets:       assetList,
	}, nil
}

func distinctAssetIDs(transactions []model.Transaction) []string {
	seen := make(map[string]bool, len(transactions))
	ids := make([]string, 0, len(transactions))
	for _, t := range transactions {
		if !seen[t.AssetID] {
			seen[t.AssetID] = true
			ids = append(ids, t.AssetID)
		}
	}
	return ids
}
