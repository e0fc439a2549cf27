package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/AlessioMurgia/capitaltracker/internal/apperrors"
	"github.com/AlessioMurgia/capitaltracker/internal/engine"
	"github.com/AlessioMurgia/capitaltracker/internal/model"
	"github.com/AlessioMurgia/capitaltracker/internal/repository"
)

// PortfolioService handles portfolio CRUD and the valuation of portfolio
// positions. All calculations run through the engine package on a snapshot
// assembled by the SnapshotLoader.
type PortfolioService struct {
	portfolioRepo *repository.PortfolioRepository
	snapshotRepo  *repository.SnapshotRepository
	loader        *SnapshotLoader
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(
	portfolioRepo *repository.PortfolioRepository,
	snapshotRepo *repository.SnapshotRepository,
	loader *SnapshotLoader,
) *PortfolioService {
	return &PortfolioService{
		portfolioRepo: portfolioRepo,
		snapshotRepo:  snapshotRepo,
		loader:        loader,
	}
}

// GetPortfolios returns portfolios matching the filter.
func (s *PortfolioService) GetPortfolios(filter model.PortfolioFilter) ([]model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolios(filter)
}

// GetPortfolio returns a single portfolio by ID.
func (s *PortfolioService) GetPortfolio(portfolioID string) (model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolioOnID(portfolioID)
}

// CreatePortfolio creates a new portfolio with a generated ID.
func (s *PortfolioService) CreatePortfolio(name, description string) (model.Portfolio, error) {
	p := model.Portfolio{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
	}
	if err := s.portfolioRepo.CreatePortfolio(p); err != nil {
		return model.Portfolio{}, err
	}
	return p, nil
}

// UpdatePortfolio updates a portfolio's name, description and archived flag.
func (s *PortfolioService) UpdatePortfolio(p model.Portfolio) (model.Portfolio, error) {
	if err := s.portfolioRepo.UpdatePortfolio(p); err != nil {
		return model.Portfolio{}, err
	}
	return s.portfolioRepo.GetPortfolioOnID(p.ID)
}

// DeletePortfolio removes a portfolio together with its transactions and
// stored history.
func (s *PortfolioService) DeletePortfolio(portfolioID string) error {
	return s.portfolioRepo.DeletePortfolio(portfolioID)
}

// GetPortfolioState values every open position of a portfolio against the
// latest known valuations and returns the summary plus per-position detail.
func (s *PortfolioService) GetPortfolioState(portfolioID string) (model.PortfolioStateResponse, error) {
	portfolio, err := s.portfolioRepo.GetPortfolioOnID(portfolioID)
	if err != nil {
		return model.PortfolioStateResponse{}, err
	}

	snap, err := s.loader.Load(portfolioID)
	if err != nil {
		return model.PortfolioStateResponse{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToGetPortfolioState, err)
	}

	assets := snap.AssetIndex()
	result := engine.CalculateStates(
		engine.Replay(snap.Transactions, assets),
		engine.NewValuationIndex(snap.Valuations),
		assets,
	)

	positions := make([]model.PositionResponse, 0, len(result.States))
	for _, state := range result.States {
		asset := assets[state.AssetID]
		positions = append(positions, model.PositionResponse{
			AssetID:            state.AssetID,
			AssetName:          asset.Name,
			AssetClass:         asset.Class,
			Quantity:           state.Quantity,
			CostBasis:          round(state.CostBasis),
			Price:              round(state.Price),
			CurrentValue:       round(state.CurrentValue),
			UnrealizedGainLoss: round(state.UnrealizedGainLoss),
			RealizedGainLoss:   round(state.RealizedGainLoss),
			Inconsistent:       state.Inconsistent,
		})
	}

	return model.PortfolioStateResponse{
		Summary:   summarize(portfolio, result),
		Positions: positions,
	}, nil
}

// GetOverview values every active portfolio and returns per-portfolio
// summaries alongside grand totals.
func (s *PortfolioService) GetOverview() (model.OverviewResponse, error) {
	portfolios, err := s.portfolioRepo.GetPortfolios(model.PortfolioFilter{})
	if err != nil {
		return model.OverviewResponse{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToGetOverview, err)
	}

	overview := model.OverviewResponse{Portfolios: []model.PortfolioSummary{}}

	for _, portfolio := range portfolios {
		snap, err := s.loader.Load(portfolio.ID)
		if err != nil {
			return model.OverviewResponse{}, fmt.Errorf("%w: %v", apperrors.ErrFailedToGetOverview, err)
		}

		assets := snap.AssetIndex()
		result := engine.CalculateStates(
			engine.Replay(snap.Transactions, assets),
			engine.NewValuationIndex(snap.Valuations),
			assets,
		)

		summary := summarize(portfolio, result)
		overview.Portfolios = append(overview.Portfolios, summary)
		overview.TotalValue = round(overview.TotalValue + summary.TotalValue)
		overview.TotalGainLoss = round(overview.TotalGainLoss + summary.TotalGainLoss)
		overview.CapitalInvested = round(overview.CapitalInvested + summary.CapitalInvested)
		if summary.Inconsistent {
			overview.Inconsistent = true
		}
	}

	return overview, nil
}

// GetAllocation groups a portfolio's current value along one classification
// dimension: class, sector, geography or platform. Unknown dimensions fall
// back to class.
func (s *PortfolioService) GetAllocation(portfolioID, dimension string) ([]engine.AggregationPair, error) {
	if _, err := s.portfolioRepo.GetPortfolioOnID(portfolioID); err != nil {
		return nil, err
	}

	snap, err := s.loader.Load(portfolioID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToGetAllocation, err)
	}

	assets := snap.AssetIndex()
	result := engine.CalculateStates(
		engine.Replay(snap.Transactions, assets),
		engine.NewValuationIndex(snap.Valuations),
		assets,
	)

	pairs := engine.GroupStates(result.States, assets, keyForDimension(dimension))
	for i := range pairs {
		pairs[i].Value = round(pairs[i].Value)
	}
	return pairs, nil
}

func keyForDimension(dimension string) engine.KeyFunc {
	switch dimension {
	case "sector":
		return engine.BySector
	case "geography":
		return engine.ByGeography
	case "platform":
		return engine.ByPlatform
	default:
		return engine.ByClass
	}
}

func summarize(portfolio model.Portfolio, result engine.StateResult) model.PortfolioSummary {
	return model.PortfolioSummary{
		ID:                      portfolio.ID,
		Name:                    portfolio.Name,
		Description:             portfolio.Description,
		TotalValue:              round(result.TotalValue),
		TotalCost:               round(result.TotalCost),
		TotalUnrealizedGainLoss: round(result.TotalUnrealizedGainLoss),
		TotalRealizedGainLoss:   round(result.TotalRealizedGainLoss),
		TotalGainLoss:           round(result.TotalGainLoss),
		CapitalInvested:         round(result.TotalCapitalInvested),
		Inconsistent:            result.Inconsistent,
		IsArchived:              portfolio.IsArchived,
	}
}
