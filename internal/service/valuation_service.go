package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AlessioMurgia/capitaltracker/internal/api/request"
	"github.com/AlessioMurgia/capitaltracker/internal/marketdata"
	"github.com/AlessioMurgia/capitaltracker/internal/model"
	"github.com/AlessioMurgia/capitaltracker/internal/repository"
	"github.com/AlessioMurgia/capitaltracker/internal/validation"
)

// RefreshResult summarizes a market data refresh run.
type RefreshResult struct {
	Refreshed int               `json:"refreshed"`
	Skipped   int               `json:"skipped"`
	Failed    map[string]string `json:"failed,omitempty"` // symbol -> reason
}

// ValuationService handles valuation reads and writes and the market data
// refresh. Valuation writes invalidate stored history for every portfolio,
// since valuations are shared across portfolios.
type ValuationService struct {
	valuationRepo  *repository.ValuationRepository
	assetRepo      *repository.AssetRepository
	portfolioRepo  *repository.PortfolioRepository
	historyService *HistoryService
	systemService  *SystemService
	client         marketdata.Client
}

// NewValuationService creates a new ValuationService with the provided dependencies.
func NewValuationService(
	valuationRepo *repository.ValuationRepository,
	assetRepo *repository.AssetRepository,
	portfolioRepo *repository.PortfolioRepository,
	historyService *HistoryService,
	systemService *SystemService,
	client marketdata.Client,
) *ValuationService {
	return &ValuationService{
		valuationRepo:  valuationRepo,
		assetRepo:      assetRepo,
		portfolioRepo:  portfolioRepo,
		historyService: historyService,
		systemService:  systemService,
		client:         client,
	}
}

// GetValuations returns the valuation history of one asset ordered by date.
func (s *ValuationService) GetValuations(assetID string) ([]model.Valuation, error) {
	if _, err := s.assetRepo.GetAssetOnID(assetID); err != nil {
		return nil, err
	}
	return s.valuationRepo.GetValuationsForAssets([]string{assetID})
}

// CreateValuation records a manual valuation. A record for the same asset and
// date is overwritten; the latest write wins.
func (s *ValuationService) CreateValuation(req request.CreateValuationRequest) (model.Valuation, error) {
	if err := validation.ValidateCreateValuation(req); err != nil {
		return model.Valuation{}, err
	}
	if _, err := s.assetRepo.GetAssetOnID(req.AssetID); err != nil {
		return model.Valuation{}, err
	}

	date, err := repository.ParseTime(req.Date)
	if err != nil {
		return model.Valuation{}, err
	}

	v := model.Valuation{
		ID:        uuid.New().String(),
		AssetID:   req.AssetID,
		Date:      date,
		Value:     req.Value,
		Source:    model.SourceManual,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.valuationRepo.UpsertValuation(v); err != nil {
		return model.Valuation{}, err
	}
	if err := s.invalidateAllHistory(); err != nil {
		return model.Valuation{}, err
	}
	return v, nil
}

// DeleteValuation removes a valuation record.
func (s *ValuationService) DeleteValuation(valuationID string) error {
	if err := s.valuationRepo.DeleteValuation(valuationID); err != nil {
		return err
	}
	return s.invalidateAllHistory()
}

// RefreshFromMarketData fetches the latest quote for every asset that carries
// a ticker symbol and stores it as an API-sourced valuation.
//
// A per-symbol failure never aborts the run: the symbol is reported in the
// result and the refresh continues. Assets without a symbol are skipped.
func (s *ValuationService) RefreshFromMarketData() (RefreshResult, error) {
	apiKey, err := s.systemService.GetMarketDataKey()
	if err != nil {
		return RefreshResult{}, fmt.Errorf("market data key unavailable: %w", err)
	}

	assets, err := s.assetRepo.GetAssets()
	if err != nil {
		return RefreshResult{}, err
	}

	result := RefreshResult{Failed: map[string]string{}}
	now := time.Now().UTC()

	for _, asset := range assets {
		if asset.Symbol == "" || asset.IsCash() {
			result.Skipped++
			continue
		}

		quote, err := s.client.GetQuote(asset.Symbol, apiKey)
		if err != nil {
			result.Failed[asset.Symbol] = err.Error()
			continue
		}

		date := now
		if parsed, err := repository.ParseTime(quote.TradingDay); err == nil {
			date = parsed
		}

		v := model.Valuation{
			ID:        uuid.New().String(),
			AssetID:   asset.ID,
			Date:      date,
			Value:     quote.Price,
			Source:    model.SourceAPI,
			CreatedAt: now,
		}
		if err := s.valuationRepo.UpsertValuation(v); err != nil {
			result.Failed[asset.Symbol] = err.Error()
			continue
		}
		result.Refreshed++
	}

	if result.Refreshed > 0 {
		if err := s.invalidateAllHistory(); err != nil {
			return result, err
		}
	}
	return result, nil
}

// invalidateAllHistory drops stored history for every portfolio. Valuations
// are shared, so any valuation write can change any portfolio's history.
func (s *ValuationService) invalidateAllHistory() error {
	portfolios, err := s.portfolioRepo.GetPortfolios(model.PortfolioFilter{IncludeArchived: true})
	if err != nil {
		return err
	}
	for _, p := range portfolios {
		if err := s.historyService.InvalidateSnapshots(p.ID); err != nil {
			return err
		}
	}
	return nil
}
