package service

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/AlessioMurgia/capitaltracker/internal/apperrors"
	"github.com/AlessioMurgia/capitaltracker/internal/engine"
	"github.com/AlessioMurgia/capitaltracker/internal/model"
	"github.com/AlessioMurgia/capitaltracker/internal/repository"
)

// HistoryService reconstructs portfolio value and allocation history.
//
// Value history is served from the portfolio_value_snapshot table when the
// stored rows still reach today; otherwise it is recalculated from the full
// transaction and valuation history and the table is refreshed in place.
// Writes that change history delete the stored rows, so a stored row is always
// trustworthy.
type HistoryService struct {
	portfolioRepo *repository.PortfolioRepository
	snapshotRepo  *repository.SnapshotRepository
	loader        *SnapshotLoader
	now           func() time.Time
}

// NewHistoryService creates a new HistoryService with the provided dependencies.
func NewHistoryService(
	portfolioRepo *repository.PortfolioRepository,
	snapshotRepo *repository.SnapshotRepository,
	loader *SnapshotLoader,
) *HistoryService {
	return &HistoryService{
		portfolioRepo: portfolioRepo,
		snapshotRepo:  snapshotRepo,
		loader:        loader,
		now:           time.Now,
	}
}

// GetPortfolioHistory returns the daily total value of a portfolio from its
// first transaction through today.
func (s *HistoryService) GetPortfolioHistory(portfolioID string) ([]model.PortfolioHistoryPoint, error) {
	if _, err := s.portfolioRepo.GetPortfolioOnID(portfolioID); err != nil {
		return nil, err
	}

	today := s.today()

	stored, err := s.storedHistory(portfolioID, today)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToGetPortfolioHistory, err)
	}
	if stored != nil {
		return stored, nil
	}

	points, err := s.reconstruct(portfolioID, today)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToGetPortfolioHistory, err)
	}

	// Persist for the next request. A failure here only costs the cache.
	if err := s.store(portfolioID, points); err != nil {
		log.Printf("Failed to store value history for portfolio %s: %v", portfolioID, err)
	}

	return historyPoints(points), nil
}

// GetAllocationHistory returns the daily per-class value rows for a portfolio.
// Always computed from source data; the rows are small and the snapshot table
// only stores totals.
func (s *HistoryService) GetAllocationHistory(portfolioID string) ([]model.AllocationHistoryRow, error) {
	if _, err := s.portfolioRepo.GetPortfolioOnID(portfolioID); err != nil {
		return nil, err
	}

	snap, err := s.loader.Load(portfolioID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToGetPortfolioHistory, err)
	}

	rows := engine.ReconstructAllocationSeries(snap, s.today())

	response := make([]model.AllocationHistoryRow, 0, len(rows))
	for _, row := range rows {
		values := make(map[string]float64, len(row.Values))
		for class, value := range row.Values {
			values[class] = round(value)
		}
		response = append(response, model.AllocationHistoryRow{
			Date:   row.Date.Format("2006-01-02"),
			Values: values,
		})
	}
	return response, nil
}

// RebuildSnapshots recalculates and stores the value history of one portfolio.
func (s *HistoryService) RebuildSnapshots(portfolioID string) error {
	points, err := s.reconstruct(portfolioID, s.today())
	if err != nil {
		return err
	}
	return s.store(portfolioID, points)
}

// RebuildAllSnapshots recalculates stored history for every portfolio,
// archived ones included. Used by the nightly refresh job.
func (s *HistoryService) RebuildAllSnapshots() error {
	portfolios, err := s.portfolioRepo.GetPortfolios(model.PortfolioFilter{IncludeArchived: true})
	if err != nil {
		return err
	}
	for _, p := range portfolios {
		if err := s.RebuildSnapshots(p.ID); err != nil {
			return fmt.Errorf("failed to rebuild history for portfolio %s: %w", p.ID, err)
		}
	}
	return nil
}

// InvalidateSnapshots drops stored history after a write that changes it.
func (s *HistoryService) InvalidateSnapshots(portfolioID string) error {
	return s.snapshotRepo.DeleteSnapshots(portfolioID)
}

func (s *HistoryService) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// storedHistory returns the stored value series when it reaches today, or nil
// when the table is stale or empty.
func (s *HistoryService) storedHistory(portfolioID string, today time.Time) ([]model.PortfolioHistoryPoint, error) {
	points := []model.PortfolioHistoryPoint{}
	var lastDate time.Time

	err := s.snapshotRepo.GetSnapshots(portfolioID, time.Time{}, today, func(record model.ValueSnapshot) error {
		points = append(points, model.PortfolioHistoryPoint{
			Date:  record.Date.Format("2006-01-02"),
			Value: round(record.Value),
		})
		lastDate = record.Date
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(points) == 0 || lastDate.Before(today) {
		return nil, nil
	}
	return points, nil
}

func (s *HistoryService) reconstruct(portfolioID string, today time.Time) ([]engine.TimeSeriesPoint, error) {
	snap, err := s.loader.Load(portfolioID)
	if err != nil {
		return nil, err
	}
	return engine.ReconstructValueSeries(snap, today), nil
}

func (s *HistoryService) store(portfolioID string, points []engine.TimeSeriesPoint) error {
	calculatedAt := s.now().UTC()
	records := make([]model.ValueSnapshot, len(points))
	for i, p := range points {
		records[i] = model.ValueSnapshot{
			ID:           uuid.New().String(),
			PortfolioID:  portfolioID,
			Date:         p.Date,
			Value:        p.Value,
			CalculatedAt: calculatedAt,
		}
	}
	return s.snapshotRepo.ReplaceSnapshots(portfolioID, records)
}

func historyPoints(points []engine.TimeSeriesPoint) []model.PortfolioHistoryPoint {
	response := make([]model.PortfolioHistoryPoint, len(points))
	for i, p := range points {
		response[i] = model.PortfolioHistoryPoint{
			Date:  p.Date.Format("2006-01-02"),
			Value: round(p.Value),
		}
	}
	return response
}
