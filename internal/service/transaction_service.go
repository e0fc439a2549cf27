package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/AlessioMurgia/capitaltracker/internal/api/request"
	"github.com/AlessioMurgia/capitaltracker/internal/model"
	"github.com/AlessioMurgia/capitaltracker/internal/repository"
	"github.com/AlessioMurgia/capitaltracker/internal/validation"
)

// TransactionService handles transaction CRUD. Every write invalidates the
// stored value history of the affected portfolio, since past snapshots no
// longer reflect the books.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	portfolioRepo   *repository.PortfolioRepository
	assetRepo       *repository.AssetRepository
	historyService  *HistoryService
}

// NewTransactionService creates a new TransactionService with the provided dependencies.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	portfolioRepo *repository.PortfolioRepository,
	assetRepo *repository.AssetRepository,
	historyService *HistoryService,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		portfolioRepo:   portfolioRepo,
		assetRepo:       assetRepo,
		historyService:  historyService,
	}
}

// GetTransactions returns transactions, optionally filtered to one portfolio,
// enriched with asset names. An empty portfolioID returns all transactions.
func (s *TransactionService) GetTransactions(portfolioID string) ([]model.TransactionResponse, error) {
	transactions, err := s.transactionRepo.GetTransactions(portfolioID)
	if err != nil {
		return nil, err
	}

	assets, err := s.assetRepo.GetAssetsByIDs(distinctAssetIDs(transactions))
	if err != nil {
		return nil, err
	}

	response := make([]model.TransactionResponse, len(transactions))
	for i, t := range transactions {
		response[i] = toTransactionResponse(t, assets[t.AssetID])
	}
	return response, nil
}

// GetTransaction returns a single transaction by ID with its asset name.
func (s *TransactionService) GetTransaction(transactionID string) (model.TransactionResponse, error) {
	t, err := s.transactionRepo.GetTransaction(transactionID)
	if err != nil {
		return model.TransactionResponse{}, err
	}
	asset, err := s.assetRepo.GetAssetOnID(t.AssetID)
	if err != nil {
		return model.TransactionResponse{}, err
	}
	return toTransactionResponse(t, asset), nil
}

// CreateTransaction validates and records a new transaction.
//
// Referenced portfolio and asset must exist. A sell larger than the open
// position is accepted; the ledger flags the holding inconsistent when it
// replays the history.
func (s *TransactionService) CreateTransaction(req request.CreateTransactionRequest) (model.TransactionResponse, error) {
	if err := validation.ValidateCreateTransaction(req); err != nil {
		return model.TransactionResponse{}, err
	}

	if _, err := s.portfolioRepo.GetPortfolioOnID(req.PortfolioID); err != nil {
		return model.TransactionResponse{}, err
	}
	asset, err := s.assetRepo.GetAssetOnID(req.AssetID)
	if err != nil {
		return model.TransactionResponse{}, err
	}

	date, err := repository.ParseTime(req.Date)
	if err != nil {
		return model.TransactionResponse{}, err
	}

	t := model.Transaction{
		ID:          uuid.New().String(),
		PortfolioID: req.PortfolioID,
		AssetID:     req.AssetID,
		Type:        req.Type,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Fee:         req.Fee,
		Date:        date,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.transactionRepo.CreateTransaction(t); err != nil {
		return model.TransactionResponse{}, err
	}
	if err := s.historyService.InvalidateSnapshots(t.PortfolioID); err != nil {
		return model.TransactionResponse{}, err
	}

	return toTransactionResponse(t, asset), nil
}

// UpdateTransaction applies the provided fields to an existing transaction.
func (s *TransactionService) UpdateTransaction(transactionID string, req request.UpdateTransactionRequest) (model.TransactionResponse, error) {
	if err := validation.ValidateUpdateTransaction(req); err != nil {
		return model.TransactionResponse{}, err
	}

	t, err := s.transactionRepo.GetTransaction(transactionID)
	if err != nil {
		return model.TransactionResponse{}, err
	}

	if req.AssetID != nil {
		if _, err := s.assetRepo.GetAssetOnID(*req.AssetID); err != nil {
			return model.TransactionResponse{}, err
		}
		t.AssetID = *req.AssetID
	}
	if req.Type != nil {
		t.Type = *req.Type
	}
	if req.Quantity != nil {
		t.Quantity = *req.Quantity
	}
	if req.Price != nil {
		t.Price = *req.Price
	}
	if req.Fee != nil {
		t.Fee = *req.Fee
	}
	if req.Date != nil {
		date, err := repository.ParseTime(*req.Date)
		if err != nil {
			return model.TransactionResponse{}, err
		}
		t.Date = date
	}

	if err := s.transactionRepo.UpdateTransaction(t); err != nil {
		return model.TransactionResponse{}, err
	}
	if err := s.historyService.InvalidateSnapshots(t.PortfolioID); err != nil {
		return model.TransactionResponse{}, err
	}

	asset, err := s.assetRepo.GetAssetOnID(t.AssetID)
	if err != nil {
		return model.TransactionResponse{}, err
	}
	return toTransactionResponse(t, asset), nil
}

// DeleteTransaction removes a transaction.
func (s *TransactionService) DeleteTransaction(transactionID string) error {
	t, err := s.transactionRepo.GetTransaction(transactionID)
	if err != nil {
		return err
	}
	if err := s.transactionRepo.DeleteTransaction(transactionID); err != nil {
		return err
	}
	return s.historyService.InvalidateSnapshots(t.PortfolioID)
}

func toTransactionResponse(t model.Transaction, asset model.Asset) model.TransactionResponse {
	return model.TransactionResponse{
		ID:          t.ID,
		PortfolioID: t.PortfolioID,
		AssetID:     t.AssetID,
		AssetName:   asset.Name,
		Type:        t.Type,
		Quantity:    t.Quantity,
		Price:       t.Price,
		Fee:         t.Fee,
		Date:        t.Date,
	}
}
