package service

import (
	"github.com/google/uuid"

	"github.com/AlessioMurgia/capitaltracker/internal/api/request"
	"github.com/AlessioMurgia/capitaltracker/internal/model"
	"github.com/AlessioMurgia/capitaltracker/internal/repository"
	"github.com/AlessioMurgia/capitaltracker/internal/validation"
)

// AssetService handles asset CRUD.
type AssetService struct {
	assetRepo *repository.AssetRepository
}

// NewAssetService creates a new AssetService with the provided repository.
func NewAssetService(assetRepo *repository.AssetRepository) *AssetService {
	return &AssetService{assetRepo: assetRepo}
}

// GetAssets returns all assets ordered by name.
func (s *AssetService) GetAssets() ([]model.Asset, error) {
	return s.assetRepo.GetAssets()
}

// GetAsset returns a single asset by ID.
func (s *AssetService) GetAsset(assetID string) (model.Asset, error) {
	return s.assetRepo.GetAssetOnID(assetID)
}

// CreateAsset validates and stores a new asset.
func (s *AssetService) CreateAsset(req request.CreateAssetRequest) (model.Asset, error) {
	if err := validation.ValidateCreateAsset(req); err != nil {
		return model.Asset{}, err
	}

	a := model.Asset{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Class:     req.Class,
		Symbol:    req.Symbol,
		Sector:    req.Sector,
		Geography: req.Geography,
		Platform:  req.Platform,
	}
	if err := s.assetRepo.CreateAsset(a); err != nil {
		return model.Asset{}, err
	}
	return a, nil
}

// UpdateAsset applies the provided fields to an existing asset.
func (s *AssetService) UpdateAsset(assetID string, req request.UpdateAssetRequest) (model.Asset, error) {
	if err := validation.ValidateUpdateAsset(req); err != nil {
		return model.Asset{}, err
	}

	a, err := s.assetRepo.GetAssetOnID(assetID)
	if err != nil {
		return model.Asset{}, err
	}

	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Class != nil {
		a.Class = *req.Class
	}
	if req.Symbol != nil {
		a.Symbol = *req.Symbol
	}
	if req.Sector != nil {
		a.Sector = *req.Sector
	}
	if req.Geography != nil {
		a.Geography = *req.Geography
	}
	if req.Platform != nil {
		a.Platform = *req.Platform
	}

	if err := s.assetRepo.UpdateAsset(a); err != nil {
		return model.Asset{}, err
	}
	return a, nil
}

// DeleteAsset removes an asset that no transaction references.
func (s *AssetService) DeleteAsset(assetID string) error {
	return s.assetRepo.DeleteAsset(assetID)
}
