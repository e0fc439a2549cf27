package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/AlessioMurgia/capitaltracker/internal/apperrors"
	"github.com/AlessioMurgia/capitaltracker/internal/model"
)

// AssetRepository provides data access methods for the asset table.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

const assetColumns = "id, name, class, symbol, sector, geography, platform"

func scanAsset(scan func(...any) error) (model.Asset, error) {
	var a model.Asset
	var symbol, sector, geography, platform sql.NullString

	err := scan(
		&a.ID,
		&a.Name,
		&a.Class,
		&symbol,
		&sector,
		&geography,
		&platform,
	)
	if err != nil {
		return model.Asset{}, err
	}

	a.Symbol = symbol.String
	a.Sector = sector.String
	a.Geography = geography.String
	a.Platform = platform.String
	return a, nil
}

// GetAssets retrieves all assets ordered by name.
func (s *AssetRepository) GetAssets() ([]model.Asset, error) {
	query := `
          SELECT ` + assetColumns + `
          FROM asset
          ORDER BY name ASC
      `
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}

	for rows.Next() {
		a, err := scanAsset(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset table results: %w", err)
		}
		assets = append(assets, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}

	return assets, nil
}

func (s *AssetRepository) GetAssetOnID(assetID string) (model.Asset, error) {
	query := `
          SELECT ` + assetColumns + `
          FROM asset
          WHERE id = ?
      `
	a, err := scanAsset(s.db.QueryRow(query, assetID).Scan)
	if err == sql.ErrNoRows {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to query asset: %w", err)
	}

	return a, nil
}

// GetAssetsByIDs retrieves the given assets keyed by ID.
// IDs with no matching row are simply absent from the result.
func (s *AssetRepository) GetAssetsByIDs(assetIDs []string) (map[string]model.Asset, error) {
	if len(assetIDs) == 0 {
		return map[string]model.Asset{}, nil
	}

	placeholders := make([]string, len(assetIDs))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
          SELECT ` + assetColumns + `
          FROM asset
          WHERE id IN (` + strings.Join(placeholders, ",") + `)
      `

	args := make([]any, len(assetIDs))
	for i, id := range assetIDs {
		args[i] = id
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	assets := make(map[string]model.Asset, len(assetIDs))

	for rows.Next() {
		a, err := scanAsset(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset table results: %w", err)
		}
		assets[a.ID] = a
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}

	return assets, nil
}

// CreateAsset inserts a new asset row.
func (s *AssetRepository) CreateAsset(a model.Asset) error {
	query := `
          INSERT INTO asset (id, name, class, symbol, sector, geography, platform)
          VALUES (?, ?, ?, ?, ?, ?, ?)
      `
	if _, err := s.db.Exec(query, a.ID, a.Name, a.Class, a.Symbol, a.Sector, a.Geography, a.Platform); err != nil {
		return fmt.Errorf("failed to insert asset: %w", err)
	}
	return nil
}

// UpdateAsset updates the metadata of an existing asset.
func (s *AssetRepository) UpdateAsset(a model.Asset) error {
	query := `
          UPDATE asset
          SET name = ?, class = ?, symbol = ?, sector = ?, geography = ?, platform = ?
          WHERE id = ?
      `
	result, err := s.db.Exec(query, a.Name, a.Class, a.Symbol, a.Sector, a.Geography, a.Platform, a.ID)
	if err != nil {
		return fmt.Errorf("failed to update asset: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}

// DeleteAsset removes an asset. Fails with ErrAssetInUse when transactions
// still reference it; valuations for the asset are removed alongside it.
func (s *AssetRepository) DeleteAsset(assetID string) error {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM portfolio_transaction WHERE asset_id = ?`, assetID).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check asset usage: %w", err)
	}
	if count > 0 {
		return apperrors.ErrAssetInUse
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin delete: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM asset_valuation WHERE asset_id = ?`, assetID); err != nil {
		return fmt.Errorf("failed to delete asset valuations: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM asset WHERE id = ?`, assetID)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.ErrAssetNotFound
	}

	return tx.Commit()
}
