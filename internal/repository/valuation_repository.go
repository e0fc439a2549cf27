package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/AlessioMurgia/capitaltracker/internal/apperrors"
	"github.com/AlessioMurgia/capitaltracker/internal/model"
)

// ValuationRepository provides data access methods for the asset_valuation table.
type ValuationRepository struct {
	db *sql.DB
}

// NewValuationRepository creates a new ValuationRepository with the provided database connection.
func NewValuationRepository(db *sql.DB) *ValuationRepository {
	return &ValuationRepository{db: db}
}

func (s *ValuationRepository) queryValuations(query string, args ...any) ([]model.Valuation, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset_valuation table: %w", err)
	}
	defer rows.Close()

	valuations := []model.Valuation{}

	for rows.Next() {
		var dateStr, createdAtStr string
		var v model.Valuation

		err := rows.Scan(
			&v.ID,
			&v.AssetID,
			&dateStr,
			&v.Value,
			&v.Source,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset_valuation table results: %w", err)
		}
		v.Date, err = ParseTime(dateStr)
		if err != nil || v.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}
		v.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil || v.CreatedAt.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		valuations = append(valuations, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset_valuation table: %w", err)
	}

	return valuations, nil
}

// GetAllValuations retrieves every valuation record ordered by date.
func (s *ValuationRepository) GetAllValuations() ([]model.Valuation, error) {
	query := `
		SELECT id, asset_id, date, value, source, created_at
		FROM asset_valuation
		ORDER BY date ASC
	`
	return s.queryValuations(query)
}

// GetValuationsForAssets retrieves valuations for the given asset IDs ordered
// by date. Returns an empty slice if assetIDs is empty.
func (s *ValuationRepository) GetValuationsForAssets(assetIDs []string) ([]model.Valuation, error) {
	if len(assetIDs) == 0 {
		return []model.Valuation{}, nil
	}

	placeholders := make([]string, len(assetIDs))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT id, asset_id, date, value, source, created_at
		FROM asset_valuation
		WHERE asset_id IN (` + strings.Join(placeholders, ",") + `)
		ORDER BY date ASC
	`

	args := make([]any, len(assetIDs))
	for i, id := range assetIDs {
		args[i] = id
	}

	return s.queryValuations(query, args...)
}

// UpsertValuation inserts a valuation or, when a record for the same asset and
// date already exists, overwrites its value and source. Later writes win.
func (s *ValuationRepository) UpsertValuation(v model.Valuation) error {
	query := `
		INSERT INTO asset_valuation (id, asset_id, date, value, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (asset_id, date) DO UPDATE
		SET value = excluded.value, source = excluded.source, created_at = excluded.created_at
	`
	_, err := s.db.Exec(query,
		v.ID,
		v.AssetID,
		v.Date.Format("2006-01-02"),
		v.Value,
		v.Source,
		v.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert valuation: %w", err)
	}
	return nil
}

// DeleteValuation removes a valuation row.
func (s *ValuationRepository) DeleteValuation(valuationID string) error {
	result, err := s.db.Exec(`DELETE FROM asset_valuation WHERE id = ?`, valuationID)
	if err != nil {
		return fmt.Errorf("failed to delete valuation: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.ErrValuationNotFound
	}
	return nil
}
