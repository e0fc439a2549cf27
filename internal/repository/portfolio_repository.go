package repository

import (
	"database/sql"
	"fmt"

	"github.com/AlessioMurgia/capitaltracker/internal/apperrors"
	"github.com/AlessioMurgia/capitaltracker/internal/model"
)

// PortfolioRepository provides data access methods for the portfolio table.
type PortfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// GetPortfolios retrieves portfolios from the database based on filter criteria.
// Returns an empty slice if no portfolios match the filter criteria.
func (s *PortfolioRepository) GetPortfolios(filter model.PortfolioFilter) ([]model.Portfolio, error) {
	query := `
          SELECT id, name, description, is_archived
          FROM portfolio
          WHERE 1=1
      `
	var args []any

	if !filter.IncludeArchived {
		query += " AND is_archived = ?"
		args = append(args, 0)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}

	for rows.Next() {
		var p model.Portfolio
		var description sql.NullString

		err := rows.Scan(
			&p.ID,
			&p.Name,
			&description,
			&p.IsArchived,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio table results: %w", err)
		}
		p.Description = description.String

		portfolios = append(portfolios, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	return portfolios, nil
}

func (s *PortfolioRepository) GetPortfolioOnID(portfolioID string) (model.Portfolio, error) {
	query := `
          SELECT id, name, description, is_archived
          FROM portfolio
          WHERE id = ?
      `
	var p model.Portfolio
	var description sql.NullString

	err := s.db.QueryRow(query, portfolioID).Scan(
		&p.ID,
		&p.Name,
		&description,
		&p.IsArchived,
	)
	if err == sql.ErrNoRows {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio: %w", err)
	}
	p.Description = description.String

	return p, nil
}

// CreatePortfolio inserts a new portfolio row.
func (s *PortfolioRepository) CreatePortfolio(p model.Portfolio) error {
	query := `
          INSERT INTO portfolio (id, name, description, is_archived)
          VALUES (?, ?, ?, ?)
      `
	if _, err := s.db.Exec(query, p.ID, p.Name, p.Description, p.IsArchived); err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}
	return nil
}

// UpdatePortfolio updates the mutable fields of an existing portfolio.
func (s *PortfolioRepository) UpdatePortfolio(p model.Portfolio) error {
	query := `
          UPDATE portfolio
          SET name = ?, description = ?, is_archived = ?
          WHERE id = ?
      `
	result, err := s.db.Exec(query, p.Name, p.Description, p.IsArchived, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update portfolio: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.ErrPortfolioNotFound
	}
	return nil
}

// DeletePortfolio removes a portfolio and its dependent rows.
// Transactions and snapshots are deleted first to satisfy foreign keys.
func (s *PortfolioRepository) DeletePortfolio(portfolioID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin delete: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM portfolio_transaction WHERE portfolio_id = ?`, portfolioID); err != nil {
		return fmt.Errorf("failed to delete portfolio transactions: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM portfolio_value_snapshot WHERE portfolio_id = ?`, portfolioID); err != nil {
		return fmt.Errorf("failed to delete portfolio snapshots: %w", err)
	}

	result, err := tx.Exec(`DELETE FROM portfolio WHERE id = ?`, portfolioID)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.ErrPortfolioNotFound
	}

	return tx.Commit()
}
