package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/AlessioMurgia/capitaltracker/internal/apperrors"
	"github.com/AlessioMurgia/capitaltracker/internal/model"
)

// TransactionRepository provides data access methods for the portfolio_transaction table.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// GetTransactions retrieves transactions ordered by date, with same-date rows
// kept in insertion order via created_at. An empty portfolioID returns all
// transactions across portfolios.
func (s *TransactionRepository) GetTransactions(portfolioID string) ([]model.Transaction, error) {
	query := `
		SELECT id, portfolio_id, asset_id, type, quantity, price, fee, date, created_at
		FROM portfolio_transaction
	`
	var args []any

	if portfolioID != "" {
		query += ` WHERE portfolio_id = ?`
		args = append(args, portfolioID)
	}
	query += ` ORDER BY date ASC, created_at ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio_transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		var dateStr, createdAtStr string
		var t model.Transaction

		err := rows.Scan(
			&t.ID,
			&t.PortfolioID,
			&t.AssetID,
			&t.Type,
			&t.Quantity,
			&t.Price,
			&t.Fee,
			&dateStr,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio_transaction table results: %w", err)
		}
		t.Date, err = ParseTime(dateStr)
		if err != nil || t.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		t.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil || t.CreatedAt.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio_transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransaction retrieves a single transaction by ID.
func (s *TransactionRepository) GetTransaction(transactionID string) (model.Transaction, error) {
	query := `
		SELECT id, portfolio_id, asset_id, type, quantity, price, fee, date, created_at
		FROM portfolio_transaction
		WHERE id = ?
	`
	var t model.Transaction
	var dateStr, createdAtStr string

	err := s.db.QueryRow(query, transactionID).Scan(
		&t.ID,
		&t.PortfolioID,
		&t.AssetID,
		&t.Type,
		&t.Quantity,
		&t.Price,
		&t.Fee,
		&dateStr,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to query transaction: %w", err)
	}
	t.Date, err = ParseTime(dateStr)
	if err != nil || t.Date.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil || t.CreatedAt.IsZero() {
		return model.Transaction{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return t, nil
}

// GetOldestTransactionDate finds the date of the earliest transaction for a
// portfolio. Used to determine the starting point for historical calculations.
//
// Returns time.Time{} (zero value) if:
//   - no transactions are found
//   - database query fails
//   - date parsing fails
func (s *TransactionRepository) GetOldestTransactionDate(portfolioID string) time.Time {
	var oldestDateStr sql.NullString

	query := `
		SELECT MIN(date)
		FROM portfolio_transaction
		WHERE portfolio_id = ?
	`

	err := s.db.QueryRow(query, portfolioID).Scan(&oldestDateStr)
	if err != nil || !oldestDateStr.Valid {
		return time.Time{}
	}
	oldestDate, err := ParseTime(oldestDateStr.String)
	if err != nil {
		return time.Time{}
	}

	return oldestDate
}

// CreateTransaction inserts a new transaction row.
func (s *TransactionRepository) CreateTransaction(t model.Transaction) error {
	query := `
		INSERT INTO portfolio_transaction (id, portfolio_id, asset_id, type, quantity, price, fee, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		t.ID,
		t.PortfolioID,
		t.AssetID,
		t.Type,
		t.Quantity,
		t.Price,
		t.Fee,
		t.Date.Format("2006-01-02"),
		t.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// UpdateTransaction updates an existing transaction row.
func (s *TransactionRepository) UpdateTransaction(t model.Transaction) error {
	query := `
		UPDATE portfolio_transaction
		SET asset_id = ?, type = ?, quantity = ?, price = ?, fee = ?, date = ?
		WHERE id = ?
	`
	result, err := s.db.Exec(query,
		t.AssetID,
		t.Type,
		t.Quantity,
		t.Price,
		t.Fee,
		t.Date.Format("2006-01-02"),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction row.
func (s *TransactionRepository) DeleteTransaction(transactionID string) error {
	result, err := s.db.Exec(`DELETE FROM portfolio_transaction WHERE id = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}
