package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/AlessioMurgia/capitaltracker/internal/model"
)

// SnapshotRepository provides data access methods for the portfolio_value_snapshot table.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new repository instance.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// GetSnapshots retrieves pre-calculated portfolio value records for the given
// date range. Results stream through a callback to keep memory flat on long
// histories.
//
// Returns an error if the query fails or if the callback returns an error
// during processing.
func (r *SnapshotRepository) GetSnapshots(
	portfolioID string,
	startDate, endDate time.Time,
	callback func(record model.ValueSnapshot) error,
) error {
	query := `
		SELECT id, portfolio_id, date, value, calculated_at
		FROM portfolio_value_snapshot
		WHERE portfolio_id = ?
		AND date >= ?
		AND date <= ?
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query, portfolioID, startDate.Format("2006-01-02"), endDate.Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("failed to query portfolio_value_snapshot: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var record model.ValueSnapshot
		var dateStr, calculatedAtStr string

		err := rows.Scan(
			&record.ID,
			&record.PortfolioID,
			&dateStr,
			&record.Value,
			&calculatedAtStr,
		)
		if err != nil {
			return fmt.Errorf("failed to scan row: %w", err)
		}

		record.Date, err = ParseTime(dateStr)
		if err != nil {
			return fmt.Errorf("failed to parse date: %w", err)
		}

		record.CalculatedAt, err = ParseTime(calculatedAtStr)
		if err != nil {
			return fmt.Errorf("failed to parse calculated_at: %w", err)
		}

		if err := callback(record); err != nil {
			return err
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating rows: %w", err)
	}

	return nil
}

// GetLatestCalculatedAt returns the most recent calculation timestamp for a
// portfolio's snapshots. Returns the zero time when no snapshots exist.
func (r *SnapshotRepository) GetLatestCalculatedAt(portfolioID string) (time.Time, error) {
	var calculatedAtStr sql.NullString

	query := `
		SELECT MAX(calculated_at)
		FROM portfolio_value_snapshot
		WHERE portfolio_id = ?
	`

	err := r.db.QueryRow(query, portfolioID).Scan(&calculatedAtStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query snapshot freshness: %w", err)
	}
	if !calculatedAtStr.Valid {
		return time.Time{}, nil
	}

	calculatedAt, err := ParseTime(calculatedAtStr.String)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse calculated_at: %w", err)
	}
	return calculatedAt, nil
}

// ReplaceSnapshots atomically swaps the stored history of a portfolio for the
// given records. Used by the nightly rebuild and the on-demand recalculation.
func (r *SnapshotRepository) ReplaceSnapshots(portfolioID string, records []model.ValueSnapshot) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin snapshot replace: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(`DELETE FROM portfolio_value_snapshot WHERE portfolio_id = ?`, portfolioID); err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO portfolio_value_snapshot (id, portfolio_id, date, value, calculated_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare snapshot insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		_, err := stmt.Exec(
			record.ID,
			record.PortfolioID,
			record.Date.Format("2006-01-02"),
			record.Value,
			record.CalculatedAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot: %w", err)
		}
	}

	return tx.Commit()
}

// DeleteSnapshots drops the stored history of a portfolio. Called after any
// write that invalidates previously calculated values.
func (r *SnapshotRepository) DeleteSnapshots(portfolioID string) error {
	if _, err := r.db.Exec(`DELETE FROM portfolio_value_snapshot WHERE portfolio_id = ?`, portfolioID); err != nil {
		return fmt.Errorf("failed to delete snapshots: %w", err)
	}
	return nil
}
