package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE portfolio (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			description VARCHAR(500),
			is_archived BOOLEAN NOT NULL DEFAULT 0
		);

		CREATE TABLE asset (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			class VARCHAR(50) NOT NULL,
			symbol VARCHAR(20),
			sector VARCHAR(100),
			geography VARCHAR(100),
			platform VARCHAR(100)
		);

		CREATE TABLE portfolio_transaction (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL,
			asset_id VARCHAR(36) NOT NULL,
			type VARCHAR(4) NOT NULL,
			quantity FLOAT NOT NULL,
			price FLOAT NOT NULL,
			fee FLOAT NOT NULL DEFAULT 0,
			date DATE NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (portfolio_id) REFERENCES portfolio (id),
			FOREIGN KEY (asset_id) REFERENCES asset (id)
		);

		CREATE INDEX idx_transaction_portfolio_date ON portfolio_transaction (portfolio_id, date);
		CREATE INDEX idx_transaction_asset ON portfolio_transaction (asset_id);

		CREATE TABLE asset_valuation (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			asset_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			value FLOAT NOT NULL,
			source VARCHAR(10) NOT NULL,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (asset_id) REFERENCES asset (id),
			UNIQUE (asset_id, date)
		);

		CREATE INDEX idx_valuation_asset_date ON asset_valuation (asset_id, date);

		CREATE TABLE portfolio_value_snapshot (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL,
			date DATE NOT NULL,
			value FLOAT NOT NULL,
			calculated_at DATETIME NOT NULL,
			FOREIGN KEY (portfolio_id) REFERENCES portfolio (id),
			UNIQUE (portfolio_id, date)
		);

		CREATE INDEX idx_snapshot_portfolio_date ON portfolio_value_snapshot (portfolio_id, date);

		CREATE TABLE system_setting (
			key VARCHAR(100) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL,
			is_encrypted BOOLEAN NOT NULL DEFAULT 0,
			updated_at DATETIME NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables in dependency order.
// Useful for reusing the same database across multiple tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	// Order matters: delete children before parents due to foreign keys
	tables := []string{
		"portfolio_value_snapshot",
		"asset_valuation",
		"portfolio_transaction",
		"asset",
		"portfolio",
		"system_setting",
	}

	for _, table := range tables {
		//nolint:gosec // G202: Table names are from hardcoded slice, no SQL injection risk
		query := "DELETE FROM " + table
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
