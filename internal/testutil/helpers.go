package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/AlessioMurgia/capitaltracker/internal/marketdata"
	"github.com/AlessioMurgia/capitaltracker/internal/repository"
	"github.com/AlessioMurgia/capitaltracker/internal/service"
)

// TestFernetKey is a valid base64-encoded 32-byte fernet key for tests that
// exercise encrypted settings.
const TestFernetKey = "QUFBQUFBQUFBQUFBQUFBQUFBQUFBQUFBQUFBQUFBQUE="

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	portfolioRepo := repository.NewPortfolioRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	return service.NewPortfolioService(
		portfolioRepo,
		snapshotRepo,
		NewTestSnapshotLoader(t, db),
	)
}

func NewTestHistoryService(t *testing.T, db *sql.DB) *service.HistoryService {
	t.Helper()

	portfolioRepo := repository.NewPortfolioRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	return service.NewHistoryService(
		portfolioRepo,
		snapshotRepo,
		NewTestSnapshotLoader(t, db),
	)
}

func NewTestSnapshotLoader(t *testing.T, db *sql.DB) *service.SnapshotLoader {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	valuationRepo := repository.NewValuationRepository(db)

	return service.NewSnapshotLoader(
		transactionRepo,
		assetRepo,
		valuationRepo,
	)
}

func NewTestAssetService(t *testing.T, db *sql.DB) *service.AssetService {
	t.Helper()

	return service.NewAssetService(repository.NewAssetRepository(db))
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	assetRepo := repository.NewAssetRepository(db)

	return service.NewTransactionService(
		transactionRepo,
		portfolioRepo,
		assetRepo,
		NewTestHistoryService(t, db),
	)
}

// NewTestValuationService creates a ValuationService with the given market data
// client. Pass a mock client to test refresh operations without real API calls.
func NewTestValuationService(t *testing.T, db *sql.DB, client marketdata.Client) *service.ValuationService {
	t.Helper()

	valuationRepo := repository.NewValuationRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)

	return service.NewValuationService(
		valuationRepo,
		assetRepo,
		portfolioRepo,
		NewTestHistoryService(t, db),
		NewTestSystemService(t, db),
		client,
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	settingRepo := repository.NewSettingRepository(db)
	systemService, err := service.NewSystemService(db, settingRepo, TestFernetKey)
	if err != nil {
		t.Fatalf("Failed to create test system service: %v", err)
	}
	return systemService
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeName generates a unique name for testing.
//
// Example usage:
//
//	name := testutil.MakeName("My Portfolio")
//	// Returns: "My Portfolio ABC123"
func MakeName(base string) string {
	if base == "" {
		base = "Test"
	}
	return base + " " + randomAlphanumeric(6)
}

// MakeSymbol generates a stock ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("AAPL")
//	// Returns: "AAPL1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
