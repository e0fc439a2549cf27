package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrAssetNotFound indicates that an asset with the given ID does not exist.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrValuationNotFound indicates no valuation record for a specific asset and date combination.
	ErrValuationNotFound = errors.New("valuation not found")

	// ErrSettingNotFound indicates that a system setting key has not been configured.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrSymbolNotFound indicates that a market data lookup returned no results.
	ErrSymbolNotFound = errors.New("symbol not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrAssetInUse indicates that an asset cannot be deleted because transactions reference it.
	ErrAssetInUse = errors.New("asset is in use")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// Validation errors for required fields
	ErrInvalidPortfolioID     = errors.New("portfolio ID is required")
	ErrInvalidAssetID         = errors.New("asset ID is required")
	ErrInvalidTransactionType = errors.New("transaction type must be BUY or SELL")
	ErrInvalidDate            = errors.New("date parameter is required")
	ErrInvalidAssetClass      = errors.New("unknown asset class")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These errors indicate that an operation failed, but not due
// to missing entities or validation issues.
var (
	// Portfolio operation errors
	ErrFailedToRetrievePortfolios  = errors.New("failed to retrieve portfolios")
	ErrFailedToGetPortfolioState   = errors.New("failed to get portfolio state")
	ErrFailedToGetPortfolioHistory = errors.New("failed to get portfolio history")
	ErrFailedToGetAllocation       = errors.New("failed to get allocation")
	ErrFailedToGetOverview         = errors.New("failed to get overview")

	// Asset operation errors
	ErrFailedToRetrieveAssets = errors.New("failed to retrieve assets")
	ErrFailedToRetrieveAsset  = errors.New("failed to retrieve asset")

	// Transaction operation errors
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")

	// Valuation operation errors
	ErrFailedToRetrieveValuations = errors.New("failed to retrieve valuations")
	ErrFailedToRefreshValuations  = errors.New("failed to refresh valuations")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
	ErrFailedToStoreSetting   = errors.New("failed to store setting")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., a transaction references an asset that doesn't exist).
	ErrDataInconsistency = errors.New("data inconsistency detected")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
