package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/AlessioMurgia/capitaltracker/internal/api/request"
	"github.com/AlessioMurgia/capitaltracker/internal/model"
)

// ValidTransactionType contains the allowed transaction type values.
var ValidTransactionType = map[string]bool{
	model.TransactionBuy: true, model.TransactionSell: true,
}

// ValidateCreateTransaction validates a transaction creation request.
// Checks all required fields and validates their formats and constraints.
//
// Required fields:
//   - portfolioId: Must be a valid UUID
//   - assetId: Must be a valid UUID
//   - date: Must be in YYYY-MM-DD format
//   - type: Must be BUY or SELL
//   - quantity: Must be positive
//   - price: Must be non-negative
//   - fee: Must be non-negative
//
// A sell larger than the open position is deliberately NOT rejected here; the
// ledger records it and flags the holding inconsistent instead.
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.PortfolioID); err != nil {
		return err
	}
	if err := ValidateUUID(req.AssetID); err != nil {
		return err
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	}
	_, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		errors["date"] = err.Error()
	}

	if strings.TrimSpace(req.Type) == "" {
		errors["transactionType"] = "type is required"
	} else if !ValidTransactionType[req.Type] {
		errors["transactionType"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	if req.Quantity <= 0.0 {
		errors["quantity"] = "quantity must be positive"
	}

	if req.Price < 0.0 {
		errors["price"] = "price cannot be negative"
	}

	if req.Fee < 0.0 {
		errors["fee"] = "fee cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateTransaction validates a transaction update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateTransaction(req request.UpdateTransactionRequest) error {
	errors := make(map[string]string)

	if req.AssetID != nil {
		if err := ValidateUUID(*req.AssetID); err != nil {
			return err
		}
	}
	if req.Date != nil {
		if strings.TrimSpace(*req.Date) == "" {
			errors["date"] = "date is required"
		}
		_, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			errors["date"] = err.Error()
		}
	}
	if req.Type != nil {
		if strings.TrimSpace(*req.Type) == "" {
			errors["transactionType"] = "type is required"
		} else if !ValidTransactionType[*req.Type] {
			errors["transactionType"] = fmt.Sprintf("invalid type: %s", *req.Type)
		}
	}
	if req.Quantity != nil {
		if *req.Quantity <= 0.0 {
			errors["quantity"] = "quantity must be positive"
		}
	}
	if req.Price != nil {
		if *req.Price < 0.0 {
			errors["price"] = "price cannot be negative"
		}
	}
	if req.Fee != nil {
		if *req.Fee < 0.0 {
			errors["fee"] = "fee cannot be negative"
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
