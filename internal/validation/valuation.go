package validation

import (
	"strings"
	"time"

	"github.com/AlessioMurgia/capitaltracker/internal/api/request"
)

// ValidateCreateValuation validates a manual valuation request.
//
// Required fields:
//   - assetId: Must be a valid UUID
//   - date: Must be in YYYY-MM-DD format
//   - value: Must be non-negative
func ValidateCreateValuation(req request.CreateValuationRequest) error {
	errors := make(map[string]string)

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

	if req.Value < 0.0 {
		errors["value"] = "value cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
