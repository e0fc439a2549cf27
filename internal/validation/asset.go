package validation

import (
	"fmt"
	"strings"

	"github.com/AlessioMurgia/capitaltracker/internal/api/request"
	"github.com/AlessioMurgia/capitaltracker/internal/model"
)

// ValidAssetClass contains the allowed asset class values.
var ValidAssetClass = map[string]bool{
	model.ClassCash:           true,
	model.ClassStock:          true,
	model.ClassETF:            true,
	model.ClassRealEstate:     true,
	model.ClassVentureCapital: true,
	model.ClassOther:          true,
}

// ValidateCreateAsset validates an asset creation request.
//
// Required fields:
//   - name: Must be non-empty
//   - class: Must be a known asset class
//
// Symbol, sector, geography and platform are optional metadata.
func ValidateCreateAsset(req request.CreateAssetRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "name is required"
	}

	if strings.TrimSpace(req.Class) == "" {
		errors["class"] = "class is required"
	} else if !ValidAssetClass[req.Class] {
		errors["class"] = fmt.Sprintf("invalid class: %s", req.Class)
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateAsset validates an asset update request.
// All fields are optional, but if provided, they must meet the same constraints as create.
func ValidateUpdateAsset(req request.UpdateAssetRequest) error {
	errors := make(map[string]string)

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		errors["name"] = "name cannot be empty"
	}
	if req.Class != nil {
		if strings.TrimSpace(*req.Class) == "" {
			errors["class"] = "class cannot be empty"
		} else if !ValidAssetClass[*req.Class] {
			errors["class"] = fmt.Sprintf("invalid class: %s", *req.Class)
		}
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
