package handlers

import (
	"errors"
	"net/http"

	"github.com/AlessioMurgia/capitaltracker/internal/api/response"
	"github.com/AlessioMurgia/capitaltracker/internal/apperrors"
	"github.com/AlessioMurgia/capitaltracker/internal/validation"
)

// handleServiceError maps service-layer errors onto HTTP status codes:
// validation failures become 400, missing entities 404, constraint violations
// 409, everything else 500.
func handleServiceError(w http.ResponseWriter, message string, err error) {
	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
		return
	}
	if errors.Is(err, validation.ErrInvalidUUID) {
		response.RespondError(w, http.StatusBadRequest, "invalid UUID format", err.Error())
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrPortfolioNotFound),
		errors.Is(err, apperrors.ErrAssetNotFound),
		errors.Is(err, apperrors.ErrTransactionNotFound),
		errors.Is(err, apperrors.ErrValuationNotFound),
		errors.Is(err, apperrors.ErrSettingNotFound):
		response.RespondError(w, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, apperrors.ErrAssetInUse),
		errors.Is(err, apperrors.ErrDuplicateEntry):
		response.RespondError(w, http.StatusConflict, err.Error(), "")
	default:
		response.RespondError(w, http.StatusInternalServerError, message, err.Error())
	}
}
