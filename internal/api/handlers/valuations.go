package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlessioMurgia/capitaltracker/internal/api/request"
	"github.com/AlessioMurgia/capitaltracker/internal/api/response"
	"github.com/AlessioMurgia/capitaltracker/internal/service"
	"github.com/AlessioMurgia/capitaltracker/internal/validation"
)

// ValuationHandler handles valuation-related HTTP requests
type ValuationHandler struct {
	valuationService *service.ValuationService
}

// NewValuationHandler creates a new ValuationHandler
func NewValuationHandler(valuationService *service.ValuationService) *ValuationHandler {
	return &ValuationHandler{
		valuationService: valuationService,
	}
}

// Valuations returns the valuation history of the asset given by the assetId
// query parameter.
func (h *ValuationHandler) Valuations(w http.ResponseWriter, r *http.Request) {
	assetID := r.URL.Query().Get("assetId")
	if err := validation.ValidateUUID(assetID); err != nil {
		handleServiceError(w, "Failed to retrieve valuations", err)
		return
	}

	valuations, err := h.valuationService.GetValuations(assetID)
	if err != nil {
		handleServiceError(w, "Failed to retrieve valuations", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, valuations)
}

// CreateValuation records a manual valuation. A valuation for the same asset
// and date is overwritten.
func (h *ValuationHandler) CreateValuation(w http.ResponseWriter, r *http.Request) {
	var req request.CreateValuationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	valuation, err := h.valuationService.CreateValuation(req)
	if err != nil {
		handleServiceError(w, "Failed to create valuation", err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, valuation)
}

// DeleteValuation removes a valuation record.
func (h *ValuationHandler) DeleteValuation(w http.ResponseWriter, r *http.Request) {
	if err := h.valuationService.DeleteValuation(chi.URLParam(r, "uuid")); err != nil {
		handleServiceError(w, "Failed to delete valuation", err)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Refresh fetches quotes for every asset with a ticker symbol and stores them
// as API-sourced valuations.
func (h *ValuationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.valuationService.RefreshFromMarketData()
	if err != nil {
		handleServiceError(w, "Failed to refresh valuations", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
