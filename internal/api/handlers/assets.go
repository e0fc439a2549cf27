package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlessioMurgia/capitaltracker/internal/api/request"
	"github.com/AlessioMurgia/capitaltracker/internal/api/response"
	"github.com/AlessioMurgia/capitaltracker/internal/service"
)

// AssetHandler handles asset-related HTTP requests
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{
		assetService: assetService,
	}
}

// Assets returns all assets.
func (h *AssetHandler) Assets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.assetService.GetAssets()
	if err != nil {
		handleServiceError(w, "Failed to retrieve assets", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, assets)
}

// GetAsset returns a single asset.
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := h.assetService.GetAsset(chi.URLParam(r, "uuid"))
	if err != nil {
		handleServiceError(w, "Failed to retrieve asset", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// CreateAsset creates a new asset.
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	asset, err := h.assetService.CreateAsset(req)
	if err != nil {
		handleServiceError(w, "Failed to create asset", err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, asset)
}

// UpdateAsset updates an asset's metadata.
func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	asset, err := h.assetService.UpdateAsset(chi.URLParam(r, "uuid"), req)
	if err != nil {
		handleServiceError(w, "Failed to update asset", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// DeleteAsset removes an asset that no transaction references.
func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := h.assetService.DeleteAsset(chi.URLParam(r, "uuid")); err != nil {
		handleServiceError(w, "Failed to delete asset", err)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
