package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/AlessioMurgia/capitaltracker/internal/api/request"
	"github.com/AlessioMurgia/capitaltracker/internal/api/response"
	"github.com/AlessioMurgia/capitaltracker/internal/model"
	"github.com/AlessioMurgia/capitaltracker/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// Health reports service and database health.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := model.HealthStatus{Status: "ok", Database: "ok"}

	if err := h.systemService.CheckHealth(); err != nil {
		status.Status = "degraded"
		status.Database = err.Error()
		response.RespondJSON(w, http.StatusServiceUnavailable, status)
		return
	}

	response.RespondJSON(w, http.StatusOK, status)
}

// Version reports the running application version.
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, map[string]string{
		"version": h.systemService.CheckVersion(),
	})
}

// MarketDataKeyStatus reports whether a market data API key is configured.
// The key itself is never returned.
func (h *SystemHandler) MarketDataKeyStatus(w http.ResponseWriter, r *http.Request) {
	response.RespondJSON(w, http.StatusOK, map[string]bool{
		"configured": h.systemService.HasMarketDataKey(),
	})
}

// SetMarketDataKey stores the market data API key encrypted.
func (h *SystemHandler) SetMarketDataKey(w http.ResponseWriter, r *http.Request) {
	var req request.MarketDataKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.APIKey == "" {
		response.RespondError(w, http.StatusBadRequest, "apiKey is required", "")
		return
	}

	if err := h.systemService.SetMarketDataKey(req.APIKey); err != nil {
		handleServiceError(w, "Failed to store market data key", err)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
