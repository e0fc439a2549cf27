package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AlessioMurgia/capitaltracker/internal/api/request"
	"github.com/AlessioMurgia/capitaltracker/internal/api/response"
	"github.com/AlessioMurgia/capitaltracker/internal/model"
	"github.com/AlessioMurgia/capitaltracker/internal/service"
	"github.com/AlessioMurgia/capitaltracker/internal/validation"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
	historyService   *service.HistoryService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService, historyService *service.HistoryService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
		historyService:   historyService,
	}
}

// Portfolios returns all portfolios. Archived portfolios are included when the
// includeArchived query parameter is set to true.
func (h *PortfolioHandler) Portfolios(w http.ResponseWriter, r *http.Request) {
	filter := model.PortfolioFilter{
		IncludeArchived: r.URL.Query().Get("includeArchived") == "true",
	}

	portfolios, err := h.portfolioService.GetPortfolios(filter)
	if err != nil {
		handleServiceError(w, "Failed to retrieve portfolios", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolios)
}

// CreatePortfolio creates a new portfolio.
func (h *PortfolioHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePortfolio(req); err != nil {
		handleServiceError(w, "Failed to create portfolio", err)
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(req.Name, req.Description)
	if err != nil {
		handleServiceError(w, "Failed to create portfolio", err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, portfolio)
}

// GetPortfolio returns a single portfolio.
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	portfolio, err := h.portfolioService.GetPortfolio(chi.URLParam(r, "uuid"))
	if err != nil {
		handleServiceError(w, "Failed to retrieve portfolio", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, portfolio)
}

// UpdatePortfolio updates a portfolio's name, description or archived flag.
func (h *PortfolioHandler) UpdatePortfolio(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePortfolioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdatePortfolio(req); err != nil {
		handleServiceError(w, "Failed to update portfolio", err)
		return
	}

	portfolio, err := h.portfolioService.GetPortfolio(chi.URLParam(r, "uuid"))
	if err != nil {
		handleServiceError(w, "Failed to update portfolio", err)
		return
	}

	if req.Name != nil {
		portfolio.Name = *req.Name
	}
	if req.Description != nil {
		portfolio.Description = *req.Description
	}
	if req.IsArchived != nil {
		portfolio.IsArchived = *req.IsArchived
	}

	updated, err := h.portfolioService.UpdatePortfolio(portfolio)
	if err != nil {
		handleServiceError(w, "Failed to update portfolio", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, updated)
}

// DeletePortfolio removes a portfolio together with its transactions.
func (h *PortfolioHandler) DeletePortfolio(w http.ResponseWriter, r *http.Request) {
	if err := h.portfolioService.DeletePortfolio(chi.URLParam(r, "uuid")); err != nil {
		handleServiceError(w, "Failed to delete portfolio", err)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// PortfolioState returns the valued current positions and summary of a portfolio.
func (h *PortfolioHandler) PortfolioState(w http.ResponseWriter, r *http.Request) {
	state, err := h.portfolioService.GetPortfolioState(chi.URLParam(r, "uuid"))
	if err != nil {
		handleServiceError(w, "Failed to get portfolio state", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, state)
}

// PortfolioHistory returns the daily total value series of a portfolio.
func (h *PortfolioHandler) PortfolioHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.historyService.GetPortfolioHistory(chi.URLParam(r, "uuid"))
	if err != nil {
		handleServiceError(w, "Failed to get portfolio history", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, history)
}

// Allocation returns the current value of a portfolio grouped along one
// classification dimension (class, sector, geography or platform; defaults to
// class).
func (h *PortfolioHandler) Allocation(w http.ResponseWriter, r *http.Request) {
	pairs, err := h.portfolioService.GetAllocation(chi.URLParam(r, "uuid"), r.URL.Query().Get("dimension"))
	if err != nil {
		handleServiceError(w, "Failed to get allocation", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, pairs)
}

// AllocationHistory returns the daily per-class value rows of a portfolio.
func (h *PortfolioHandler) AllocationHistory(w http.ResponseWriter, r *http.Request) {
	rows, err := h.historyService.GetAllocationHistory(chi.URLParam(r, "uuid"))
	if err != nil {
		handleServiceError(w, "Failed to get allocation history", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, rows)
}

// Overview returns per-portfolio summaries and grand totals across all active
// portfolios.
func (h *PortfolioHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.portfolioService.GetOverview()
	if err != nil {
		handleServiceError(w, "Failed to get overview", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, overview)
}
