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

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// Transactions returns transactions, optionally filtered by the portfolioId
// query parameter.
func (h *TransactionHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	portfolioID := r.URL.Query().Get("portfolioId")
	if portfolioID != "" {
		if err := validation.ValidateUUID(portfolioID); err != nil {
			handleServiceError(w, "Failed to retrieve transactions", err)
			return
		}
	}

	transactions, err := h.transactionService.GetTransactions(portfolioID)
	if err != nil {
		handleServiceError(w, "Failed to retrieve transactions", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction returns a single transaction.
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transaction, err := h.transactionService.GetTransaction(chi.URLParam(r, "uuid"))
	if err != nil {
		handleServiceError(w, "Failed to retrieve transaction", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction records a new buy or sell.
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transaction, err := h.transactionService.CreateTransaction(req)
	if err != nil {
		handleServiceError(w, "Failed to create transaction", err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// UpdateTransaction applies the provided fields to an existing transaction.
func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transaction, err := h.transactionService.UpdateTransaction(chi.URLParam(r, "uuid"), req)
	if err != nil {
		handleServiceError(w, "Failed to update transaction", err)
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// DeleteTransaction removes a transaction.
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.transactionService.DeleteTransaction(chi.URLParam(r, "uuid")); err != nil {
		handleServiceError(w, "Failed to delete transaction", err)
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
