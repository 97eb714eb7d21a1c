package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"webwallet-api/internal/model"
	"webwallet-api/internal/service"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// PostTransaction handles POST /v1/transactions
func (h *TransactionHandler) PostTransaction(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		writeErrorResponse(w, http.StatusBadRequest, "Content-Type must be application/json", model.ErrCodeInvalidInput)
		return
	}

	var req model.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid transaction request", model.ErrCodeInvalidInput)
		return
	}

	response, err := h.transactionService.PostTransaction(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

// HandleTransactionPath dispatches /v1/transactions/{id} by method.
func (h *TransactionHandler) HandleTransactionPath(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/transactions/")
	if path == "" {
		writeErrorResponse(w, http.StatusBadRequest, "Transaction ID is required", model.ErrCodeInvalidInput)
		return
	}

	transactionID, err := uuid.Parse(path)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid transaction ID format", model.ErrCodeInvalidInput)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getTransaction(w, r, transactionID)
	case http.MethodPut:
		h.updateTransaction(w, r, transactionID)
	default:
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", model.ErrCodeInvalidInput)
	}
}

// getTransaction handles GET /v1/transactions/{id}
func (h *TransactionHandler) getTransaction(w http.ResponseWriter, r *http.Request, transactionID uuid.UUID) {
	response, err := h.transactionService.GetTransaction(r.Context(), transactionID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// updateTransaction handles PUT /v1/transactions/{id}. Only the comment is
// editable; amounts never change after posting.
func (h *TransactionHandler) updateTransaction(w http.ResponseWriter, r *http.Request, transactionID uuid.UUID) {
	var req model.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON", model.ErrCodeInvalidInput)
		return
	}

	response, err := h.transactionService.UpdateTransactionComment(r.Context(), transactionID, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}
