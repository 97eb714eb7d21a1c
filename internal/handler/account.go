package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"webwallet-api/internal/model"
	"webwallet-api/internal/service"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService     *service.AccountService
	transactionService *service.TransactionService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService *service.AccountService, transactionService *service.TransactionService) *AccountHandler {
	return &AccountHandler{
		accountService:     accountService,
		transactionService: transactionService,
	}
}

// ListAccounts handles GET /v1/accounts
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	ownerID, err := actingUser(r)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Missing or invalid "+userIDHeader+" header", model.ErrCodeInvalidInput)
		return
	}

	accounts, err := h.accountService.ListAccounts(r.Context(), ownerID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, accounts)
}

// CreateAccount handles POST /v1/accounts
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	ownerID, err := actingUser(r)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Missing or invalid "+userIDHeader+" header", model.ErrCodeInvalidInput)
		return
	}

	var req model.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON", model.ErrCodeInvalidInput)
		return
	}

	response, err := h.accountService.CreateAccount(r.Context(), ownerID, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response)
}

// HandleAccountPath dispatches /v1/accounts/{id} and
// /v1/accounts/{id}/transactions by method.
func (h *AccountHandler) HandleAccountPath(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/accounts/")

	if rest, ok := strings.CutSuffix(path, "/transactions"); ok {
		h.listTransactions(w, r, rest)
		return
	}

	accountID, err := uuid.Parse(path)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid account ID format", model.ErrCodeInvalidInput)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getAccount(w, r, accountID)
	case http.MethodPut:
		h.updateAccount(w, r, accountID)
	case http.MethodDelete:
		h.deleteAccount(w, r, accountID)
	default:
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", model.ErrCodeInvalidInput)
	}
}

// getAccount handles GET /v1/accounts/{id}
func (h *AccountHandler) getAccount(w http.ResponseWriter, r *http.Request, accountID uuid.UUID) {
	response, err := h.accountService.GetAccount(r.Context(), accountID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// updateAccount handles PUT /v1/accounts/{id}
func (h *AccountHandler) updateAccount(w http.ResponseWriter, r *http.Request, accountID uuid.UUID) {
	var req model.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON", model.ErrCodeInvalidInput)
		return
	}

	response, err := h.accountService.UpdateAccount(r.Context(), accountID, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response)
}

// deleteAccount handles DELETE /v1/accounts/{id}
func (h *AccountHandler) deleteAccount(w http.ResponseWriter, r *http.Request, accountID uuid.UUID) {
	if err := h.accountService.DeleteAccount(r.Context(), accountID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// listTransactions handles GET /v1/accounts/{id}/transactions
func (h *AccountHandler) listTransactions(w http.ResponseWriter, r *http.Request, rawID string) {
	if r.Method != http.MethodGet {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed", model.ErrCodeInvalidInput)
		return
	}

	accountID, err := uuid.Parse(rawID)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Invalid account ID format", model.ErrCodeInvalidInput)
		return
	}

	transactions, err := h.transactionService.ListAccountTransactions(r.Context(), accountID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transactions)
}
