package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"webwallet-api/internal/model"
	"webwallet-api/internal/service"
)

// userIDHeader carries the acting user's identifier, supplied by the
// external identity provider. The value is trusted as already
// authenticated.
const userIDHeader = "X-User-Id"

// actingUser extracts the acting user's ID from the request
func actingUser(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.Header.Get(userIDHeader))
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// writeErrorResponse writes a standardized error body
func writeErrorResponse(w http.ResponseWriter, statusCode int, message, code string) {
	writeJSON(w, statusCode, model.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleServiceError converts service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	if serviceErr, ok := err.(*service.ServiceError); ok {
		switch serviceErr.Code {
		case model.ErrCodeNotFound:
			writeErrorResponse(w, http.StatusNotFound, serviceErr.Message, serviceErr.Code)
		case model.ErrCodeValidation, model.ErrCodeInvalidInput:
			writeErrorResponse(w, http.StatusBadRequest, serviceErr.Message, serviceErr.Code)
		case model.ErrCodeInsufficientFunds:
			writeErrorResponse(w, http.StatusUnprocessableEntity, serviceErr.Message, serviceErr.Code)
		case model.ErrCodeConflict:
			writeErrorResponse(w, http.StatusConflict, serviceErr.Message, serviceErr.Code)
		default:
			writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", model.ErrCodeInternalError)
		}
		return
	}

	// Unknown error
	writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", model.ErrCodeInternalError)
}
