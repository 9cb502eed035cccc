package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/ChatDispatch_Go/internal/domain"
	"github.com/osse101/ChatDispatch_Go/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	// encode first so a failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a service failure and maps it to a response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err)
	}
	respondError(w, status, msg)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."

	ErrMsgCommandNotFoundError  = "Command not found"
	ErrMsgTriggerTakenError     = "Trigger already taken"
	ErrMsgAmbiguousEditError    = "Command has more than one chat effect"
	ErrMsgInvalidGroupError     = "Invalid permission group"
	ErrMsgOnCooldownError       = "Action is on cooldown. Try again later"
	ErrMsgSpinInProgressError   = "A spin is already in progress"
	ErrMsgNotEnoughFundsError   = "Not enough currency"
	ErrMsgWagerBoundsError      = "Wager outside the allowed range"
	ErrMsgLedgerUnavailableErr  = "Currency ledger unavailable"
	ErrMsgInvalidPlatformError  = "Invalid platform"
	ErrMsgPermissionDeniedError = "Permission denied"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	// refinements before the sentinels they wrap
	switch {
	case errors.Is(err, domain.ErrInvalidPermission):
		return http.StatusBadRequest, ErrMsgInvalidGroupError
	case errors.Is(err, domain.ErrWagerBounds):
		return http.StatusBadRequest, ErrMsgWagerBoundsError
	case errors.Is(err, domain.ErrInvalidPlatform):
		return http.StatusBadRequest, ErrMsgInvalidPlatformError
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrUsage), errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrMsgCommandNotFoundError
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, ErrMsgTriggerTakenError
	case errors.Is(err, domain.ErrAmbiguousEdit):
		return http.StatusConflict, ErrMsgAmbiguousEditError
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, ErrMsgPermissionDeniedError
	case errors.Is(err, domain.ErrOnCooldown):
		return http.StatusTooManyRequests, ErrMsgOnCooldownError
	case errors.Is(err, domain.ErrConcurrency):
		return http.StatusConflict, ErrMsgSpinInProgressError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughFundsError
	case errors.Is(err, domain.ErrLedger), errors.Is(err, domain.ErrCurrencyMissing):
		return http.StatusServiceUnavailable, ErrMsgLedgerUnavailableErr
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
