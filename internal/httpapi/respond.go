package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"campusmart-be/internal/apperr"
	"campusmart-be/internal/logger"
	"campusmart-be/internal/user"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeErrorMessage(w http.ResponseWriter, message string, code int) {
	writeJSON(w, code, map[string]string{"error": message})
}

// writeError maps service failures onto the API's status taxonomy. The
// raw error text is surfaced for 4xx; 5xx hides internals.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperr.ErrUnauthenticated):
		writeErrorMessage(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, apperr.ErrForbidden):
		writeErrorMessage(w, "Unauthorized", http.StatusForbidden)
	case errors.Is(err, apperr.ErrNotFound):
		writeErrorMessage(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, apperr.ErrInvalidOTP):
		writeErrorMessage(w, "Invalid OTP", http.StatusBadRequest)
	case errors.Is(err, apperr.ErrInvalidState),
		errors.Is(err, user.ErrEmailExists),
		errors.Is(err, user.ErrInvalidCredentials):
		writeErrorMessage(w, err.Error(), http.StatusBadRequest)
	default:
		logger.FromCtx(r.Context()).Error("request failed", zap.Error(err))
		writeErrorMessage(w, "Internal server error", http.StatusInternalServerError)
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErrorMessage(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}
