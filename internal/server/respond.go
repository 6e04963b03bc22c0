package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/doccrop/farm-assist/internal/common"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error payload.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusFor maps the application error taxonomy onto HTTP statuses. Nothing
// in the taxonomy is allowed to crash the process; everything becomes a
// structured payload.
func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrInvalidID),
		errors.Is(err, common.ErrUnsupported):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrExternalService):
		return http.StatusBadGateway
	case errors.Is(err, common.ErrMissingConfig):
		return http.StatusServiceUnavailable
	default:
		// Includes ErrImageDecode: the heuristic reports decode
		// failures as a server-side fault.
		return http.StatusInternalServerError
	}
}
