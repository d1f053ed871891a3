package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/contracts"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, fieldErrors []domain.FieldError) {
	writeJSON(w, status, contracts.ErrorResponse{
		Message:   message,
		Errors:    fieldErrors,
		RequestID: requestIDFromContext(r.Context()),
	})
}

// writeDomainError is the one place an internal error becomes a status code.
// Server-side failures are logged with detail and answered generically.
func writeDomainError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status, message, fieldErrors := mapDomainError(err)
	logHTTPOperationError(r.Context(), operation, status, message, err)
	writeError(w, r, status, message, fieldErrors)
}

func mapDomainError(err error) (int, string, []domain.FieldError) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, "Invalid request data", ve.Errors
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error(), nil
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized", nil
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Resource not found", nil
	case errors.Is(err, domain.ErrIdempotencyConflict):
		return http.StatusConflict, "Idempotency key reused with a different payload", nil
	case errors.Is(err, domain.ErrReferenceViolation):
		return http.StatusConflict, "Referenced record does not exist", nil
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, "Resource already exists", nil
	default:
		return http.StatusInternalServerError, "Internal server error", nil
	}
}
