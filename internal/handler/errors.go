package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/tripplanner/internal/domain"
)

// ErrorResponse is the envelope of every non-2xx JSON body.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes one failure. Field is set for validation errors.
type ErrorDetail struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Field   *string `json:"field,omitempty"`
}

func errorBody(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}

// validationBody returns an ErrorResponse naming the rule that failed.
func validationBody(ve *domain.ValidationError) ErrorResponse {
	field := ve.Field
	return ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: ve.Message, Field: &field}}
}

// requestBody returns an ErrorResponse for a request rejected before it
// reaches the service layer (e.g. missing field or malformed JSON).
func requestBody(field, message string) ErrorResponse {
	if field == "" {
		return errorBody("validation_error", message)
	}
	return validationBody(domain.NewValidationError(field, message))
}

// writeError maps a service error onto a status code and body.
// notFound is the message used for domain.ErrNotFound, since only the
// handler knows what was being looked up. Unexpected errors are logged and
// answered with a generic 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(ve))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody("validation_error", err.Error()))
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("not_found", notFound))
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized", "invalid credentials"))
	case errors.Is(err, domain.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody("conflict", "resource already exists"))
	case errors.Is(err, domain.ErrQuotaExceeded):
		writeJSON(w, http.StatusTooManyRequests, errorBody("quota_exceeded", "daily generation limit reached"))
	case errors.Is(err, domain.ErrGenerationFailed):
		writeJSON(w, http.StatusBadGateway, errorBody("generation_failed", "itinerary generation failed, please try again"))
	default:
		s.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, errorBody("internal_error", "internal server error"))
	}
}
