package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"secondbrain/internal/service"
	"secondbrain/internal/validate"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error  ErrorBody             `json:"error"`
	Fields []validate.FieldError `json:"fields,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
		},
	})
}

// writeServiceError maps service-layer errors to HTTP responses. Validation
// failures carry every violated field so forms can mark each one.
func writeServiceError(w http.ResponseWriter, err error) {
	var verrs validate.Errors
	switch {
	case errors.As(err, &verrs):
		WriteJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  ErrorBody{Code: "VALIDATION_FAILED", Message: verrs.Error()},
			Fields: verrs,
		})
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, service.ErrDuplicateUniqueID):
		WriteError(w, http.StatusConflict, "DUPLICATE_UNIQUE_ID", "unique_id already exists")
	default:
		WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
