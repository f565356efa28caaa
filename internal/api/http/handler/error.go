package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/feedline/feedline/internal/logger"
	"github.com/feedline/feedline/internal/model"
)

// errorResponse is the failure envelope: a human-readable message plus the
// field violations for validation errors.
type errorResponse struct {
	Message string                 `json:"message"`
	Data    []model.FieldViolation `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses. Unclassified
// errors are internal: logged in full, returned opaque.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	var appErr *model.Error
	if !errors.As(err, &appErr) {
		log.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "internal server error"})
		return
	}

	writeJSON(w, statusForKind(appErr.Kind), errorResponse{Message: appErr.Message, Data: appErr.Fields})
}

func statusForKind(kind model.ErrorKind) int {
	switch kind {
	case model.KindValidation:
		return http.StatusUnprocessableEntity
	case model.KindUnauthenticated:
		return http.StatusUnauthorized
	case model.KindForbidden:
		return http.StatusForbidden
	case model.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
