package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feedline/feedline/internal/model"
	"github.com/feedline/feedline/internal/testutil"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name: "validation error carries field data",
			err: model.NewValidationError("validation failed, please enter valid data",
				model.FieldViolation{Field: "title", Message: "must be at least 5 characters long"}),
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"message":"validation failed, please enter valid data","data":[{"field":"title","message":"must be at least 5 characters long"}]}`,
		},
		{
			name:       "unauthenticated",
			err:        model.NewUnauthenticatedError("not authenticated"),
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"message":"not authenticated"}`,
		},
		{
			name:       "forbidden",
			err:        model.NewForbiddenError("not authorized to modify this post"),
			wantStatus: http.StatusForbidden,
			wantBody:   `{"message":"not authorized to modify this post"}`,
		},
		{
			name:       "not found",
			err:        model.NewNotFoundError("could not find post"),
			wantStatus: http.StatusNotFound,
			wantBody:   `{"message":"could not find post"}`,
		},
		{
			name:       "unclassified error is opaque",
			err:        errors.New("pgx: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"message":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, testutil.MakeNoopLogger(), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
