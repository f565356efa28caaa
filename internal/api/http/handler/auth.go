package handler

import (
	"encoding/json"
	"net/http"

	"github.com/feedline/feedline/internal/logger"
	"github.com/feedline/feedline/internal/model"
	"github.com/feedline/feedline/internal/service"
)

// Auth handles signup and login requests.
type Auth struct {
	service *service.Auth
	logger  *logger.Logger
}

func NewAuth(service *service.Auth, logger *logger.Logger) *Auth {
	return &Auth{service: service, logger: logger}
}

func (h *Auth) SignUp(w http.ResponseWriter, r *http.Request) {
	var input service.SignUpInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, h.logger, model.NewValidationError("invalid request body"))
		return
	}

	user, err := h.service.SignUp(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "user created",
		"userId":  user.ID,
	})
}

func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, h.logger, model.NewValidationError("invalid request body"))
		return
	}

	result, err := h.service.Login(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":  result.Token,
		"userId": result.UserID,
	})
}
