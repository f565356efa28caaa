package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/feedline/feedline/internal/api/http/middleware"
	"github.com/feedline/feedline/internal/logger"
	"github.com/feedline/feedline/internal/model"
	"github.com/feedline/feedline/internal/service"
)

// Feed exposes the post CRUD surface.
type Feed struct {
	service  *service.Feed
	pageSize int
	logger   *logger.Logger
}

func NewFeed(service *service.Feed, pageSize int, logger *logger.Logger) *Feed {
	return &Feed{service: service, pageSize: pageSize, logger: logger}
}

func (h *Feed) List(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			page = parsed
		}
	}

	result, err := h.service.ListPosts(r.Context(), page, h.pageSize)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	posts := result.Posts
	if posts == nil {
		posts = []model.Post{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":    "fetched posts successfully",
		"posts":      posts,
		"totalItems": result.TotalCount,
	})
}

func (h *Feed) Get(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	post, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "post fetched",
		"post":    post,
	})
}

func (h *Feed) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, model.NewUnauthenticatedError("not authenticated"))
		return
	}

	var input model.PostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, h.logger, model.NewValidationError("invalid request body"))
		return
	}

	post, err := h.service.CreatePost(r.Context(), input, identity.UserID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "post created successfully",
		"post":    post,
		"creator": post.Creator,
	})
}

func (h *Feed) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, model.NewUnauthenticatedError("not authenticated"))
		return
	}

	id, err := postID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var input model.PostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, h.logger, model.NewValidationError("invalid request body"))
		return
	}

	post, err := h.service.UpdatePost(r.Context(), id, input, identity.UserID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "post updated",
		"post":    post,
	})
}

func (h *Feed) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, model.NewUnauthenticatedError("not authenticated"))
		return
	}

	id, err := postID(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.service.DeletePost(r.Context(), id, identity.UserID); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "post deleted",
	})
}

func postID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		return uuid.Nil, model.NewValidationError("invalid post id")
	}
	return id, nil
}
