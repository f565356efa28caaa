package handler

import (
	"io"
	"mime"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"github.com/feedline/feedline/internal/api/http/middleware"
	"github.com/feedline/feedline/internal/logger"
	"github.com/feedline/feedline/internal/model"
	"github.com/feedline/feedline/internal/service"
)

const maxImageSize = 10 << 20 // 10 MiB

// Image accepts multipart image uploads ahead of post creation and
// retires replaced assets.
type Image struct {
	assets *service.Assets
	logger *logger.Logger
}

func NewImage(assets *service.Assets, logger *logger.Logger) *Image {
	return &Image{assets: assets, logger: logger}
}

func (h *Image) Upload(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, model.NewUnauthenticatedError("not authenticated"))
		return
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeError(w, h.logger, model.NewValidationError("invalid multipart body"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{"message": "no file provided"})
		return
	}
	defer file.Close()

	key, err := h.assets.Store(r.Context(), model.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        file,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if oldPath := r.FormValue("oldPath"); oldPath != "" {
		h.assets.Remove(oldPath)
	}

	h.logger.Info("Image handler: file stored", "key", key, "user_id", identity.UserID)

	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "file stored",
		"filePath": key,
	})
}

// Serve streams a stored image back by its key.
func (h *Image) Serve(w http.ResponseWriter, r *http.Request) {
	key := path.Join("images", chi.URLParam(r, "*"))

	reader, err := h.assets.Open(r.Context(), key)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	defer reader.Close()

	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Debug("Image handler: client aborted download", "key", key, "error", err)
	}
}
