package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/feedline/feedline/internal/logger"
	"github.com/feedline/feedline/internal/model"
)

const (
	assetPrefix      = "images"
	removalQueueSize = 256
	removalTimeout   = 30 * time.Second
)

var allowedImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpg":  {},
	"image/jpeg": {},
}

// Assets maps uploaded image files to stable object keys and disposes of
// orphaned ones. Removal is at-most-one-attempt: requests go through a
// buffered queue drained by a single worker, and failures are logged only.
type Assets struct {
	storage  model.Storage
	logger   *logger.Logger
	removals chan string
	done     chan struct{}
}

func NewAssets(storage model.Storage, logger *logger.Logger) *Assets {
	a := &Assets{
		storage:  storage,
		logger:   logger,
		removals: make(chan string, removalQueueSize),
		done:     make(chan struct{}),
	}
	go a.drainRemovals()
	return a
}

// Store persists an upload under a collision-resistant key and returns the
// key as the canonical asset reference.
func (a *Assets) Store(ctx context.Context, upload model.Upload) (string, error) {
	if _, ok := allowedImageTypes[upload.ContentType]; !ok {
		return "", model.NewValidationError("unsupported image type",
			model.FieldViolation{Field: "image", Message: "must be a png or jpeg file"})
	}

	key := fmt.Sprintf("%s/%d_%s", assetPrefix, time.Now().UnixNano(), sanitizeFilename(upload.Filename))

	if err := a.storage.Upload(ctx, key, upload.Data, upload.ContentType); err != nil {
		return "", fmt.Errorf("failed to upload asset: %w", err)
	}

	return key, nil
}

// Open streams a stored asset back. Keys outside the asset prefix and
// unknown keys both yield NotFound.
func (a *Assets) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if !strings.HasPrefix(key, assetPrefix+"/") {
		return nil, model.NewNotFoundError("could not find image")
	}

	exists, err := a.storage.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to stat asset: %w", err)
	}
	if !exists {
		return nil, model.NewNotFoundError("could not find image")
	}

	reader, err := a.storage.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download asset: %w", err)
	}

	return reader, nil
}

// Remove schedules a single best-effort deletion of the asset. It never
// blocks and never reports failure to the caller; a full queue drops the
// request with a log line.
func (a *Assets) Remove(key string) {
	if key == "" {
		return
	}

	select {
	case a.removals <- key:
	default:
		a.logger.Error("Asset service: removal queue full, dropping", "key", key)
	}
}

// Close stops the removal worker after the queue drains.
func (a *Assets) Close() {
	close(a.removals)
	<-a.done
}

func (a *Assets) drainRemovals() {
	defer close(a.done)

	for key := range a.removals {
		ctx, cancel := context.WithTimeout(context.Background(), removalTimeout)
		if err := a.storage.Delete(ctx, key); err != nil {
			a.logger.Error("Asset service: failed to remove asset", "key", key, "error", err)
		}
		cancel()
	}
}

func sanitizeFilename(name string) string {
	name = path.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}
	return name
}
