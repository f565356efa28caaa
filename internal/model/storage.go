package model

import (
	"context"
	"io"
)

// Storage is the object store behind the asset manager.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// Upload is a raw inbound file: bytes plus the client-declared MIME type.
type Upload struct {
	Filename    string
	ContentType string
	Data        io.Reader
}
