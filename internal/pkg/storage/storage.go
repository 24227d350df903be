package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage abstracts where profile media lands. LocalStorage writes to
// disk for development, CloudinaryStorage serves from a CDN in production.
type FileStorage interface {
	// Upload stores a file and returns the storage path/key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a file
	Delete(ctx context.Context, path string) error

	// GetURL generates a public URL, presigned when the backend supports expiry
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}
