package storage

import (
	"context"
	"io"
)

type FileStorage interface {
	// Upload saves a file and returns the stored path/key.
	Upload(ctx context.Context, file io.Reader, path string) (string, error)

	// Download retrieves a file.
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file.
	Delete(ctx context.Context, path string) error

	// GetURL returns the public URL of a stored file.
	GetURL(ctx context.Context, path string) (string, error)

	// Exists checks if a file exists.
	Exists(ctx context.Context, path string) (bool, error)
}
