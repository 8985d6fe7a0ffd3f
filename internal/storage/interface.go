package storage

import (
	"context"
	"io"
)

// ObjectStorage abstracts the object store holding quote photo attachments.
type ObjectStorage interface {
	// Upload stores an object under the given key
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error

	// Download opens an object for reading
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// GetURL returns the public URL for an object
	GetURL(key string) string

	// Delete removes an object
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is present
	Exists(ctx context.Context, key string) (bool, error)
}
