package blobstore

import (
	"context"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store reads and writes whole blobs addressed by key.
type Store interface {
	// Get returns the full content of a blob.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the content of a blob atomically.
	Put(ctx context.Context, key string, data []byte) error
	// Delete removes a blob. Deleting a missing blob succeeds.
	Delete(ctx context.Context, key string) error
}
