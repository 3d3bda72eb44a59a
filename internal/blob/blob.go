package blob

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound signals that no blob exists at the requested path.
var ErrObjectNotFound = errors.New("object not found")

// Store abstracts "put/get/delete a named byte blob" so the service can run
// against either MinIO or the local filesystem.
type Store interface {
	// Put writes size bytes from reader at objectPath, overwriting nothing:
	// callers always supply freshly generated paths.
	Put(ctx context.Context, objectPath string, reader io.Reader, size int64, contentType string) error
	// Get opens the blob at objectPath. Missing blobs yield ErrObjectNotFound.
	Get(ctx context.Context, objectPath string) (io.ReadCloser, error)
	// Remove deletes the blob at objectPath. Removing an absent blob succeeds.
	Remove(ctx context.Context, objectPath string) error
	// Ping verifies the backing storage is reachable.
	Ping(ctx context.Context) error
}

// Presigner is implemented by stores that can mint direct download URLs.
type Presigner interface {
	PresignGet(ctx context.Context, objectPath string) (string, error)
}
