package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

// ObjectStore abstracts the blob backend. Implementations must guarantee
// per-key atomicity; the document service builds its compensation logic on
// top of these three operations.
type ObjectStore interface {
	// Put writes the object under key, overwriting nothing because keys are
	// never reused.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	// Delete removes the object. A missing key is not an error: the caller
	// only cares that the blob is gone afterwards.
	Delete(ctx context.Context, key string) error
	// Presign returns a time-limited retrieval URL for the object.
	Presign(ctx context.Context, key string) (string, error)
}

// MakeKey generates a fresh object key for a file inside a project. Keys are
// unguessable and collision-free, so concurrent uploads never clash.
func MakeKey(projectID uint, fileName string) string {
	return fmt.Sprintf("projects/%d/uploads/%s_%s", projectID, uuid.New().String(), filepath.Base(fileName))
}
