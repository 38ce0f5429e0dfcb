// Package blobstore abstracts the external object store holding every
// canonical post document and the shared index document. The store is an
// opaque key/value space: upload, fetch by key and prefix listing are the
// only capabilities the rest of the system may rely on.
package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no object exists at the key
var ErrNotFound = errors.New("object not found")

// ObjectStore defines the operations backed by the external store
type ObjectStore interface {
	// Put writes data at key, overwriting any existing object
	Put(ctx context.Context, key string, data []byte) error

	// Get fetches the object at key. Returns ErrNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// List returns up to limit keys under prefix starting at cursor,
	// along with the cursor for the next page ("" when exhausted)
	List(ctx context.Context, prefix, cursor string, limit int) (keys []string, next string, err error)
}
