// Package document stores uploaded document blobs. Child profiles reference
// blobs by opaque locator; verification status lives on the profile, never
// here.
package document

import (
	"context"
	"io"
)

// BlobStore reads and writes document content by opaque key.
type BlobStore interface {
	Put(ctx context.Context, key string, content io.Reader, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	URL(key string) string
}
