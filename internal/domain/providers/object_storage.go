package providers

import (
	"context"
	"io"
	"time"
)

// MaxUploadBytes is the upload size ceiling enforced by the storage layer
// in addition to handler-side validation.
const MaxUploadBytes = 5 << 20 // 5 MiB

// StoredObject describes an object listed from the bucket
type StoredObject struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectStorage defines the interface to the managed object storage bucket.
// A photo record dictates whether its backing object should exist; the
// bucket is subordinate to the record store.
type ObjectStorage interface {
	// Upload stores the object and returns its public URL. Rejects
	// payloads over MaxUploadBytes.
	Upload(ctx context.Context, key, contentType string, size int64, body io.Reader) (string, error)

	// Delete removes the object. Deleting a missing object is a no-op.
	Delete(ctx context.Context, key string) error

	// List returns every object under the prefix.
	List(ctx context.Context, prefix string) ([]StoredObject, error)

	// PublicURL returns the public URL for a key without touching the bucket.
	PublicURL(key string) string

	// KeyFromURL maps a public URL back to its object key. ok is false for
	// URLs outside the managed bucket (placeholders, external images).
	KeyFromURL(url string) (key string, ok bool)
}
