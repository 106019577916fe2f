package avatar

import (
	"context"
	"io"
)

// ObjectStore holds profile image bytes addressed by object key.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) error
	Delete(ctx context.Context, key string) error
	// URL returns where clients can fetch key.
	URL(key string) string
}
