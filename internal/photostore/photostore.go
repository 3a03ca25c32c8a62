package photostore

import (
	"context"
	"io"
)

// PhotoStore keeps the raw bytes of photos attached to audit entries. Keys
// are opaque to callers; every key saved under a session can be removed at
// once with Purge.
type PhotoStore interface {
	Save(ctx context.Context, sessionID, location, mimeType string, r io.Reader) (storageKey string, err error)
	Get(ctx context.Context, storageKey string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, storageKey string) error
	Purge(ctx context.Context, sessionID string) error
}
