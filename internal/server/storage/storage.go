// Package storage persists artifact payloads to durable local storage. Two
// backends exist behind one interface: an S3-compatible object store for
// production and a filesystem tree for development and tests. The pipeline
// is oblivious to which one is wired in.
package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// BlobStorage writes one artifact payload under a storage key.
type BlobStorage interface {
	Put(ctx context.Context, key string, payload []byte) error
}

// NewStorageKey generates a collision-resistant storage key for one
// artifact. The collector-supplied filename is never trusted alone (it may
// collide across organizations or categories); only its extension survives,
// and only when it looks like a plain extension.
func NewStorageKey(organizationID, suggestedFilename string) string {
	ext := path.Ext(suggestedFilename)
	if strings.ContainsAny(ext, "/\\") || len(ext) > 10 {
		ext = ""
	}
	return fmt.Sprintf("organizations/%s/%s%s", organizationID, uuid.New(), ext)
}
